// Package storage defines the record types and store interfaces backing
// LinguaHub: linguist accounts, translation projects, and the reference
// collections that feed the project form selects.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername indicates a registration attempted to reuse an
// existing username. Uniqueness is enforced by the store itself, so two
// concurrent registrations cannot both succeed.
var ErrDuplicateUsername = errors.New("username already exists")

// User is a linguist account record. Username is the natural key and is
// always stored lowercased. PasswordHash holds a bcrypt hash; the plaintext
// password is never persisted.
type User struct {
	ID              string `bson:"_id,omitempty"`
	FullName        string `bson:"full_name"`
	EmailAddress    string `bson:"email_address"`
	SourceLanguages string `bson:"source_languages"`
	TargetLanguage  string `bson:"target_language"`
	BillingInfo     string `bson:"billing_info"`
	PaypalAccount   string `bson:"paypal_account"`
	Username        string `bson:"username"`
	PasswordHash    string `bson:"password"`
}

// Project is a translation project record. All form-sourced fields are kept
// as strings, including the due date; IsOverdue is the literal "on" or "off"
// derived from the form checkbox.
type Project struct {
	ID             string `bson:"_id,omitempty"`
	Name           string `bson:"project_name"`
	CategoryName   string `bson:"category_name"`
	Lead           string `bson:"project_lead"`
	AssignedTo     string `bson:"assigned_to"`
	Description    string `bson:"project_description"`
	Languages      string `bson:"project_languages"`
	Specialization string `bson:"project_specialization"`
	Software       string `bson:"project_software"`
	DueDate        string `bson:"project_due_date"`
	Status         string `bson:"project_status"`
	IsOverdue      string `bson:"project_is_overdue"`
	CreatedBy      string `bson:"created_by"`
}

// Category is a project category reference record.
type Category struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"category_name"`
}

// Lead is a project lead reference record.
type Lead struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"project_lead"`
}

// Status is a project status reference record.
type Status struct {
	ID   string `bson:"_id,omitempty"`
	Name string `bson:"project_status"`
}

// UserStore persists linguist accounts.
type UserStore interface {
	// CreateUser inserts a new user record and returns its id. It returns
	// ErrDuplicateUsername when the username is already taken.
	CreateUser(ctx context.Context, user User) (string, error)
	// UserByUsername fetches a user by lowercased username. It returns
	// ErrNotFound when no such user exists.
	UserByUsername(ctx context.Context, username string) (User, error)
	// ListUsernames returns all usernames sorted ascending.
	ListUsernames(ctx context.Context) ([]string, error)
}

// ProjectStore persists translation project records.
type ProjectStore interface {
	// CreateProject inserts a new project record and returns its id.
	CreateProject(ctx context.Context, project Project) (string, error)
	// ListProjects returns all project records in store order.
	ListProjects(ctx context.Context) ([]Project, error)
	// ProjectByID fetches a project by id. It returns ErrNotFound when the
	// id does not resolve to a record.
	ProjectByID(ctx context.Context, id string) (Project, error)
	// ReplaceProject overwrites the record matching id with project. The
	// replacement is a full-document write, not a merge. It returns
	// ErrNotFound when the id does not resolve to a record.
	ReplaceProject(ctx context.Context, id string, project Project) error
	// DeleteProject removes the record matching id. Deleting an absent id
	// is not an error.
	DeleteProject(ctx context.Context, id string) error
}

// ReferenceStore serves the read-mostly collections backing form selects.
// Listings are sorted ascending by display name; the Ensure upserts exist
// for seeding and are idempotent.
type ReferenceStore interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListLeads(ctx context.Context) ([]Lead, error)
	ListStatuses(ctx context.Context) ([]Status, error)
	EnsureCategory(ctx context.Context, name string) error
	EnsureLead(ctx context.Context, name string) error
	EnsureStatus(ctx context.Context, name string) error
}

// Store aggregates every collection the application uses.
type Store interface {
	UserStore
	ProjectStore
	ReferenceStore
	Close(ctx context.Context) error
}
