// Package mongo provides the MongoDB-backed store. Records live in the
// users, projects, categories, leads, and status collections; usernames are
// kept unique by an index rather than an application-level check.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/linguahub/linguahub/internal/storage"
)

const (
	usersCollection      = "users"
	projectsCollection   = "projects"
	categoriesCollection = "categories"
	leadsCollection      = "leads"
	statusCollection     = "status"
)

// Store provides a MongoDB-backed implementation of storage.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the MongoDB deployment at uri and prepares the named
// database, creating the unique username index.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if strings.TrimSpace(database) == "" {
		return nil, fmt.Errorf("mongo database name is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	store := &Store{client: client, db: client.Database(database)}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// CreateUser inserts a user record. A duplicate-key error from the username
// index is reported as storage.ErrDuplicateUsername.
func (s *Store) CreateUser(ctx context.Context, user storage.User) (string, error) {
	doc := userDocument{
		FullName:        user.FullName,
		EmailAddress:    user.EmailAddress,
		SourceLanguages: user.SourceLanguages,
		TargetLanguage:  user.TargetLanguage,
		BillingInfo:     user.BillingInfo,
		PaypalAccount:   user.PaypalAccount,
		Username:        user.Username,
		PasswordHash:    user.PasswordHash,
	}
	res, err := s.db.Collection(usersCollection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrDuplicateUsername
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return objectIDHex(res.InsertedID)
}

// UserByUsername fetches a user record by lowercased username.
func (s *Store) UserByUsername(ctx context.Context, username string) (storage.User, error) {
	var doc userDocument
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.User{}, storage.ErrNotFound
		}
		return storage.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.record(), nil
}

// ListUsernames returns every username sorted ascending.
func (s *Store) ListUsernames(ctx context.Context) ([]string, error) {
	cursor, err := s.db.Collection(usersCollection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	usernames := make([]string, 0, len(docs))
	for _, doc := range docs {
		usernames = append(usernames, doc.Username)
	}
	return usernames, nil
}

// CreateProject inserts a project record and returns its generated id.
func (s *Store) CreateProject(ctx context.Context, project storage.Project) (string, error) {
	res, err := s.db.Collection(projectsCollection).InsertOne(ctx, projectDoc(project))
	if err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return objectIDHex(res.InsertedID)
}

// ListProjects returns all project records in store order.
func (s *Store) ListProjects(ctx context.Context) ([]storage.Project, error) {
	cursor, err := s.db.Collection(projectsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	projects := make([]storage.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.record())
	}
	return projects, nil
}

// ProjectByID fetches a project record by hex id.
func (s *Store) ProjectByID(ctx context.Context, id string) (storage.Project, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.Project{}, storage.ErrNotFound
	}
	var doc projectDocument
	err = s.db.Collection(projectsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.Project{}, storage.ErrNotFound
		}
		return storage.Project{}, fmt.Errorf("find project: %w", err)
	}
	return doc.record(), nil
}

// ReplaceProject overwrites the record matching id with project.
func (s *Store) ReplaceProject(ctx context.Context, id string, project storage.Project) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrNotFound
	}
	res, err := s.db.Collection(projectsCollection).ReplaceOne(ctx, bson.M{"_id": oid}, projectDoc(project))
	if err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteProject removes the record matching id. An absent id is a no-op.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.db.Collection(projectsCollection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]storage.Category, error) {
	var docs []referenceDocument
	if err := s.listSorted(ctx, categoriesCollection, "category_name", &docs); err != nil {
		return nil, err
	}
	categories := make([]storage.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, storage.Category{ID: doc.ID.Hex(), Name: doc.name()})
	}
	return categories, nil
}

// ListLeads returns all project leads sorted by name.
func (s *Store) ListLeads(ctx context.Context) ([]storage.Lead, error) {
	var docs []referenceDocument
	if err := s.listSorted(ctx, leadsCollection, "project_lead", &docs); err != nil {
		return nil, err
	}
	leads := make([]storage.Lead, 0, len(docs))
	for _, doc := range docs {
		leads = append(leads, storage.Lead{ID: doc.ID.Hex(), Name: doc.name()})
	}
	return leads, nil
}

// ListStatuses returns all status values sorted by name.
func (s *Store) ListStatuses(ctx context.Context) ([]storage.Status, error) {
	var docs []referenceDocument
	if err := s.listSorted(ctx, statusCollection, "project_status", &docs); err != nil {
		return nil, err
	}
	statuses := make([]storage.Status, 0, len(docs))
	for _, doc := range docs {
		statuses = append(statuses, storage.Status{ID: doc.ID.Hex(), Name: doc.name()})
	}
	return statuses, nil
}

// EnsureCategory upserts a category by name.
func (s *Store) EnsureCategory(ctx context.Context, name string) error {
	return s.ensureReference(ctx, categoriesCollection, "category_name", name)
}

// EnsureLead upserts a project lead by name.
func (s *Store) EnsureLead(ctx context.Context, name string) error {
	return s.ensureReference(ctx, leadsCollection, "project_lead", name)
}

// EnsureStatus upserts a status value by name.
func (s *Store) EnsureStatus(ctx context.Context, name string) error {
	return s.ensureReference(ctx, statusCollection, "project_status", name)
}

func (s *Store) listSorted(ctx context.Context, collection, field string, out *[]referenceDocument) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: field, Value: 1}}))
	if err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *Store) ensureReference(ctx context.Context, collection, field, name string) error {
	_, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{field: name},
		bson.M{"$set": bson.M{field: name}},
		options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", collection, err)
	}
	return nil
}

func objectIDHex(inserted any) (string, error) {
	oid, ok := inserted.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", inserted)
	}
	return oid.Hex(), nil
}
