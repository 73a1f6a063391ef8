package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/linguahub/linguahub/internal/storage"
)

// userDocument is the wire shape of a users-collection record.
type userDocument struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	FullName        string        `bson:"full_name"`
	EmailAddress    string        `bson:"email_address"`
	SourceLanguages string        `bson:"source_languages"`
	TargetLanguage  string        `bson:"target_language"`
	BillingInfo     string        `bson:"billing_info"`
	PaypalAccount   string        `bson:"paypal_account"`
	Username        string        `bson:"username"`
	PasswordHash    string        `bson:"password"`
}

func (d userDocument) record() storage.User {
	return storage.User{
		ID:              d.ID.Hex(),
		FullName:        d.FullName,
		EmailAddress:    d.EmailAddress,
		SourceLanguages: d.SourceLanguages,
		TargetLanguage:  d.TargetLanguage,
		BillingInfo:     d.BillingInfo,
		PaypalAccount:   d.PaypalAccount,
		Username:        d.Username,
		PasswordHash:    d.PasswordHash,
	}
}

// projectDocument is the wire shape of a projects-collection record.
type projectDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Name           string        `bson:"project_name"`
	CategoryName   string        `bson:"category_name"`
	Lead           string        `bson:"project_lead"`
	AssignedTo     string        `bson:"assigned_to"`
	Description    string        `bson:"project_description"`
	Languages      string        `bson:"project_languages"`
	Specialization string        `bson:"project_specialization"`
	Software       string        `bson:"project_software"`
	DueDate        string        `bson:"project_due_date"`
	Status         string        `bson:"project_status"`
	IsOverdue      string        `bson:"project_is_overdue"`
	CreatedBy      string        `bson:"created_by"`
}

// projectDoc maps a storage record to its wire shape, dropping the id so
// inserts generate one and replaces never rewrite _id.
func projectDoc(p storage.Project) projectDocument {
	return projectDocument{
		Name:           p.Name,
		CategoryName:   p.CategoryName,
		Lead:           p.Lead,
		AssignedTo:     p.AssignedTo,
		Description:    p.Description,
		Languages:      p.Languages,
		Specialization: p.Specialization,
		Software:       p.Software,
		DueDate:        p.DueDate,
		Status:         p.Status,
		IsOverdue:      p.IsOverdue,
		CreatedBy:      p.CreatedBy,
	}
}

func (d projectDocument) record() storage.Project {
	return storage.Project{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		CategoryName:   d.CategoryName,
		Lead:           d.Lead,
		AssignedTo:     d.AssignedTo,
		Description:    d.Description,
		Languages:      d.Languages,
		Specialization: d.Specialization,
		Software:       d.Software,
		DueDate:        d.DueDate,
		Status:         d.Status,
		IsOverdue:      d.IsOverdue,
		CreatedBy:      d.CreatedBy,
	}
}

// referenceDocument decodes a record from any of the three reference
// collections; each collection populates exactly one of the name fields.
type referenceDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	CategoryName string        `bson:"category_name,omitempty"`
	LeadName     string        `bson:"project_lead,omitempty"`
	StatusName   string        `bson:"project_status,omitempty"`
}

func (d referenceDocument) name() string {
	switch {
	case d.CategoryName != "":
		return d.CategoryName
	case d.LeadName != "":
		return d.LeadName
	default:
		return d.StatusName
	}
}
