package contact

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is the canonical person record. Every form funnels into one row
// per case-insensitive email; see the unique index on lower(email) in db.
type Contact struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email                  string    `gorm:"not null"`
	FirstName              string
	LastName               string
	Phone                  string
	Location               string
	CountryCode            string
	PropertyType           string
	CurrentEnergyBill      *float64
	PreferredContactMethod string    `gorm:"not null;default:'email'"`
	NewsletterSubscribed   bool      `gorm:"not null;default:false"`
	CreatedAt              time.Time `gorm:"not null;default:now()"`
	UpdatedAt              time.Time `gorm:"not null;default:now()"`
}

// Submission is one contact-form message tied to a Contact.
type Submission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProjectType string    `gorm:"not null"`
	Message     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"not null;default:'new'"` // new/in-progress/responded/closed
	CreatedAt   time.Time `gorm:"not null;default:now()"`
	RespondedAt *time.Time
}

func (Submission) TableName() string { return "contact_submissions" }

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
