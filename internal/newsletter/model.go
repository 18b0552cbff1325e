package newsletter

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Subscription is at most one row per contact. Unsubscribing flips
// is_active and stamps unsubscribed_at; the row is never deleted.
type Subscription struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ContactID      uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Interests      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Frequency      string         `gorm:"not null;default:'weekly'"`
	IsActive       bool           `gorm:"not null;default:true"`
	SubscribedAt   time.Time      `gorm:"not null;default:now()"`
	UnsubscribedAt *time.Time
}

func (Subscription) TableName() string { return "newsletter_subscriptions" }

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
