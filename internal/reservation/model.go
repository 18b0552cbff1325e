package reservation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType is static reference data: the two product lines and their
// pricing parameters. Seeded at migration, read-only afterwards.
type ProductType struct {
	Code               string `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	BasePrice          float64
	SolarPricePerKW    float64 `gorm:"column:solar_price_per_kw"`
	BatteryPricePerKWh float64 `gorm:"column:battery_price_per_kwh"`
}

func (ProductType) TableName() string { return "product_types" }

// SystemReservation is one configurator submission. The estimated price is
// fixed at creation from the product's pricing row and never recomputed.
type SystemReservation struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID           uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductTypeCode     string    `gorm:"not null"`
	SolarSizeKW         int       `gorm:"column:solar_size_kw;not null"`
	BatterySizeKWh      int       `gorm:"column:battery_size_kwh;not null"`
	EVIntegration       bool      `gorm:"column:ev_integration;not null;default:false"`
	PreferredTimeline   string    `gorm:"not null"`
	BudgetRange         string    `gorm:"not null;default:'no-preference'"`
	SpecialRequirements string    `gorm:"type:text"`
	EstimatedPrice      float64   `gorm:"not null"`
	CurrencyCode        string    `gorm:"not null;default:'USD'"`
	Status              string    `gorm:"not null;default:'pending'"`
	InternalNotes       string    `gorm:"type:text"`
	CreatedAt           time.Time `gorm:"not null;default:now()"`
	UpdatedAt           time.Time `gorm:"not null;default:now()"`
}

func (r *SystemReservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Statuses is the operator workflow for a reservation. Not enforced as a
// strict state machine: any value in the set is accepted and stored.
var Statuses = []string{
	"pending", "contacted", "site-assessment-scheduled",
	"site-assessment-completed", "proposal-sent", "contract-signed",
	"installation-scheduled", "installed", "cancelled", "on-hold",
}
