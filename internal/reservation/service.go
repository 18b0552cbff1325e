package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ceerion/internal/contact"
	"ceerion/internal/estimate"
	"ceerion/internal/jobs"
	"ceerion/internal/newsletter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = errors.New("product type not found")
)

type Service struct {
	DB     *gorm.DB
	Notify *jobs.Notifier

	// Recipient of internal new-reservation notifications.
	SalesEmail string
}

type Input struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	Location     string
	Country      string
	PropertyType string

	ProductType   string
	SolarSizeKW   int
	BatterySizeKW int
	EVIntegration bool

	Timeline string
	Budget   string

	CurrentEnergyBill   *float64
	SpecialRequirements string

	PreferredContact string
	Newsletter       bool
}

type Result struct {
	ReservationID  uuid.UUID
	ContactID      uuid.UUID
	EstimatedPrice float64
	CreatedAt      time.Time
}

// Create records a reservation: product lookup, contact write, reservation
// insert and optional newsletter opt-in all run in one transaction, so an
// unknown product code or a failed insert leaves no partial state behind.
//
// The contact write is a full replace, not a merge: the reservation form
// carries the complete profile and is treated as authoritative.
func (s *Service) Create(ctx context.Context, in Input) (Result, error) {
	var res Result
	var product ProductType

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The product code is validated against an enum upstream, but the
		// enum and the reference table can drift; re-check here.
		err := tx.Where("code = ?", in.ProductType).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		price := estimate.Price(
			product.BasePrice, product.SolarPricePerKW, product.BatteryPricePerKWh,
			in.SolarSizeKW, in.BatterySizeKW,
		)

		subscribed := in.Newsletter
		contactID, err := contact.ReconcileReplace(tx, in.Email, contact.Fields{
			FirstName:              in.FirstName,
			LastName:               in.LastName,
			Phone:                  in.Phone,
			Location:               in.Location,
			CountryCode:            in.Country,
			PropertyType:           in.PropertyType,
			CurrentEnergyBill:      in.CurrentEnergyBill,
			PreferredContactMethod: in.PreferredContact,
			NewsletterSubscribed:   &subscribed,
		})
		if err != nil {
			return err
		}

		r := SystemReservation{
			ContactID:           contactID,
			ProductTypeCode:     in.ProductType,
			SolarSizeKW:         in.SolarSizeKW,
			BatterySizeKWh:      in.BatterySizeKW,
			EVIntegration:       in.EVIntegration,
			PreferredTimeline:   in.Timeline,
			BudgetRange:         in.Budget,
			SpecialRequirements: in.SpecialRequirements,
			EstimatedPrice:      price,
			CurrencyCode:        "USD",
			Status:              "pending",
			CreatedAt:           time.Now(),
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}

		if in.Newsletter {
			if err := newsletter.EnsureActive(tx, contactID, newsletter.DefaultReservationInterests, "weekly"); err != nil {
				return err
			}
		}

		res = Result{
			ReservationID:  r.ID,
			ContactID:      contactID,
			EstimatedPrice: price,
			CreatedAt:      r.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if s.Notify != nil {
		s.Notify.Enqueue(in.Email, "reservation_confirmation", map[string]any{
			"name":           fmt.Sprintf("%s %s", in.FirstName, in.LastName),
			"productName":    product.Name,
			"solarSize":      in.SolarSizeKW,
			"batterySize":    in.BatterySizeKW,
			"estimatedPrice": res.EstimatedPrice,
			"reservationId":  res.ReservationID.String(),
		})
		s.Notify.Enqueue(s.SalesEmail, "new_reservation_notification", map[string]any{
			"firstName":           in.FirstName,
			"lastName":            in.LastName,
			"email":               in.Email,
			"phone":               in.Phone,
			"location":            in.Location,
			"country":             in.Country,
			"propertyType":        in.PropertyType,
			"productName":         product.Name,
			"solarSize":           in.SolarSizeKW,
			"batterySize":         in.BatterySizeKW,
			"evIntegration":       in.EVIntegration,
			"timeline":            in.Timeline,
			"budget":              in.Budget,
			"specialRequirements": in.SpecialRequirements,
			"estimatedPrice":      res.EstimatedPrice,
			"reservationId":       res.ReservationID.String(),
			"createdAt":           res.CreatedAt.Format(time.RFC3339),
		})
	}

	return res, nil
}

type Detail struct {
	ID                  uuid.UUID `json:"id"`
	ProductTypeCode     string    `json:"product_type_code"`
	ProductName         string    `json:"product_name"`
	SolarSizeKW         int       `json:"solar_size_kw" gorm:"column:solar_size_kw"`
	BatterySizeKWh      int       `json:"battery_size_kwh" gorm:"column:battery_size_kwh"`
	EVIntegration       bool      `json:"ev_integration" gorm:"column:ev_integration"`
	PreferredTimeline   string    `json:"preferred_timeline"`
	BudgetRange         string    `json:"budget_range"`
	SpecialRequirements string    `json:"special_requirements"`
	EstimatedPrice      float64   `json:"estimated_price"`
	CurrencyCode        string    `json:"currency_code"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Location            string    `json:"location"`
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Detail, error) {
	var d Detail
	err := s.DB.WithContext(ctx).Raw(`
select r.id, r.product_type_code, p.name as product_name,
       r.solar_size_kw, r.battery_size_kwh, r.ev_integration,
       r.preferred_timeline, r.budget_range, r.special_requirements,
       r.estimated_price, r.currency_code, r.status, r.created_at,
       c.first_name, c.last_name, c.email, c.phone, c.location
from system_reservations r
join contacts c on r.contact_id = c.id
join product_types p on r.product_type_code = p.code
where r.id = ?
`, id).Scan(&d).Error
	if err != nil {
		return Detail{}, err
	}
	if d.ID == uuid.Nil {
		return Detail{}, ErrNotFound
	}
	return d, nil
}

type StatusResult struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateStatus sets the operator status and appends an optional note to
// the internal log. Notes are append-only, prefixed with a timestamp, and
// never replace earlier entries.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status, note string) (StatusResult, error) {
	entry := ""
	if note != "" {
		entry = fmt.Sprintf("\n%s: %s", time.Now().UTC().Format(time.RFC3339), note)
	}

	var res StatusResult
	err := s.DB.WithContext(ctx).Raw(`
update system_reservations
set status = ?,
    internal_notes = coalesce(internal_notes, '') || ?,
    updated_at = now()
where id = ?
returning id, status, updated_at
`, status, entry, id).Scan(&res).Error
	if err != nil {
		return StatusResult{}, err
	}
	if res.ID == uuid.Nil {
		return StatusResult{}, ErrNotFound
	}
	return res, nil
}

// GetProduct serves the estimate endpoint, which needs pricing parameters
// without writing anything.
func (s *Service) GetProduct(ctx context.Context, code string) (ProductType, error) {
	var p ProductType
	err := s.DB.WithContext(ctx).Where("code = ?", code).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductType{}, ErrProductNotFound
		}
		return ProductType{}, err
	}
	return p, nil
}
