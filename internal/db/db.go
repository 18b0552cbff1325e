package db

import (
	"fmt"

	"ceerion/internal/contact"
	"ceerion/internal/jobs"
	"ceerion/internal/newsletter"
	"ceerion/internal/reservation"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError maps unique-violation races onto gorm.ErrDuplicatedKey
	// so callers can report them as conflicts.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&contact.Contact{},
		&contact.Submission{},
		&newsletter.Subscription{},
		&reservation.ProductType{},
		&reservation.SystemReservation{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// At most one contact per case-insensitively-normalized email. This
	// index is the only duplicate-contact guard; concurrent first-time
	// submissions for the same email race here and one side loses with a
	// uniqueness violation.
	if err := gdb.Exec(`create unique index if not exists uq_contacts_email_lower on contacts (lower(email));`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_submissions_status_created on contact_submissions(status, created_at desc);`,
		`create index if not exists idx_reservations_status_created on system_reservations(status, created_at desc);`,
		`create index if not exists idx_subscriptions_active on newsletter_subscriptions(is_active, subscribed_at desc);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}

// SeedProductTypes installs the two product lines. Existing rows are left
// alone so pricing edits made in the database survive restarts.
func SeedProductTypes(gdb *gorm.DB) error {
	seed := []reservation.ProductType{
		{Code: "h1", Name: "H1 Home Essentials", BasePrice: 35000, SolarPricePerKW: 2500, BatteryPricePerKWh: 800},
		{Code: "b3", Name: "B3 Microgrid Campus", BasePrice: 95000, SolarPricePerKW: 2200, BatteryPricePerKWh: 700},
	}
	for _, p := range seed {
		res := gdb.Exec(`
insert into product_types (code, name, base_price, solar_price_per_kw, battery_price_per_kwh)
values (?, ?, ?, ?, ?)
on conflict (code) do nothing
`, p.Code, p.Name, p.BasePrice, p.SolarPricePerKW, p.BatteryPricePerKWh)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}
