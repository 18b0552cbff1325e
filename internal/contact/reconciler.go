package contact

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fields is a partial profile carried by a form submission. Empty strings
// and nil pointers mean "not supplied".
type Fields struct {
	FirstName              string
	LastName               string
	Phone                  string
	Location               string
	CountryCode            string
	PropertyType           string
	CurrentEnergyBill      *float64
	PreferredContactMethod string
	NewsletterSubscribed   *bool
}

// Reconcile finds or creates the contact for email inside tx and merges the
// supplied fields. A non-empty new value replaces the stored one; empty or
// absent values never erase what is already known.
func Reconcile(tx *gorm.DB, email string, f Fields) (uuid.UUID, error) {
	var c Contact
	err := tx.Where("lower(email) = lower(?)", email).First(&c).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, err
		}
		c = Contact{Email: email}
		merge(&c, f)
		if err := tx.Create(&c).Error; err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	}

	merge(&c, f)
	if err := tx.Save(&c).Error; err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

// ReconcileReplace is the reservation-flow variant: every field is written
// unconditionally, empty or not. The reservation form requires the full
// profile, so a reservation is treated as authoritative over prior values.
// The asymmetry with Reconcile is deliberate; do not unify without
// product-owner sign-off.
func ReconcileReplace(tx *gorm.DB, email string, f Fields) (uuid.UUID, error) {
	var c Contact
	err := tx.Where("lower(email) = lower(?)", email).First(&c).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, err
		}
		c = Contact{Email: email}
		replace(&c, f)
		if err := tx.Create(&c).Error; err != nil {
			return uuid.Nil, err
		}
		return c.ID, nil
	}

	replace(&c, f)
	if err := tx.Save(&c).Error; err != nil {
		return uuid.Nil, err
	}
	return c.ID, nil
}

func merge(c *Contact, f Fields) {
	setIfNotEmpty(&c.FirstName, f.FirstName)
	setIfNotEmpty(&c.LastName, f.LastName)
	setIfNotEmpty(&c.Phone, f.Phone)
	setIfNotEmpty(&c.Location, f.Location)
	setIfNotEmpty(&c.CountryCode, f.CountryCode)
	setIfNotEmpty(&c.PropertyType, f.PropertyType)
	setIfNotEmpty(&c.PreferredContactMethod, f.PreferredContactMethod)
	if f.CurrentEnergyBill != nil {
		c.CurrentEnergyBill = f.CurrentEnergyBill
	}
	if f.NewsletterSubscribed != nil {
		c.NewsletterSubscribed = *f.NewsletterSubscribed
	}
}

func replace(c *Contact, f Fields) {
	c.FirstName = f.FirstName
	c.LastName = f.LastName
	c.Phone = f.Phone
	c.Location = f.Location
	c.CountryCode = f.CountryCode
	c.PropertyType = f.PropertyType
	c.CurrentEnergyBill = f.CurrentEnergyBill
	if f.PreferredContactMethod != "" {
		c.PreferredContactMethod = f.PreferredContactMethod
	}
	if f.NewsletterSubscribed != nil {
		c.NewsletterSubscribed = *f.NewsletterSubscribed
	}
}

func setIfNotEmpty(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// SplitName breaks a single full-name input into first and last name.
// Everything after the first word ends up in the last name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
