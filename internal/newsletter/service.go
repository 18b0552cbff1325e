package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ceerion/internal/contact"
	"ceerion/internal/jobs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

// DefaultReservationInterests is applied when a reservation's newsletter
// opt-in has to create a subscription from scratch.
var DefaultReservationInterests = []string{"residential", "incentives"}

type Service struct {
	DB     *gorm.DB
	Notify *jobs.Notifier

	// Base URL for unsubscribe links placed in the welcome email.
	APIBaseURL string
}

type SubscribeInput struct {
	Email     string
	FirstName string
	Location  string
	Interests []string
	Frequency string
}

type SubscribeResult struct {
	ContactID      uuid.UUID
	SubscriptionID uuid.UUID
}

// Subscribe reconciles the contact and upserts its subscription. Repeat
// subscribes are idempotent at the business level: interests and frequency
// are replaced wholesale, is_active is forced true, and subscribed_at is
// refreshed only when the subscription was previously inactive.
func (s *Service) Subscribe(ctx context.Context, in SubscribeInput) (SubscribeResult, error) {
	subscribed := true

	var res SubscribeResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contactID, err := contact.Reconcile(tx, in.Email, contact.Fields{
			FirstName:            in.FirstName,
			Location:             in.Location,
			NewsletterSubscribed: &subscribed,
		})
		if err != nil {
			return err
		}
		res.ContactID = contactID

		var sub Subscription
		err = tx.Where("contact_id = ?", contactID).First(&sub).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			sub = Subscription{
				ContactID:    contactID,
				Interests:    pq.StringArray(NormalizeInterests(in.Interests)),
				Frequency:    in.Frequency,
				IsActive:     true,
				SubscribedAt: time.Now(),
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
			res.SubscriptionID = sub.ID
			return nil
		}

		applySubscribe(&sub, in.Interests, in.Frequency, time.Now())
		if err := tx.Save(&sub).Error; err != nil {
			return err
		}
		res.SubscriptionID = sub.ID
		return nil
	})
	if err != nil {
		return SubscribeResult{}, err
	}

	if s.Notify != nil {
		first := in.FirstName
		if first == "" {
			first = "Friend"
		}
		s.Notify.Enqueue(in.Email, "newsletter_welcome", map[string]any{
			"firstName":      first,
			"interests":      NormalizeInterests(in.Interests),
			"frequency":      in.Frequency,
			"unsubscribeUrl": fmt.Sprintf("%s/api/newsletter/unsubscribe/%s", s.APIBaseURL, res.ContactID),
		})
	}

	return res, nil
}

// applySubscribe is the reactivation rule from the standalone subscribe
// flow: full replace of interests/frequency, unlike the contact merge.
func applySubscribe(sub *Subscription, interests []string, frequency string, now time.Time) {
	sub.Interests = pq.StringArray(NormalizeInterests(interests))
	sub.Frequency = frequency
	if !sub.IsActive {
		sub.SubscribedAt = now
		sub.UnsubscribedAt = nil
	}
	sub.IsActive = true
}

// reservationOptInUpdates is everything a repeat reservation may change on
// an existing subscription: reactivate it and clear the unsubscribe stamp.
// Interests and frequency stay as the subscriber tailored them.
func reservationOptInUpdates() clause.Set {
	return clause.Assignments(map[string]any{
		"is_active":       true,
		"unsubscribed_at": nil,
	})
}

// EnsureActive is the reservation opt-in upsert: create an active
// subscription with the given defaults, or reactivate an existing row
// without touching its interests or frequency. A reservation must never
// silently downgrade a tailored subscription.
func EnsureActive(tx *gorm.DB, contactID uuid.UUID, interests []string, frequency string) error {
	sub := Subscription{
		ContactID:    contactID,
		Interests:    pq.StringArray(interests),
		Frequency:    frequency,
		IsActive:     true,
		SubscribedAt: time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact_id"}},
		DoUpdates: reservationOptInUpdates(),
	}).Create(&sub).Error
}

// Unsubscribe soft-deactivates by email. The row is kept so a later
// re-subscribe reactivates instead of duplicating.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
update newsletter_subscriptions
set is_active = false, unsubscribed_at = now()
from contacts
where newsletter_subscriptions.contact_id = contacts.id
  and lower(contacts.email) = lower(?)
`, email)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Exec(`
update contacts
set newsletter_subscribed = false, updated_at = now()
where lower(email) = lower(?)
`, email).Error
	})
}

// UnsubscribeByContact serves the one-click link in outbound email. Only
// active subscriptions match, so a stale link reports not found.
func (s *Service) UnsubscribeByContact(ctx context.Context, contactID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
update newsletter_subscriptions
set is_active = false, unsubscribed_at = now()
where contact_id = ? and is_active = true
`, contactID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Exec(`
update contacts
set newsletter_subscribed = false, updated_at = now()
where id = ?
`, contactID).Error
	})
}

type Stats struct {
	TotalSubscribers  int64 `json:"total_subscribers" gorm:"column:total_subscribers"`
	ActiveSubscribers int64 `json:"active_subscribers" gorm:"column:active_subscribers"`
	Unsubscribed      int64 `json:"unsubscribed" gorm:"column:unsubscribed"`
	Weekly            int64 `json:"weekly" gorm:"column:weekly"`
	Monthly           int64 `json:"monthly" gorm:"column:monthly"`
	Quarterly         int64 `json:"quarterly" gorm:"column:quarterly"`
	AnnouncementsOnly int64 `json:"announcements_only" gorm:"column:announcements_only"`
}

type InterestCount struct {
	Interest string `json:"interest" gorm:"column:interest"`
	Count    int64  `json:"count" gorm:"column:count"`
}

type DailySignups struct {
	Date    time.Time `json:"date" gorm:"column:date"`
	Signups int64     `json:"signups" gorm:"column:signups"`
}

func (s *Service) Stats(ctx context.Context) (Stats, []InterestCount, []DailySignups, error) {
	var st Stats
	if err := s.DB.WithContext(ctx).Raw(`
select
  count(*) as total_subscribers,
  count(*) filter (where is_active) as active_subscribers,
  count(*) filter (where not is_active) as unsubscribed,
  count(*) filter (where frequency = 'weekly' and is_active) as weekly,
  count(*) filter (where frequency = 'monthly' and is_active) as monthly,
  count(*) filter (where frequency = 'quarterly' and is_active) as quarterly,
  count(*) filter (where frequency = 'announcements' and is_active) as announcements_only
from newsletter_subscriptions
`).Scan(&st).Error; err != nil {
		return Stats{}, nil, nil, err
	}

	var interests []InterestCount
	if err := s.DB.WithContext(ctx).Raw(`
select unnest(interests) as interest, count(*) as count
from newsletter_subscriptions
where is_active = true and interests is not null and array_length(interests, 1) > 0
group by interest
order by count desc
`).Scan(&interests).Error; err != nil {
		return Stats{}, nil, nil, err
	}

	var recent []DailySignups
	if err := s.DB.WithContext(ctx).Raw(`
select date_trunc('day', subscribed_at) as date, count(*) as signups
from newsletter_subscriptions
where subscribed_at >= current_date - interval '30 days'
group by date_trunc('day', subscribed_at)
order by date desc
`).Scan(&recent).Error; err != nil {
		return Stats{}, nil, nil, err
	}

	return st, interests, recent, nil
}

// NormalizeInterests lowercases and dedupes while preserving order.
func NormalizeInterests(interests []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(interests))
	for _, it := range interests {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
