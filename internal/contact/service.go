package contact

import (
	"context"
	"errors"
	"time"

	"ceerion/internal/jobs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Statuses a submission can carry. Transitions are operator-driven and not
// enforced as a state machine: any value in the set is accepted.
var SubmissionStatuses = []string{"new", "in-progress", "responded", "closed"}

type Service struct {
	DB     *gorm.DB
	Notify *jobs.Notifier

	// Recipient of internal new-submission notifications.
	AdminEmail string
}

type MessageInput struct {
	Name        string
	Email       string
	ProjectType string
	Message     string
	Location    string
	Phone       string
}

type MessageResult struct {
	SubmissionID uuid.UUID
	ContactID    uuid.UUID
	CreatedAt    time.Time
}

// RecordMessage reconciles the contact and writes one submission row, both
// inside a single transaction. Notification email is enqueued only after
// the transaction commits.
func (s *Service) RecordMessage(ctx context.Context, in MessageInput) (MessageResult, error) {
	first, last := SplitName(in.Name)

	var res MessageResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contactID, err := Reconcile(tx, in.Email, Fields{
			FirstName: first,
			LastName:  last,
			Phone:     in.Phone,
			Location:  in.Location,
		})
		if err != nil {
			return err
		}

		sub := Submission{
			ContactID:   contactID,
			ProjectType: in.ProjectType,
			Message:     in.Message,
			Status:      "new",
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}

		res = MessageResult{
			SubmissionID: sub.ID,
			ContactID:    contactID,
			CreatedAt:    sub.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return MessageResult{}, err
	}

	if s.Notify != nil {
		s.Notify.Enqueue(in.Email, "contact_confirmation", map[string]any{
			"name":         first,
			"projectType":  in.ProjectType,
			"message":      in.Message,
			"submissionId": res.SubmissionID.String(),
		})
		s.Notify.Enqueue(s.AdminEmail, "new_contact_notification", map[string]any{
			"name":         in.Name,
			"email":        in.Email,
			"phone":        in.Phone,
			"location":     in.Location,
			"projectType":  in.ProjectType,
			"message":      in.Message,
			"submissionId": res.SubmissionID.String(),
			"createdAt":    res.CreatedAt.Format(time.RFC3339),
		})
	}

	return res, nil
}

type ListQuery struct {
	Status      string
	ProjectType string
	Limit       int
	Offset      int
}

type SubmissionRow struct {
	ID          uuid.UUID  `json:"id"`
	ProjectType string     `json:"project_type"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Location    string     `json:"location"`
	CountryCode string     `json:"country_code"`
}

// ListResult echoes the clamped Limit and Offset the query actually ran
// with, so callers paginate on the effective values, not the raw input.
type ListResult struct {
	Submissions []SubmissionRow
	Total       int64
	Limit       int
	Offset      int
}

func (s *Service) ListSubmissions(ctx context.Context, in ListQuery) (ListResult, error) {
	if in.Limit <= 0 || in.Limit > 200 {
		in.Limit = 50
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	base := s.DB.WithContext(ctx).
		Table("contact_submissions cs").
		Joins("JOIN contacts c ON cs.contact_id = c.id")
	if in.Status != "" {
		base = base.Where("cs.status = ?", in.Status)
	}
	if in.ProjectType != "" {
		base = base.Where("cs.project_type = ?", in.ProjectType)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	rows := make([]SubmissionRow, 0, in.Limit)
	err := base.Session(&gorm.Session{}).
		Select("cs.id, cs.project_type, cs.message, cs.status, cs.created_at, cs.responded_at, " +
			"c.first_name, c.last_name, c.email, c.phone, c.location, c.country_code").
		Order("cs.created_at desc").
		Limit(in.Limit).Offset(in.Offset).
		Scan(&rows).Error
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{Submissions: rows, Total: total, Limit: in.Limit, Offset: in.Offset}, nil
}

type StatusResult struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at"`
}

// UpdateSubmissionStatus sets the status of one submission. Setting status
// to "responded" stamps responded_at to now, including when the submission
// is already in that status: re-responding refreshes the timestamp, which
// downstream "last response" reporting relies on.
func (s *Service) UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status string) (StatusResult, error) {
	var res StatusResult
	err := s.DB.WithContext(ctx).Raw(`
update contact_submissions
set status = ?,
    responded_at = case when ? = 'responded' then now() else responded_at end
where id = ?
returning id, status, responded_at
`, status, status, id).Scan(&res).Error
	if err != nil {
		return StatusResult{}, err
	}
	if res.ID == uuid.Nil {
		return StatusResult{}, ErrNotFound
	}
	return res, nil
}

type Stats struct {
	TotalSubmissions int64 `json:"total_submissions" gorm:"column:total_submissions"`
	NewSubmissions   int64 `json:"new_submissions" gorm:"column:new_submissions"`
	InProgress       int64 `json:"in_progress" gorm:"column:in_progress"`
	Responded        int64 `json:"responded" gorm:"column:responded"`
	Closed           int64 `json:"closed" gorm:"column:closed"`
	Residential      int64 `json:"residential" gorm:"column:residential"`
	Commercial       int64 `json:"commercial" gorm:"column:commercial"`
	Fleet            int64 `json:"fleet" gorm:"column:fleet"`
	Other            int64 `json:"other" gorm:"column:other"`
}

type DailyCount struct {
	Date  time.Time `json:"date" gorm:"column:date"`
	Count int64     `json:"count" gorm:"column:count"`
}

func (s *Service) Stats(ctx context.Context) (Stats, []DailyCount, error) {
	var st Stats
	if err := s.DB.WithContext(ctx).Raw(`
select
  count(*) as total_submissions,
  count(*) filter (where status = 'new') as new_submissions,
  count(*) filter (where status = 'in-progress') as in_progress,
  count(*) filter (where status = 'responded') as responded,
  count(*) filter (where status = 'closed') as closed,
  count(*) filter (where project_type = 'residential') as residential,
  count(*) filter (where project_type = 'commercial') as commercial,
  count(*) filter (where project_type = 'fleet') as fleet,
  count(*) filter (where project_type = 'other') as other
from contact_submissions
`).Scan(&st).Error; err != nil {
		return Stats{}, nil, err
	}

	var recent []DailyCount
	if err := s.DB.WithContext(ctx).Raw(`
select date_trunc('day', created_at) as date, count(*) as count
from contact_submissions
where created_at >= current_date - interval '30 days'
group by date_trunc('day', created_at)
order by date desc
`).Scan(&recent).Error; err != nil {
		return Stats{}, nil, err
	}

	return st, recent, nil
}
