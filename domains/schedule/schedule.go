package schedule

import (
	"context"
	"time"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule is a recurring instruction to generate and publish a post.
// LastFiredAt is the idempotency marker: it records the occurrence the
// engine last claimed, so the same occurrence never fires twice.
type Schedule struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	TopicID   string    `json:"topic_id"`
	Frequency Frequency `json:"frequency"`
	TimeOfDay string    `json:"time_of_day"` // "HH:MM" wall clock
	DayOfWeek int       `json:"day_of_week"` // 0=Sunday, weekly only
	AnchorDay int       `json:"anchor_day"`  // day of month, monthly only

	Active      bool       `json:"active"`
	LastFiredAt *time.Time `json:"last_fired_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateScheduleRequest struct {
	OwnerID   string    `json:"owner_id"`
	TopicID   string    `json:"topic_id"`
	Frequency Frequency `json:"frequency"`
	TimeOfDay string    `json:"time_of_day"`
	DayOfWeek int       `json:"day_of_week"`
	AnchorDay int       `json:"anchor_day"`
}

type UpdateScheduleRequest struct {
	TopicID   string    `json:"topic_id"`
	Frequency Frequency `json:"frequency"`
	TimeOfDay string    `json:"time_of_day"`
	DayOfWeek int       `json:"day_of_week"`
	AnchorDay int       `json:"anchor_day"`
	Active    *bool     `json:"active"`
}

type IScheduleUsecase interface {
	Create(ctx context.Context, req CreateScheduleRequest) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Schedule, error)
	Update(ctx context.Context, id string, req UpdateScheduleRequest) (Schedule, error)
	Delete(ctx context.Context, id string) error
}

type IScheduleRepository interface {
	Create(ctx context.Context, s *Schedule) error
	GetByID(ctx context.Context, id string) (Schedule, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Schedule, error)
	ListActive(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id string) error

	// AdvanceLastFired claims an occurrence with a conditional update. It
	// succeeds only when last_fired_at is still behind 'occurrence'; a
	// pkgError.ConflictError means another pass already claimed it.
	AdvanceLastFired(ctx context.Context, id string, occurrence time.Time) error
}
