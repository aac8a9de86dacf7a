package post

import (
	"context"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// ScheduledPost is a generated piece of content, either waiting to go out,
// already on the platform, or stranded after a publish failure.
type ScheduledPost struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	ScheduleID   string `json:"schedule_id,omitempty"` // empty for on-demand posts
	TopicID      string `json:"topic_id"`
	Content      string `json:"content"`
	ImagePayload string `json:"image_payload,omitempty"` // base64 PNG

	ScheduledFor   time.Time  `json:"scheduled_for"`
	Status         Status     `json:"status"`
	Error          string     `json:"error,omitempty"`
	PlatformPostID string     `json:"platform_post_id,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GeneratePostRequest struct {
	OwnerID      string `json:"owner_id"`
	TopicID      string `json:"topic_id"`
	Instructions string `json:"instructions,omitempty"`
}

type UpdatePostRequest struct {
	Content string `json:"content"`
}

type ListPostsFilter struct {
	OwnerID string
	Status  Status
}

type IPostUsecase interface {
	Generate(ctx context.Context, req GeneratePostRequest) (ScheduledPost, error)
	GetByID(ctx context.Context, id string) (ScheduledPost, error)
	List(ctx context.Context, filter ListPostsFilter) ([]ScheduledPost, error)
	UpdateContent(ctx context.Context, id string, req UpdatePostRequest) (ScheduledPost, error)
	Delete(ctx context.Context, id string) error

	// PublishNow pushes a pending post to the platform immediately.
	// Posts that are already published or deleted are rejected.
	PublishNow(ctx context.Context, id string) (ScheduledPost, error)
}

type IPostRepository interface {
	Create(ctx context.Context, p *ScheduledPost) error
	GetByID(ctx context.Context, id string) (ScheduledPost, error)
	List(ctx context.Context, filter ListPostsFilter) ([]ScheduledPost, error)
	Update(ctx context.Context, p *ScheduledPost) error
	Delete(ctx context.Context, id string) error

	MarkPublished(ctx context.Context, id, platformPostID string, publishedAt time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error
}
