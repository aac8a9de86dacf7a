package topic

import (
	"context"
	"time"
)

type PostLength string

const (
	PostLengthShort  PostLength = "short"
	PostLengthMedium PostLength = "medium"
	PostLengthLong   PostLength = "long"
)

// LengthBounds returns the character range generated content must land in
// for a given length class.
func LengthBounds(length PostLength) (min, max int) {
	switch length {
	case PostLengthShort:
		return 300, 600
	case PostLengthLong:
		return 1200, 2900
	default:
		return 600, 1200
	}
}

// Topic describes what a schedule posts about.
type Topic struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	PostLength   PostLength `json:"post_length"`
	IncludeImage bool       `json:"include_image"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateTopicRequest struct {
	OwnerID      string     `json:"owner_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PostLength   PostLength `json:"post_length"`
	IncludeImage bool       `json:"include_image"`
}

type UpdateTopicRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PostLength   PostLength `json:"post_length"`
	IncludeImage bool       `json:"include_image"`
}

type ITopicUsecase interface {
	Create(ctx context.Context, req CreateTopicRequest) (Topic, error)
	GetByID(ctx context.Context, id string) (Topic, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Topic, error)
	Update(ctx context.Context, id string, req UpdateTopicRequest) (Topic, error)
	Delete(ctx context.Context, id string) error
}

type ITopicRepository interface {
	Create(ctx context.Context, t *Topic) error
	GetByID(ctx context.Context, id string) (Topic, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Topic, error)
	Update(ctx context.Context, t *Topic) error
	Delete(ctx context.Context, id string) error
}
