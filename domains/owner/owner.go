package owner

import (
	"context"
	"time"
)

// Owner is an account that owns topics, schedules and posts, together with
// the persona used to steer content generation and the platform credential
// used to publish.
type Owner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Profession string `json:"profession,omitempty"`
	Industry   string `json:"industry,omitempty"`
	Tone       string `json:"tone,omitempty"`
	Bio        string `json:"bio,omitempty"`

	LinkedInMemberID string     `json:"linkedin_member_id,omitempty"`
	LinkedInToken    string     `json:"-"`
	TokenExpiresAt   *time.Time `json:"token_expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCredential reports whether the owner holds a usable platform token.
func (o Owner) HasCredential(now time.Time) bool {
	if o.LinkedInToken == "" {
		return false
	}
	if o.TokenExpiresAt != nil && !o.TokenExpiresAt.After(now) {
		return false
	}
	return true
}

type CreateOwnerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Profession string `json:"profession"`
	Industry   string `json:"industry"`
	Tone       string `json:"tone"`
	Bio        string `json:"bio"`
}

type UpdateOwnerRequest struct {
	Name             string `json:"name"`
	Profession       string `json:"profession"`
	Industry         string `json:"industry"`
	Tone             string `json:"tone"`
	Bio              string `json:"bio"`
	LinkedInMemberID string `json:"linkedin_member_id"`
	LinkedInToken    string `json:"linkedin_token"`
}

type IOwnerUsecase interface {
	Create(ctx context.Context, req CreateOwnerRequest) (Owner, error)
	GetByID(ctx context.Context, id string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, id string, req UpdateOwnerRequest) (Owner, error)
	Delete(ctx context.Context, id string) error
}

type IOwnerRepository interface {
	Create(ctx context.Context, o *Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	Update(ctx context.Context, o *Owner) error
	Delete(ctx context.Context, id string) error
}
