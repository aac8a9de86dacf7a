package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/AzielCF/az-post/domains/owner"
	"github.com/AzielCF/az-post/domains/post"
	"github.com/AzielCF/az-post/domains/schedule"
	"github.com/AzielCF/az-post/domains/topic"
	"gorm.io/gorm"
)

// --- Persistence Models ---

type ownerModel struct {
	ID               string         `gorm:"primaryKey;column:id"`
	Name             string         `gorm:"column:name;not null"`
	Email            string         `gorm:"column:email;not null;uniqueIndex"`
	Profession       sql.NullString `gorm:"column:profession"`
	Industry         sql.NullString `gorm:"column:industry"`
	Tone             sql.NullString `gorm:"column:tone"`
	Bio              sql.NullString `gorm:"column:bio"`
	LinkedInMemberID sql.NullString `gorm:"column:linkedin_member_id"`
	LinkedInToken    sql.NullString `gorm:"column:linkedin_token"`
	TokenExpiresAt   *time.Time     `gorm:"column:token_expires_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;not null"`
}

func (ownerModel) TableName() string { return "owners" }

type topicModel struct {
	ID           string         `gorm:"primaryKey;column:id"`
	OwnerID      string         `gorm:"column:owner_id;not null;index"`
	Name         string         `gorm:"column:name;not null"`
	Description  sql.NullString `gorm:"column:description"`
	PostLength   string         `gorm:"column:post_length;default:'medium'"`
	IncludeImage bool           `gorm:"column:include_image;default:false"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;not null"`
}

func (topicModel) TableName() string { return "topics" }

type scheduleModel struct {
	ID          string     `gorm:"primaryKey;column:id"`
	OwnerID     string     `gorm:"column:owner_id;not null;index"`
	TopicID     string     `gorm:"column:topic_id;not null;index"`
	Frequency   string     `gorm:"column:frequency;not null"`
	TimeOfDay   string     `gorm:"column:time_of_day;not null"`
	DayOfWeek   int        `gorm:"column:day_of_week;default:0"`
	AnchorDay   int        `gorm:"column:anchor_day;default:0"`
	Active      bool       `gorm:"column:active;default:true;index"`
	LastFiredAt *time.Time `gorm:"column:last_fired_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null"`
}

func (scheduleModel) TableName() string { return "schedules" }

type postModel struct {
	ID             string         `gorm:"primaryKey;column:id"`
	OwnerID        string         `gorm:"column:owner_id;not null;index"`
	ScheduleID     sql.NullString `gorm:"column:schedule_id;index"`
	TopicID        string         `gorm:"column:topic_id;not null"`
	Content        string         `gorm:"column:content;type:text"`
	ImagePayload   sql.NullString `gorm:"column:image_payload;type:text"` // base64
	ScheduledFor   time.Time      `gorm:"column:scheduled_for;not null;index"`
	Status         string         `gorm:"column:status;default:'pending';index"`
	Error          sql.NullString `gorm:"column:error"`
	PlatformPostID sql.NullString `gorm:"column:platform_post_id"`
	PublishedAt    *time.Time     `gorm:"column:published_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;not null"`
}

func (postModel) TableName() string { return "scheduled_posts" }

// Init migrates all persistence models.
func Init(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&ownerModel{},
		&topicModel{},
		&scheduleModel{},
		&postModel{},
	)
}

// --- Converters ---

func toOwnerModel(o owner.Owner) ownerModel {
	return ownerModel{
		ID:               o.ID,
		Name:             o.Name,
		Email:            o.Email,
		Profession:       toNullString(o.Profession),
		Industry:         toNullString(o.Industry),
		Tone:             toNullString(o.Tone),
		Bio:              toNullString(o.Bio),
		LinkedInMemberID: toNullString(o.LinkedInMemberID),
		LinkedInToken:    toNullString(o.LinkedInToken),
		TokenExpiresAt:   o.TokenExpiresAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func fromOwnerModel(m ownerModel) owner.Owner {
	return owner.Owner{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Profession:       nullStringValue(m.Profession),
		Industry:         nullStringValue(m.Industry),
		Tone:             nullStringValue(m.Tone),
		Bio:              nullStringValue(m.Bio),
		LinkedInMemberID: nullStringValue(m.LinkedInMemberID),
		LinkedInToken:    nullStringValue(m.LinkedInToken),
		TokenExpiresAt:   m.TokenExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toTopicModel(t topic.Topic) topicModel {
	return topicModel{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Name:         t.Name,
		Description:  toNullString(t.Description),
		PostLength:   string(t.PostLength),
		IncludeImage: t.IncludeImage,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func fromTopicModel(m topicModel) topic.Topic {
	return topic.Topic{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Description:  nullStringValue(m.Description),
		PostLength:   topic.PostLength(m.PostLength),
		IncludeImage: m.IncludeImage,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toScheduleModel(s schedule.Schedule) scheduleModel {
	return scheduleModel{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		TopicID:     s.TopicID,
		Frequency:   string(s.Frequency),
		TimeOfDay:   s.TimeOfDay,
		DayOfWeek:   s.DayOfWeek,
		AnchorDay:   s.AnchorDay,
		Active:      s.Active,
		LastFiredAt: s.LastFiredAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func fromScheduleModel(m scheduleModel) schedule.Schedule {
	return schedule.Schedule{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		TopicID:     m.TopicID,
		Frequency:   schedule.Frequency(m.Frequency),
		TimeOfDay:   m.TimeOfDay,
		DayOfWeek:   m.DayOfWeek,
		AnchorDay:   m.AnchorDay,
		Active:      m.Active,
		LastFiredAt: m.LastFiredAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPostModel(p post.ScheduledPost) postModel {
	return postModel{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		ScheduleID:     toNullString(p.ScheduleID),
		TopicID:        p.TopicID,
		Content:        p.Content,
		ImagePayload:   toNullString(p.ImagePayload),
		ScheduledFor:   p.ScheduledFor,
		Status:         string(p.Status),
		Error:          toNullString(p.Error),
		PlatformPostID: toNullString(p.PlatformPostID),
		PublishedAt:    p.PublishedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromPostModel(m postModel) post.ScheduledPost {
	return post.ScheduledPost{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		ScheduleID:     nullStringValue(m.ScheduleID),
		TopicID:        m.TopicID,
		Content:        m.Content,
		ImagePayload:   nullStringValue(m.ImagePayload),
		ScheduledFor:   m.ScheduledFor,
		Status:         post.Status(m.Status),
		Error:          nullStringValue(m.Error),
		PlatformPostID: nullStringValue(m.PlatformPostID),
		PublishedAt:    m.PublishedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringValue(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return strings.TrimSpace(ns.String)
}
