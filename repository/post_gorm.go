package repository

import (
	"context"
	"time"

	"github.com/AzielCF/az-post/domains/post"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"gorm.io/gorm"
)

type PostGormRepository struct {
	db *gorm.DB
}

func NewPostGormRepository(db *gorm.DB) post.IPostRepository {
	return &PostGormRepository{db: db}
}

func (r *PostGormRepository) Create(ctx context.Context, p *post.ScheduledPost) error {
	model := toPostModel(*p)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *PostGormRepository) GetByID(ctx context.Context, id string) (post.ScheduledPost, error) {
	var m postModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return post.ScheduledPost{}, pkgError.NotFoundError("post not found: " + id)
		}
		return post.ScheduledPost{}, err
	}
	return fromPostModel(m), nil
}

func (r *PostGormRepository) List(ctx context.Context, filter post.ListPostsFilter) ([]post.ScheduledPost, error) {
	q := r.db.WithContext(ctx).Model(&postModel{})
	if filter.OwnerID != "" {
		q = q.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var models []postModel
	if err := q.Order("scheduled_for DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]post.ScheduledPost, len(models))
	for i, m := range models {
		res[i] = fromPostModel(m)
	}
	return res, nil
}

func (r *PostGormRepository) Update(ctx context.Context, p *post.ScheduledPost) error {
	model := toPostModel(*p)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *PostGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&postModel{}, "id = ?", id).Error
}

func (r *PostGormRepository) MarkPublished(ctx context.Context, id, platformPostID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":           string(post.StatusPublished),
			"platform_post_id": platformPostID,
			"published_at":     publishedAt,
			"error":            "",
			"updated_at":       time.Now().UTC(),
		}).Error
}

func (r *PostGormRepository) MarkFailed(ctx context.Context, id, reason string) error {
	return r.db.WithContext(ctx).Model(&postModel{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(post.StatusFailed),
			"error":      reason,
			"updated_at": time.Now().UTC(),
		}).Error
}
