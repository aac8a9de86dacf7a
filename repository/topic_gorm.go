package repository

import (
	"context"

	"github.com/AzielCF/az-post/domains/topic"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"gorm.io/gorm"
)

type TopicGormRepository struct {
	db *gorm.DB
}

func NewTopicGormRepository(db *gorm.DB) topic.ITopicRepository {
	return &TopicGormRepository{db: db}
}

func (r *TopicGormRepository) Create(ctx context.Context, t *topic.Topic) error {
	model := toTopicModel(*t)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *TopicGormRepository) GetByID(ctx context.Context, id string) (topic.Topic, error) {
	var m topicModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return topic.Topic{}, pkgError.NotFoundError("topic not found: " + id)
		}
		return topic.Topic{}, err
	}
	return fromTopicModel(m), nil
}

func (r *TopicGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]topic.Topic, error) {
	var models []topicModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]topic.Topic, len(models))
	for i, m := range models {
		res[i] = fromTopicModel(m)
	}
	return res, nil
}

func (r *TopicGormRepository) Update(ctx context.Context, t *topic.Topic) error {
	model := toTopicModel(*t)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *TopicGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&topicModel{}, "id = ?", id).Error
}
