package repository

import (
	"context"

	"github.com/AzielCF/az-post/domains/owner"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"gorm.io/gorm"
)

type OwnerGormRepository struct {
	db *gorm.DB
}

func NewOwnerGormRepository(db *gorm.DB) owner.IOwnerRepository {
	return &OwnerGormRepository{db: db}
}

func (r *OwnerGormRepository) Create(ctx context.Context, o *owner.Owner) error {
	model := toOwnerModel(*o)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *OwnerGormRepository) GetByID(ctx context.Context, id string) (owner.Owner, error) {
	var m ownerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return owner.Owner{}, pkgError.NotFoundError("owner not found: " + id)
		}
		return owner.Owner{}, err
	}
	return fromOwnerModel(m), nil
}

func (r *OwnerGormRepository) List(ctx context.Context) ([]owner.Owner, error) {
	var models []ownerModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]owner.Owner, len(models))
	for i, m := range models {
		res[i] = fromOwnerModel(m)
	}
	return res, nil
}

func (r *OwnerGormRepository) Update(ctx context.Context, o *owner.Owner) error {
	model := toOwnerModel(*o)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *OwnerGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ownerModel{}, "id = ?", id).Error
}
