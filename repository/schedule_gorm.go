package repository

import (
	"context"
	"time"

	"github.com/AzielCF/az-post/domains/schedule"
	pkgError "github.com/AzielCF/az-post/pkg/error"
	"gorm.io/gorm"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) schedule.IScheduleRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	model := toScheduleModel(*s)
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *ScheduleGormRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	var m scheduleModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return schedule.Schedule{}, pkgError.NotFoundError("schedule not found: " + id)
		}
		return schedule.Schedule{}, err
	}
	return fromScheduleModel(m), nil
}

func (r *ScheduleGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]schedule.Schedule, error) {
	var models []scheduleModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]schedule.Schedule, len(models))
	for i, m := range models {
		res[i] = fromScheduleModel(m)
	}
	return res, nil
}

func (r *ScheduleGormRepository) ListActive(ctx context.Context) ([]schedule.Schedule, error) {
	var models []scheduleModel
	if err := r.db.WithContext(ctx).Where("active = ?", true).Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]schedule.Schedule, len(models))
	for i, m := range models {
		res[i] = fromScheduleModel(m)
	}
	return res, nil
}

func (r *ScheduleGormRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	model := toScheduleModel(*s)
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *ScheduleGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&scheduleModel{}, "id = ?", id).Error
}

// AdvanceLastFired claims one occurrence atomically. The WHERE clause makes
// the update a compare-and-set: it only lands when last_fired_at is still
// behind the occurrence, so concurrent passes cannot both claim it.
func (r *ScheduleGormRepository) AdvanceLastFired(ctx context.Context, id string, occurrence time.Time) error {
	res := r.db.WithContext(ctx).Model(&scheduleModel{}).
		Where("id = ? AND (last_fired_at IS NULL OR last_fired_at < ?)", id, occurrence).
		Updates(map[string]any{
			"last_fired_at": occurrence,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgError.ConflictError("occurrence already claimed for schedule " + id)
	}
	return nil
}
