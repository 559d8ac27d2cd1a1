package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/model"
)

// ActivityRepository 活动数据访问接口
type ActivityRepository interface {
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	List(ctx context.Context, onlyActive bool) ([]model.Activity, error)
	ListVariants(ctx context.Context, activityID string) ([]model.ActivityVariant, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) List(ctx context.Context, onlyActive bool) ([]model.Activity, error) {
	var activities []model.Activity
	db := r.db.WithContext(ctx)
	if onlyActive {
		db = db.Where("is_active = ?", true)
	}
	err := db.Preload("Variants", "is_active = ?", true).
		Order("name ASC").
		Find(&activities).Error
	return activities, err
}

func (r *activityRepo) ListVariants(ctx context.Context, activityID string) ([]model.ActivityVariant, error) {
	var variants []model.ActivityVariant
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND is_active = ?", activityID, true).
		Order("order_position ASC").
		Find(&variants).Error
	return variants, err
}
