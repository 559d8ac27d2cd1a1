package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/model"
)

// ScheduleRepository 营业时间各层级数据访问接口
// 四个层级各有独立查询；记录缺失时返回 gorm.ErrRecordNotFound
type ScheduleRepository interface {
	// GetActivityDateOverride 第 1 层：活动+日期覆盖
	GetActivityDateOverride(ctx context.Context, activityID string, date time.Time) (*model.ActivityAvailabilityOverride, error)
	// GetDateOverride 第 2 层：全局日期覆盖
	GetDateOverride(ctx context.Context, date time.Time) (*model.WorkingHoursDateOverride, error)
	// GetActivityWeekdayOverride 第 3 层：活动+星期覆盖
	GetActivityWeekdayOverride(ctx context.Context, activityID string, dayOfWeek int) (*model.ActivityAvailabilityOverride, error)
	// GetDefaultByDay 第 4 层：全局每周默认
	GetDefaultByDay(ctx context.Context, dayOfWeek int) (*model.WorkingHours, error)

	ListDefaults(ctx context.Context) ([]model.WorkingHours, error)
	UpsertActivityOverride(ctx context.Context, override *model.ActivityAvailabilityOverride) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetActivityDateOverride(ctx context.Context, activityID string, date time.Time) (*model.ActivityAvailabilityOverride, error) {
	var override model.ActivityAvailabilityOverride
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND specific_date = ?", activityID, date.Format("2006-01-02")).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *scheduleRepo) GetDateOverride(ctx context.Context, date time.Time) (*model.WorkingHoursDateOverride, error) {
	var override model.WorkingHoursDateOverride
	err := r.db.WithContext(ctx).
		Where("specific_date = ?", date.Format("2006-01-02")).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *scheduleRepo) GetActivityWeekdayOverride(ctx context.Context, activityID string, dayOfWeek int) (*model.ActivityAvailabilityOverride, error) {
	var override model.ActivityAvailabilityOverride
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND day_of_week = ? AND specific_date IS NULL", activityID, dayOfWeek).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *scheduleRepo) GetDefaultByDay(ctx context.Context, dayOfWeek int) (*model.WorkingHours, error) {
	var hours model.WorkingHours
	err := r.db.WithContext(ctx).
		Where("day_of_week = ?", dayOfWeek).
		First(&hours).Error
	if err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *scheduleRepo) ListDefaults(ctx context.Context) ([]model.WorkingHours, error) {
	var hours []model.WorkingHours
	err := r.db.WithContext(ctx).
		Order("day_of_week ASC").
		Find(&hours).Error
	return hours, err
}

func (r *scheduleRepo) UpsertActivityOverride(ctx context.Context, override *model.ActivityAvailabilityOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}
