package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/model"
)

// FormFieldRepository 自定义表单字段数据访问接口
type FormFieldRepository interface {
	ListByActivity(ctx context.Context, activityID string) ([]model.BookingFormField, error)
	CreateResponses(ctx context.Context, responses []model.BookingFieldResponse) error
}

type formFieldRepo struct {
	db *gorm.DB
}

// NewFormFieldRepo 创建 FormFieldRepository 实例
func NewFormFieldRepo(db *gorm.DB) FormFieldRepository {
	return &formFieldRepo{db: db}
}

func (r *formFieldRepo) ListByActivity(ctx context.Context, activityID string) ([]model.BookingFormField, error) {
	var fields []model.BookingFormField
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("order_position ASC").
		Find(&fields).Error
	return fields, err
}

func (r *formFieldRepo) CreateResponses(ctx context.Context, responses []model.BookingFieldResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&responses).Error
}
