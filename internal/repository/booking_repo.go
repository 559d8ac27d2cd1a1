package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matteoalessi-space/booking-system/internal/model"
)

// BookingRepository 预订数据访问接口
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	// CreateIfAbsent 以 insert-or-detect-conflict 方式写入：
	// 幂等键冲突时返回 (false, nil)，成功插入返回 (true, nil)。
	// 依赖 bookings 表上的部分唯一索引，而非先查后插
	CreateIfAbsent(ctx context.Context, booking *model.Booking) (bool, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByDate(ctx context.Context, date time.Time, activityID string) ([]model.Booking, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo 创建 BookingRepository 实例
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepo) CreateIfAbsent(ctx context.Context, booking *model.Booking) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(booking)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) ListByDate(ctx context.Context, date time.Time, activityID string) ([]model.Booking, error) {
	var bookings []model.Booking
	db := r.db.WithContext(ctx).Where("booking_date = ?", date.Format("2006-01-02"))
	if activityID != "" {
		db = db.Where("activity_id = ?", activityID)
	}
	err := db.Order("start_time ASC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("booking_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *bookingRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Booking{}).Error
}
