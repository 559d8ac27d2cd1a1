package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ── 日历模块业务错误 ──

var (
	ErrCalendarInvalidRange = errors.New("日历时间范围无效")
)

// CalendarService 日历导出业务接口
// 将一段日期范围内的 pending / confirmed 预订序列化为 iCalendar (RFC 5545)
type CalendarService interface {
	BookingsICS(ctx context.Context, from, to time.Time) ([]byte, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) BookingsICS(ctx context.Context, from, to time.Time) ([]byte, error) {
	if to.Before(from) {
		return nil, ErrCalendarInvalidRange
	}

	bookings, err := s.repo.Booking.ListByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("查询预订失败", zap.Error(err))
		return nil, err
	}

	activities, err := s.repo.Activity.List(ctx, false)
	if err != nil {
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, err
	}
	activityNames := make(map[string]string, len(activities))
	for _, a := range activities {
		activityNames[a.ActivityID] = a.Name
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//booking-system//Prenotazioni//IT")

	for i := range bookings {
		b := &bookings[i]
		if !b.Countable() {
			continue
		}

		start, err := combineDateTime(b.BookingDate, b.StartTime)
		if err != nil {
			s.logger.Warn("预订开始时间无效，跳过日历事件",
				zap.String("booking_id", b.BookingID),
				zap.Error(err),
			)
			continue
		}
		end, err := combineDateTime(b.BookingDate, b.EndTime)
		if err != nil {
			s.logger.Warn("预订结束时间无效，跳过日历事件",
				zap.String("booking_id", b.BookingID),
				zap.Error(err),
			)
			continue
		}

		name := activityNames[b.ActivityID]
		if name == "" {
			name = b.ActivityID
		}

		event := cal.AddEvent("booking-" + b.BookingID)
		event.SetCreatedTime(b.CreatedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s - %s", name, b.CustomerName))
		event.SetDescription(eventDescription(b))
	}

	return []byte(cal.Serialize()), nil
}

// combineDateTime 将日期与 "HH:MM"/"HH:MM:SS" 时间合并为时间点
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm(clock))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func eventDescription(b *model.Booking) string {
	desc := fmt.Sprintf("Persone: %d\nStato: %s", b.NumberOfPeople, b.Status)
	if b.Notes != nil && *b.Notes != "" {
		desc += "\nNote: " + *b.Notes
	}
	return desc
}
