package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ── 测试辅助 ──

func setupTestAvailabilityService() (AvailabilityService, *mockActivityRepo, *mockScheduleRepo, *mockBookingRepo) {
	activityRepo := newMockActivityRepo()
	scheduleRepo := newMockScheduleRepo()
	bookingRepo := newMockBookingRepo()
	repo := &repository.Repository{
		Activity:  activityRepo,
		Schedule:  scheduleRepo,
		Booking:   bookingRepo,
		FormField: newMockFormFieldRepo(),
	}
	svc := NewAvailabilityService(repo, zap.NewNop())
	return svc, activityRepo, scheduleRepo, bookingRepo
}

func intPtr(n int) *int { return &n }

// ── Resolve: 四层优先级 ──

func TestAvailabilityService_Resolve_WeeklyDefault(t *testing.T) {
	svc, _, scheduleRepo, _ := setupTestAvailabilityService()

	// 2024-12-23 是周一 (dayOfWeek=1)
	scheduleRepo.defaults[1] = &model.WorkingHours{
		DayOfWeek: 1, StartTime: "09:00:00", EndTime: "18:00:00", IsActive: true,
	}

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	hours, err := svc.Resolve(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.Source != SourceWeeklyDefault {
		t.Errorf("期望 Source=%s，实际=%s", SourceWeeklyDefault, hours.Source)
	}
	if hours.StartTime != "09:00" || hours.EndTime != "18:00" {
		t.Errorf("期望 09:00-18:00，实际 %s-%s", hours.StartTime, hours.EndTime)
	}
	if !hours.IsOpen {
		t.Error("期望 IsOpen=true")
	}
}

func TestAvailabilityService_Resolve_WeekdayOverrideBeatsDefault(t *testing.T) {
	svc, _, scheduleRepo, _ := setupTestAvailabilityService()

	scheduleRepo.defaults[1] = &model.WorkingHours{
		DayOfWeek: 1, StartTime: "09:00:00", EndTime: "18:00:00", IsActive: true,
	}
	scheduleRepo.weekdayOverrides["act-001|1"] = &model.ActivityAvailabilityOverride{
		ActivityID: "act-001", DayOfWeek: intPtr(1),
		StartTime: "10:00:00", EndTime: "14:00:00", IsAvailable: true,
	}

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC) // 周一
	hours, err := svc.Resolve(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.Source != SourceActivityWeekday {
		t.Errorf("期望 Source=%s，实际=%s", SourceActivityWeekday, hours.Source)
	}
	if hours.StartTime != "10:00" || hours.EndTime != "14:00" {
		t.Errorf("期望 10:00-14:00，实际 %s-%s", hours.StartTime, hours.EndTime)
	}
}

func TestAvailabilityService_Resolve_DateOverrideBeatsWeekday(t *testing.T) {
	svc, _, scheduleRepo, _ := setupTestAvailabilityService()

	// 2024-12-25 是周三 (dayOfWeek=3)
	scheduleRepo.defaults[3] = &model.WorkingHours{
		DayOfWeek: 3, StartTime: "09:00:00", EndTime: "18:00:00", IsActive: true,
	}
	scheduleRepo.weekdayOverrides["act-001|3"] = &model.ActivityAvailabilityOverride{
		ActivityID: "act-001", DayOfWeek: intPtr(3),
		StartTime: "10:00:00", EndTime: "14:00:00", IsAvailable: true,
	}
	// 节假日全局闭店
	scheduleRepo.dateOverrides["2024-12-25"] = &model.WorkingHoursDateOverride{
		SpecificDate: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		StartTime:    "00:00:00", EndTime: "00:00:00", IsOpen: false,
	}

	date := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	hours, err := svc.Resolve(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.Source != SourceGlobalDate {
		t.Errorf("期望 Source=%s，实际=%s", SourceGlobalDate, hours.Source)
	}
	if hours.IsOpen {
		t.Error("节假日闭店：期望 IsOpen=false")
	}
}

func TestAvailabilityService_Resolve_ActivityDateBeatsAll(t *testing.T) {
	svc, _, scheduleRepo, _ := setupTestAvailabilityService()

	scheduleRepo.dateOverrides["2024-12-25"] = &model.WorkingHoursDateOverride{
		SpecificDate: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		StartTime:    "00:00:00", EndTime: "00:00:00", IsOpen: false,
	}
	specificDate := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	scheduleRepo.activityDateOverrides["act-001|2024-12-25"] = &model.ActivityAvailabilityOverride{
		ActivityID: "act-001", SpecificDate: &specificDate,
		StartTime: "11:00:00", EndTime: "13:00:00", IsAvailable: true,
	}

	hours, err := svc.Resolve(context.Background(), "act-001", specificDate)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.Source != SourceActivityDate {
		t.Errorf("期望 Source=%s，实际=%s", SourceActivityDate, hours.Source)
	}
	if !hours.IsOpen || hours.StartTime != "11:00" {
		t.Errorf("期望 11:00 开放，实际 IsOpen=%v Start=%s", hours.IsOpen, hours.StartTime)
	}
}

func TestAvailabilityService_Resolve_WinningLayerTakenInFull(t *testing.T) {
	svc, _, scheduleRepo, _ := setupTestAvailabilityService()

	// 命中层标记闭店时不得继续咨询下层
	scheduleRepo.weekdayOverrides["act-001|1"] = &model.ActivityAvailabilityOverride{
		ActivityID: "act-001", DayOfWeek: intPtr(1),
		StartTime: "00:00:00", EndTime: "00:00:00", IsAvailable: false,
	}
	scheduleRepo.defaults[1] = &model.WorkingHours{
		DayOfWeek: 1, StartTime: "09:00:00", EndTime: "18:00:00", IsActive: true,
	}

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC) // 周一
	hours, err := svc.Resolve(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.Source != SourceActivityWeekday {
		t.Errorf("期望 Source=%s，实际=%s", SourceActivityWeekday, hours.Source)
	}
	if hours.IsOpen {
		t.Error("命中层闭店：期望 IsOpen=false，不得回落到每周默认")
	}
}

func TestAvailabilityService_Resolve_AllLayersMissing(t *testing.T) {
	svc, _, _, _ := setupTestAvailabilityService()

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	hours, err := svc.Resolve(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("Resolve 应成功: %v", err)
	}
	if hours.IsOpen {
		t.Error("所有层缺失：期望闭店")
	}
	if hours.Source != SourceNone {
		t.Errorf("期望 Source=%s，实际=%s", SourceNone, hours.Source)
	}
}

// ── DayAvailability ──

func TestAvailabilityService_DayAvailability_ActivityNotFound(t *testing.T) {
	svc, _, _, _ := setupTestAvailabilityService()

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	_, err := svc.DayAvailability(context.Background(), "nonexistent", date)
	if !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("期望 ErrActivityNotFound，实际: %v", err)
	}
}

func TestAvailabilityService_DayAvailability_Success(t *testing.T) {
	svc, activityRepo, scheduleRepo, bookingRepo := setupTestAvailabilityService()

	activityRepo.activities["act-001"] = &model.Activity{
		ActivityID: "act-001", Name: "Kayak", MaxCapacity: 10, IsActive: true,
	}
	scheduleRepo.defaults[1] = &model.WorkingHours{
		DayOfWeek: 1, StartTime: "09:00:00", EndTime: "18:00:00", IsActive: true,
	}

	date := time.Date(2024, 12, 23, 0, 0, 0, 0, time.UTC)
	bookingRepo.bookings["bk-001"] = &model.Booking{
		BookingID: "bk-001", ActivityID: "act-001", BookingDate: date,
		StartTime: "10:00:00", EndTime: "11:00:00",
		CustomerName: "Mario Rossi", NumberOfPeople: 4, Status: model.StatusConfirmed,
		Source: model.SourceShopify,
	}

	result, err := svc.DayAvailability(context.Background(), "act-001", date)
	if err != nil {
		t.Fatalf("DayAvailability 应成功: %v", err)
	}
	if result.Date != "2024-12-23" {
		t.Errorf("期望 Date=2024-12-23，实际=%s", result.Date)
	}
	if result.Hours.Source != SourceWeeklyDefault {
		t.Errorf("期望 Source=%s，实际=%s", SourceWeeklyDefault, result.Hours.Source)
	}
	if len(result.Slots) != 1 {
		t.Fatalf("期望 1 个时段，实际=%d", len(result.Slots))
	}
	if result.Slots[0].Booked != 4 || result.Slots[0].Available != 6 {
		t.Errorf("期望 booked=4 available=6，实际 booked=%d available=%d",
			result.Slots[0].Booked, result.Slots[0].Available)
	}
}
