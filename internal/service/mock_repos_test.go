package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/model"
)

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities map[string]*model.Activity
	variants   map[string][]model.ActivityVariant
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		activities: make(map[string]*model.Activity),
		variants:   make(map[string][]model.ActivityVariant),
	}
}

func (m *mockActivityRepo) GetByID(_ context.Context, id string) (*model.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) List(_ context.Context, onlyActive bool) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if onlyActive && !a.IsActive {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockActivityRepo) ListVariants(_ context.Context, activityID string) ([]model.ActivityVariant, error) {
	return m.variants[activityID], nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	activityDateOverrides map[string]*model.ActivityAvailabilityOverride // key: activityID|date
	dateOverrides         map[string]*model.WorkingHoursDateOverride     // key: date
	weekdayOverrides      map[string]*model.ActivityAvailabilityOverride // key: activityID|dayOfWeek
	defaults              map[int]*model.WorkingHours
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		activityDateOverrides: make(map[string]*model.ActivityAvailabilityOverride),
		dateOverrides:         make(map[string]*model.WorkingHoursDateOverride),
		weekdayOverrides:      make(map[string]*model.ActivityAvailabilityOverride),
		defaults:              make(map[int]*model.WorkingHours),
	}
}

func (m *mockScheduleRepo) GetActivityDateOverride(_ context.Context, activityID string, date time.Time) (*model.ActivityAvailabilityOverride, error) {
	key := activityID + "|" + date.Format("2006-01-02")
	if ov, ok := m.activityDateOverrides[key]; ok {
		return ov, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetDateOverride(_ context.Context, date time.Time) (*model.WorkingHoursDateOverride, error) {
	if ov, ok := m.dateOverrides[date.Format("2006-01-02")]; ok {
		return ov, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetActivityWeekdayOverride(_ context.Context, activityID string, dayOfWeek int) (*model.ActivityAvailabilityOverride, error) {
	key := fmt.Sprintf("%s|%d", activityID, dayOfWeek)
	if ov, ok := m.weekdayOverrides[key]; ok {
		return ov, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetDefaultByDay(_ context.Context, dayOfWeek int) (*model.WorkingHours, error) {
	if wh, ok := m.defaults[dayOfWeek]; ok {
		return wh, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListDefaults(_ context.Context) ([]model.WorkingHours, error) {
	var result []model.WorkingHours
	for _, wh := range m.defaults {
		result = append(result, *wh)
	}
	return result, nil
}

func (m *mockScheduleRepo) UpsertActivityOverride(_ context.Context, override *model.ActivityAvailabilityOverride) error {
	if override.SpecificDate != nil {
		key := override.ActivityID + "|" + override.SpecificDate.Format("2006-01-02")
		m.activityDateOverrides[key] = override
		return nil
	}
	if override.DayOfWeek != nil {
		key := fmt.Sprintf("%s|%d", override.ActivityID, *override.DayOfWeek)
		m.weekdayOverrides[key] = override
	}
	return nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings map[string]*model.Booking
	seq      int

	// idempotencyKeys 模拟 bookings 表上的部分唯一索引
	idempotencyKeys map[string]bool

	// failNextCreate 注入写入失败，用于部分失败隔离测试
	failNextCreate bool
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings:        make(map[string]*model.Booking),
		idempotencyKeys: make(map[string]bool),
	}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	if m.failNextCreate {
		m.failNextCreate = false
		return errors.New("数据库写入失败")
	}
	m.seq++
	if booking.BookingID == "" {
		booking.BookingID = fmt.Sprintf("bk-%03d", m.seq)
	}
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *mockBookingRepo) CreateIfAbsent(ctx context.Context, booking *model.Booking) (bool, error) {
	if m.failNextCreate {
		m.failNextCreate = false
		return false, errors.New("数据库写入失败")
	}
	if booking.ShopifyOrderID != nil {
		key := fmt.Sprintf("%s|%s|%s|%s",
			*booking.ShopifyOrderID, booking.ActivityID,
			booking.BookingDate.Format("2006-01-02"), booking.StartTime)
		if m.idempotencyKeys[key] {
			return false, nil
		}
		m.idempotencyKeys[key] = true
	}
	return true, m.Create(ctx, booking)
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) ListByDate(_ context.Context, date time.Time, activityID string) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		if b.BookingDate.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		if activityID != "" && b.ActivityID != activityID {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBookingRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		d := b.BookingDate.Format("2006-01-02")
		if d < from.Format("2006-01-02") || d > to.Format("2006-01-02") {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id string, status string) error {
	b, ok := m.bookings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Status = status
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	delete(m.bookings, id)
	return nil
}

// ── Mock FormFieldRepository ──

type mockFormFieldRepo struct {
	fields    map[string][]model.BookingFormField // key: activityID
	responses []model.BookingFieldResponse
}

func newMockFormFieldRepo() *mockFormFieldRepo {
	return &mockFormFieldRepo{fields: make(map[string][]model.BookingFormField)}
}

func (m *mockFormFieldRepo) ListByActivity(_ context.Context, activityID string) ([]model.BookingFormField, error) {
	return m.fields[activityID], nil
}

func (m *mockFormFieldRepo) CreateResponses(_ context.Context, responses []model.BookingFieldResponse) error {
	m.responses = append(m.responses, responses...)
	return nil
}

// ── Mock ConsentSyncer ──

type mockConsentSyncer struct {
	calls []int64
	err   error
}

func (m *mockConsentSyncer) UpdateCustomerConsent(_ context.Context, customerID int64, _ time.Time) error {
	m.calls = append(m.calls, customerID)
	return m.err
}
