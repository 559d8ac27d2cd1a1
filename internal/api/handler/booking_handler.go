package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/service"
	"github.com/matteoalessi-space/booking-system/pkg/response"
)

// BookingHandler 预订 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Create 创建预订
// POST /api/v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// Get 查询单条预订
// GET /api/v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// List 查询某日期的预订列表
// GET /api/v1/bookings?date=2024-12-23[&activity_id=<uuid>]
func (h *BookingHandler) List(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, err := h.bookingSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, gin.H{"bookings": bookings, "total": len(bookings)})
}

// UpdateStatus 更新预订状态
// PUT /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// Delete 删除预订
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "预订已删除"})
}

// handleBookingError 统一处理预订模块业务错误
func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 40002, service.ErrBookingNotFound.Error())
	case errors.Is(err, service.ErrActivityNotFound):
		response.NotFound(c, 40001, service.ErrActivityNotFound.Error())
	case errors.Is(err, service.ErrInvalidBookingDate):
		response.BadRequest(c, 10001, service.ErrInvalidBookingDate.Error())
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 10001, service.ErrInvalidTimeRange.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 10001, service.ErrInvalidStatus.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/booking_handler.go
