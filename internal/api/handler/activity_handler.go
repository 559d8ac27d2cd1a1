package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/internal/service"
	"github.com/matteoalessi-space/booking-system/pkg/response"
)

// ActivityHandler 活动 HTTP 处理器
type ActivityHandler struct {
	activitySvc service.ActivityService
}

// NewActivityHandler 创建 ActivityHandler
func NewActivityHandler(activitySvc service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// List 查询启用中的活动及其款式
// GET /api/v1/activities
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activitySvc.ListActive(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"activities": activities, "total": len(activities)})
}
