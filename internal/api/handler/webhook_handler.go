package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/service"
	"github.com/matteoalessi-space/booking-system/pkg/response"
)

// WebhookHandler 订单 Webhook HTTP 处理器
type WebhookHandler struct {
	webhookSvc service.WebhookService
}

// NewWebhookHandler 创建 WebhookHandler
func NewWebhookHandler(webhookSvc service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// HandleShopifyOrder 接收 Shopify 订单事件
// POST /api/v1/webhooks/shopify
//
// 所有订单行尝试完毕即确认成功，行内失败被吸收（避免发送方对
// 永远无法成功的行无限重投）；仅载荷不可解析等顶层错误返回失败
func (h *WebhookHandler) HandleShopifyOrder(c *gin.Context) {
	topic := c.GetHeader("X-Shopify-Topic")

	var order dto.ShopifyOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		response.BadRequest(c, 20001, "订单载荷解析失败")
		return
	}

	if !service.HandledTopic(topic) {
		response.OK(c, gin.H{"message": "webhook topic not handled"})
		return
	}

	summary := h.webhookSvc.ProcessOrder(c.Request.Context(), topic, &order)
	response.OK(c, summary)
}
