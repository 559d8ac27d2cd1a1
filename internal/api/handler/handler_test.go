package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matteoalessi-space/booking-system/internal/dto"
	"github.com/matteoalessi-space/booking-system/internal/service"
	"github.com/matteoalessi-space/booking-system/pkg/response"
	"github.com/matteoalessi-space/booking-system/pkg/shopify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock WebhookService ──

type mockWebhookService struct {
	summary    *dto.IngestSummary
	lastTopic  string
	called     bool
	calledWith *dto.ShopifyOrder
}

func (m *mockWebhookService) ProcessOrder(_ context.Context, topic string, order *dto.ShopifyOrder) *dto.IngestSummary {
	m.called = true
	m.lastTopic = topic
	m.calledWith = order
	return m.summary
}

// ── Mock CatalogService ──

type mockCatalogService struct {
	products    []shopify.Product
	productsErr error
	product     *shopify.Product
	productErr  error
}

func (m *mockCatalogService) Products(_ context.Context) ([]shopify.Product, error) {
	return m.products, m.productsErr
}

func (m *mockCatalogService) Product(_ context.Context, _ string) (*shopify.Product, error) {
	return m.product, m.productErr
}

// ── Mock AvailabilityService ──

type mockAvailabilityService struct {
	resolved *dto.ResolvedHours
	day      *dto.DayAvailabilityResponse
	err      error
}

func (m *mockAvailabilityService) Resolve(_ context.Context, _ string, _ time.Time) (*dto.ResolvedHours, error) {
	return m.resolved, m.err
}

func (m *mockAvailabilityService) DayAvailability(_ context.Context, _ string, _ time.Time) (*dto.DayAvailabilityResponse, error) {
	return m.day, m.err
}

// ── Mock BookingService ──

type mockBookingService struct {
	booking  *dto.BookingResponse
	bookings []dto.BookingResponse
	err      error
}

func (m *mockBookingService) Create(_ context.Context, _ *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	return m.booking, m.err
}
func (m *mockBookingService) GetByID(_ context.Context, _ string) (*dto.BookingResponse, error) {
	return m.booking, m.err
}
func (m *mockBookingService) List(_ context.Context, _ *dto.BookingListRequest) ([]dto.BookingResponse, error) {
	return m.bookings, m.err
}
func (m *mockBookingService) UpdateStatus(_ context.Context, _ string, _ string) (*dto.BookingResponse, error) {
	return m.booking, m.err
}
func (m *mockBookingService) Delete(_ context.Context, _ string) error {
	return m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// WebhookHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWebhookHandler_HandleShopifyOrder_Success(t *testing.T) {
	mock := &mockWebhookService{summary: &dto.IngestSummary{Created: 2, Skipped: 1}}
	h := NewWebhookHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/shopify", jsonBody(dto.ShopifyOrder{
		ID: 5001, FinancialStatus: "paid",
	}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Topic", "orders/create")

	r := gin.New()
	r.POST("/webhooks/shopify", h.HandleShopifyOrder)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !mock.called || mock.lastTopic != "orders/create" {
		t.Errorf("期望以主题 orders/create 调用 Service，实际 called=%v topic=%s", mock.called, mock.lastTopic)
	}
}

func TestWebhookHandler_HandleShopifyOrder_UnhandledTopicAcknowledged(t *testing.T) {
	mock := &mockWebhookService{}
	h := NewWebhookHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/shopify", jsonBody(dto.ShopifyOrder{ID: 5001}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Topic", "orders/cancelled")

	r := gin.New()
	r.POST("/webhooks/shopify", h.HandleShopifyOrder)
	r.ServeHTTP(w, req)

	// 未处理主题也要确认收到，避免发送方重投
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.called {
		t.Error("未处理主题不应调用 Service")
	}
}

func TestWebhookHandler_HandleShopifyOrder_BadJSON(t *testing.T) {
	h := NewWebhookHandler(&mockWebhookService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhooks/shopify", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Topic", "orders/create")

	r := gin.New()
	r.POST("/webhooks/shopify", h.HandleShopifyOrder)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CatalogHandler Tests
// ═══════════════════════════════════════════════════════════

func TestCatalogHandler_Query_Products(t *testing.T) {
	mock := &mockCatalogService{
		products: []shopify.Product{{ID: 1, Title: "Kayak Tour"}},
	}
	h := NewCatalogHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shopify/catalog?action=products", nil)

	r := gin.New()
	r.GET("/shopify/catalog", h.Query)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestCatalogHandler_Query_NotConfigured(t *testing.T) {
	mock := &mockCatalogService{productsErr: service.ErrShopifyNotConfigured}
	h := NewCatalogHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shopify/catalog?action=products", nil)

	r := gin.New()
	r.GET("/shopify/catalog", h.Query)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30001 {
		t.Errorf("expected error code 30001, got %d", resp.Code)
	}
}

func TestCatalogHandler_Query_ProductMissingID(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shopify/catalog?action=product", nil)

	r := gin.New()
	r.GET("/shopify/catalog", h.Query)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30002 {
		t.Errorf("expected error code 30002, got %d", resp.Code)
	}
}

func TestCatalogHandler_Query_UpstreamErrorIsBadGateway(t *testing.T) {
	mock := &mockCatalogService{productsErr: &shopify.APIError{Status: 503}}
	h := NewCatalogHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shopify/catalog?action=products", nil)

	r := gin.New()
	r.GET("/shopify/catalog", h.Query)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestCatalogHandler_Query_InvalidAction(t *testing.T) {
	h := NewCatalogHandler(&mockCatalogService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shopify/catalog?action=delete", nil)

	r := gin.New()
	r.GET("/shopify/catalog", h.Query)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30003 {
		t.Errorf("expected error code 30003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AvailabilityHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAvailabilityHandler_DayAvailability_Success(t *testing.T) {
	mock := &mockAvailabilityService{
		day: &dto.DayAvailabilityResponse{
			ActivityID: "11111111-1111-1111-1111-111111111111",
			Date:       "2024-12-23",
			Hours:      dto.ResolvedHours{IsOpen: true, StartTime: "09:00", EndTime: "18:00"},
		},
	}
	h := NewAvailabilityHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?activity_id=11111111-1111-1111-1111-111111111111&date=2024-12-23", nil)

	r := gin.New()
	r.GET("/availability", h.DayAvailability)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAvailabilityHandler_DayAvailability_ActivityNotFound(t *testing.T) {
	mock := &mockAvailabilityService{err: service.ErrActivityNotFound}
	h := NewAvailabilityHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?activity_id=11111111-1111-1111-1111-111111111111&date=2024-12-23", nil)

	r := gin.New()
	r.GET("/availability", h.DayAvailability)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAvailabilityHandler_DayAvailability_MissingParams(t *testing.T) {
	h := NewAvailabilityHandler(&mockAvailabilityService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/availability?date=2024-12-23", nil)

	r := gin.New()
	r.GET("/availability", h.DayAvailability)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BookingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBookingHandler_UpdateStatus_InvalidStatusRejectedByBinding(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/bookings/bk-001/status", jsonBody(map[string]string{
		"status": "archived",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/bookings/:id/status", h.UpdateStatus)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{err: service.ErrBookingNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/bookings/nonexistent", nil)

	r := gin.New()
	r.GET("/bookings/:id", h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
