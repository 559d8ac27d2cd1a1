package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/config"
	"github.com/matteoalessi-space/booking-system/pkg/shopify"
)

// ── Mock ProductFetcher ──

type mockProductFetcher struct {
	products   []shopify.Product
	err        error
	fetchCalls int
}

func (m *mockProductFetcher) FetchProducts(_ context.Context) ([]shopify.Product, error) {
	m.fetchCalls++
	return m.products, m.err
}

func (m *mockProductFetcher) GetProduct(_ context.Context, productID string) (*shopify.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].Title == productID {
			return &m.products[i], nil
		}
	}
	return nil, &shopify.APIError{Status: 404}
}

// ── 测试 ──

func configuredShopify() *config.ShopifyConfig {
	return &config.ShopifyConfig{ShopDomain: "test.myshopify.com", AccessToken: "token"}
}

func TestCatalogService_Products_NotConfigured(t *testing.T) {
	svc := NewCatalogService(&config.ShopifyConfig{}, &mockProductFetcher{}, nil, zap.NewNop())

	_, err := svc.Products(context.Background())
	if !errors.Is(err, ErrShopifyNotConfigured) {
		t.Errorf("期望 ErrShopifyNotConfigured，实际: %v", err)
	}
}

func TestCatalogService_Products_PassThroughWithoutCache(t *testing.T) {
	fetcher := &mockProductFetcher{
		products: []shopify.Product{{ID: 1, Title: "Kayak Tour"}},
	}
	svc := NewCatalogService(configuredShopify(), fetcher, nil, zap.NewNop())

	products, err := svc.Products(context.Background())
	if err != nil {
		t.Fatalf("Products 应成功: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Kayak Tour" {
		t.Errorf("目录内容错误: %+v", products)
	}

	// 无缓存时每次调用都回源
	if _, err := svc.Products(context.Background()); err != nil {
		t.Fatalf("Products 应成功: %v", err)
	}
	if fetcher.fetchCalls != 2 {
		t.Errorf("期望回源 2 次，实际=%d", fetcher.fetchCalls)
	}
}

func TestCatalogService_Products_UpstreamFailureIsTotal(t *testing.T) {
	fetcher := &mockProductFetcher{err: &shopify.APIError{Status: 500}}
	svc := NewCatalogService(configuredShopify(), fetcher, nil, zap.NewNop())

	_, err := svc.Products(context.Background())
	var apiErr *shopify.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Errorf("期望透传 *shopify.APIError{500}，实际: %v", err)
	}
}

func TestCatalogService_Product_NotConfigured(t *testing.T) {
	svc := NewCatalogService(&config.ShopifyConfig{}, &mockProductFetcher{}, nil, zap.NewNop())

	_, err := svc.Product(context.Background(), "123")
	if !errors.Is(err, ErrShopifyNotConfigured) {
		t.Errorf("期望 ErrShopifyNotConfigured，实际: %v", err)
	}
}
