package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/config"
	"github.com/matteoalessi-space/booking-system/pkg/redis"
	"github.com/matteoalessi-space/booking-system/pkg/shopify"
)

// ── 目录模块业务错误 ──

var (
	ErrShopifyNotConfigured = errors.New("Shopify 未配置")
)

const catalogCacheTTL = 5 * time.Minute

// ProductFetcher 商品目录拉取端口（pkg/shopify.Client 实现）
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]shopify.Product, error)
	GetProduct(ctx context.Context, productID string) (*shopify.Product, error)
}

// CatalogService 商品目录业务接口
type CatalogService interface {
	Products(ctx context.Context) ([]shopify.Product, error)
	Product(ctx context.Context, productID string) (*shopify.Product, error)
}

type catalogService struct {
	cfg     *config.ShopifyConfig
	fetcher ProductFetcher
	cache   *redis.Client // 可为 nil：Redis 不可用时直接透传上游
	logger  *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(cfg *config.ShopifyConfig, fetcher ProductFetcher, cache *redis.Client, logger *zap.Logger) CatalogService {
	return &catalogService{cfg: cfg, fetcher: fetcher, cache: cache, logger: logger}
}

// Products 返回完整商品目录
// 上游任何非成功响应整体失败，不返回部分目录
func (s *catalogService) Products(ctx context.Context) ([]shopify.Product, error) {
	if !s.cfg.IsConfigured() {
		return nil, ErrShopifyNotConfigured
	}

	if s.cache != nil {
		if data, ok := s.cache.GetCatalog(ctx); ok {
			var products []shopify.Product
			if err := json.Unmarshal(data, &products); err == nil {
				return products, nil
			}
			s.logger.Warn("目录缓存内容损坏，回源拉取")
		}
	}

	products, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		s.logger.Error("拉取商品目录失败", zap.Error(err))
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(products); err == nil {
			s.cache.SetCatalog(ctx, data, catalogCacheTTL)
		}
	}

	return products, nil
}

// Product 查询单个商品（不走缓存）
func (s *catalogService) Product(ctx context.Context, productID string) (*shopify.Product, error) {
	if !s.cfg.IsConfigured() {
		return nil, ErrShopifyNotConfigured
	}

	product, err := s.fetcher.GetProduct(ctx, productID)
	if err != nil {
		s.logger.Error("查询商品失败", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}

	return product, nil
}
