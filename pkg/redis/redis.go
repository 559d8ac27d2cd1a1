package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/config"
)

// Client Redis 客户端封装
// 当前用于 Shopify 商品目录缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 商品目录缓存 ──

const catalogKey = "shopify:catalog:products"

// GetCatalog 读取缓存的商品目录 JSON；未命中返回 (nil, false)
func (c *Client) GetCatalog(ctx context.Context) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("读取目录缓存失败", zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// SetCatalog 写入商品目录缓存
func (c *Client) SetCatalog(ctx context.Context, data []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, catalogKey, data, ttl).Err(); err != nil {
		c.logger.Warn("写入目录缓存失败", zap.Error(err))
	}
}

// InvalidateCatalog 清除商品目录缓存
func (c *Client) InvalidateCatalog(ctx context.Context) {
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		c.logger.Warn("清除目录缓存失败", zap.Error(err))
	}
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数器：窗口内第一次请求设置过期时间，
// 计数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
