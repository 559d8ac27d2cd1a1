package dto

// ── 预订模块 DTO ──

// CreateBookingRequest 创建预订请求（后台手工或小组件渠道）
type CreateBookingRequest struct {
	ActivityID     string  `json:"activity_id"      binding:"required,uuid"`
	VariantID      *string `json:"variant_id"       binding:"omitempty,uuid"`
	BookingDate    string  `json:"booking_date"     binding:"required"` // "2024-12-23"
	StartTime      string  `json:"start_time"       binding:"required"` // "10:00"
	EndTime        string  `json:"end_time"         binding:"required"`
	CustomerName   string  `json:"customer_name"    binding:"required,max=200"`
	CustomerEmail  string  `json:"customer_email"   binding:"required,email"`
	CustomerPhone  *string `json:"customer_phone"`
	NumberOfPeople int     `json:"number_of_people" binding:"required,min=1"`
	Source         string  `json:"source"           binding:"omitempty,oneof=manual widget"`
	Notes          *string `json:"notes"`

	PrivacyPolicyAccepted bool `json:"privacy_policy_accepted"`
	MarketingConsent      bool `json:"marketing_consent"`
	WaiverAccepted        bool `json:"waiver_accepted"`

	// 小组件渠道随预订一并提交的自定义字段答案
	CustomResponses []CustomResponseInput `json:"custom_responses"`
}

// CustomResponseInput 自定义字段答案输入
type CustomResponseInput struct {
	FormFieldID string `json:"form_field_id" binding:"required,uuid"`
	Value       string `json:"value"         binding:"required"`
}

// UpdateBookingStatusRequest 更新预订状态请求
// 不存在状态流转图：操作员可在任意时刻设置任意状态
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// BookingListRequest 预订列表查询参数
type BookingListRequest struct {
	Date       string `form:"date"        binding:"required"`
	ActivityID string `form:"activity_id" binding:"omitempty,uuid"`
}

// CalendarRequest ICS 日历导出查询参数
type CalendarRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to"   binding:"required"`
}

// ExportRequest Excel 导出查询参数
type ExportRequest struct {
	Date string `form:"date" binding:"required"`
}

// BookingResponse 预订信息响应
type BookingResponse struct {
	ID             string  `json:"id"`
	ActivityID     string  `json:"activity_id"`
	VariantID      *string `json:"variant_id,omitempty"`
	BookingDate    string  `json:"booking_date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	CustomerName   string  `json:"customer_name"`
	CustomerEmail  string  `json:"customer_email"`
	CustomerPhone  *string `json:"customer_phone,omitempty"`
	NumberOfPeople int     `json:"number_of_people"`
	ShopifyOrderID *string `json:"shopify_order_id,omitempty"`
	Source         string  `json:"source"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`

	PrivacyPolicyAccepted bool    `json:"privacy_policy_accepted"`
	MarketingConsent      bool    `json:"marketing_consent"`
	WaiverAccepted        bool    `json:"waiver_accepted"`
	WaiverAcceptedAt      *string `json:"waiver_accepted_at,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
