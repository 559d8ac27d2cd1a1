package model

import "time"

// BookingFormField 活动自定义表单字段表 — 对应 booking_form_fields
// 定义预订时额外收集的字段
type BookingFormField struct {
	FormFieldID   string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ActivityID    string    `gorm:"type:uuid;not null"                                       json:"activity_id"`
	FieldLabel    string    `gorm:"type:varchar(200);not null"                               json:"field_label"`
	FieldType     string    `gorm:"type:varchar(20);not null;default:'text'"                 json:"field_type"` // text | textarea | select | checkbox | number | email | phone | date
	IsRequired    bool      `gorm:"not null;default:false"                                   json:"is_required"`
	Placeholder   *string   `gorm:"type:varchar(200)"                                        json:"placeholder,omitempty"`
	OrderPosition int       `gorm:"not null;default:0"                                       json:"order_position"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (BookingFormField) TableName() string { return "booking_form_fields" }

// BookingFieldResponse 自定义字段答案表 — 对应 booking_field_responses
// 仅在预订创建时写入，之后不再编辑
type BookingFieldResponse struct {
	ResponseID    string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID     string    `gorm:"type:uuid;not null"                                       json:"booking_id"`
	FormFieldID   string    `gorm:"type:uuid;not null"                                       json:"form_field_id"`
	ResponseValue string    `gorm:"type:text;not null"                                       json:"response_value"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (BookingFieldResponse) TableName() string { return "booking_field_responses" }
