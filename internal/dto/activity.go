package dto

// ── 活动模块 DTO ──

// ActivityResponse 活动信息响应（小组件目录读取）
type ActivityResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	MaxCapacity     int               `json:"max_capacity"`
	Color           string            `json:"color"`
	Variants        []VariantResponse `json:"variants,omitempty"`
}

// VariantResponse 活动款式响应
type VariantResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	MaxCapacity     int      `json:"max_capacity"`
	Price           *float64 `json:"price,omitempty"`
	OrderPosition   int      `json:"order_position"`
}
