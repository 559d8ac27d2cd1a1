package dto

// ── 可用性模块 DTO ──

// AvailabilityRequest 可用性查询参数
type AvailabilityRequest struct {
	ActivityID string `form:"activity_id" binding:"required,uuid"`
	Date       string `form:"date"        binding:"required"` // "2024-12-23"
}

// ResolvedHours 四层规则解析后的当日生效营业时间
type ResolvedHours struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsOpen    bool   `json:"is_open"`
	Source    string `json:"source"` // activity_date | global_date | activity_weekday | weekly_default | none
}

// BookingBrief 时段内单条预订的简要信息
type BookingBrief struct {
	ID             string `json:"id"`
	CustomerName   string `json:"customer_name"`
	NumberOfPeople int    `json:"number_of_people"`
	Status         string `json:"status"`
	Source         string `json:"source"`
}

// SlotView 聚合后的时段视图
// Available 不做零值截断：负数表示超订，是有意保留的信号
type SlotView struct {
	StartTime         string         `json:"start_time"`
	EndTime           string         `json:"end_time"`
	Capacity          int            `json:"capacity"`
	Booked            int            `json:"booked"`
	Available         int            `json:"available"`
	UtilizationLevel  string         `json:"utilization_level"`  // normal | warning | critical
	AvailabilityLevel string         `json:"availability_level"` // normal | warning | critical
	Bookings          []BookingBrief `json:"bookings"`
}

// DayAvailabilityResponse 某活动某日期的容量感知视图
type DayAvailabilityResponse struct {
	ActivityID string        `json:"activity_id"`
	Date       string        `json:"date"`
	Hours      ResolvedHours `json:"hours"`
	Slots      []SlotView    `json:"slots"`
}
