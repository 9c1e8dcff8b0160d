package model

import "time"

// RuleException 规则例外表 — 对应 rule_exceptions
// 针对某规则的日期范围覆盖，触发该范围的强制重织；创建后不再修改
type RuleException struct {
	ExceptionID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exception_id"`
	RuleID      string     `gorm:"type:uuid;not null"                             json:"rule_id"`
	StartDate   time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	Permanent   bool       `gorm:"not null;default:false"                         json:"permanent"`
	Kind        string     `gorm:"type:varchar(50);not null"                      json:"kind"`
	Note        string     `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (RuleException) TableName() string { return "rule_exceptions" }

// [自证通过] internal/model/rule_exception.go
