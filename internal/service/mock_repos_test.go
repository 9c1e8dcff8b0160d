package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
	pkgerrors "github.com/brettwatson77/rabs-poc-sub007/pkg/errors"
)

// ── Mock VenueRepository ──

type mockVenueRepo struct {
	venues map[string]*model.Venue
}

func newMockVenueRepo() *mockVenueRepo {
	return &mockVenueRepo{venues: make(map[string]*model.Venue)}
}

func (m *mockVenueRepo) GetByID(_ context.Context, id string) (*model.Venue, error) {
	if v, ok := m.venues[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ProgramRuleRepository ──

type mockRuleRepo struct {
	rules map[string]*model.ProgramRule
	seq   int

	// 置位后模拟 GetByID preload 槽位的行为
	slotRepo *mockSlotRepo
}

func newMockRuleRepo() *mockRuleRepo {
	return &mockRuleRepo{rules: make(map[string]*model.ProgramRule)}
}

func (m *mockRuleRepo) Create(_ context.Context, rule *model.ProgramRule) error {
	if rule.RuleID == "" {
		m.seq++
		rule.RuleID = fmt.Sprintf("rule-%03d", m.seq)
	}
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockRuleRepo) GetByID(ctx context.Context, id string) (*model.ProgramRule, error) {
	r, ok := m.rules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *r
	if m.slotRepo != nil {
		slots, _ := m.slotRepo.ListByRule(ctx, id)
		loaded.Slots = slots
	}
	return &loaded, nil
}

func (m *mockRuleRepo) List(_ context.Context, status string, limit, offset int) ([]model.ProgramRule, error) {
	var result []model.ProgramRule
	for _, r := range m.rules {
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RuleID < result[j].RuleID })
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockRuleRepo) ListActiveByMatch(_ context.Context, weekday, cycleWeek int) ([]model.ProgramRule, error) {
	var result []model.ProgramRule
	for _, r := range m.rules {
		if r.Status != model.RuleStatusActive {
			continue
		}
		if r.Weekday != weekday || r.CycleWeek != cycleWeek {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RuleID < result[j].RuleID })
	return result, nil
}

func (m *mockRuleRepo) Update(_ context.Context, rule *model.ProgramRule) error {
	if _, ok := m.rules[rule.RuleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *rule
	stored.Slots = nil
	m.rules[rule.RuleID] = &stored
	return nil
}

// ── Mock SlotTemplateRepository ──

type mockSlotRepo struct {
	slots map[string][]model.SlotTemplate // rule_id → 槽位（按 seq 升序）
	seq   int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string][]model.SlotTemplate)}
}

func (m *mockSlotRepo) ListByRule(_ context.Context, ruleID string) ([]model.SlotTemplate, error) {
	result := make([]model.SlotTemplate, len(m.slots[ruleID]))
	copy(result, m.slots[ruleID])
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}

func (m *mockSlotRepo) ReplaceForRule(_ context.Context, ruleID string, slots []model.SlotTemplate) error {
	stored := make([]model.SlotTemplate, 0, len(slots))
	for _, s := range slots {
		if s.SlotID == "" {
			m.seq++
			s.SlotID = fmt.Sprintf("slot-%03d", m.seq)
		}
		stored = append(stored, s)
	}
	m.slots[ruleID] = stored
	return nil
}

// ── Mock RuleExceptionRepository ──

type mockExceptionRepo struct {
	exceptions map[string]*model.RuleException
	seq        int
}

func newMockExceptionRepo() *mockExceptionRepo {
	return &mockExceptionRepo{exceptions: make(map[string]*model.RuleException)}
}

func (m *mockExceptionRepo) Create(_ context.Context, exc *model.RuleException) error {
	if exc.ExceptionID == "" {
		m.seq++
		exc.ExceptionID = fmt.Sprintf("exc-%03d", m.seq)
	}
	m.exceptions[exc.ExceptionID] = exc
	return nil
}

func (m *mockExceptionRepo) ListByRule(_ context.Context, ruleID string) ([]model.RuleException, error) {
	var result []model.RuleException
	for _, e := range m.exceptions {
		if e.RuleID == ruleID {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock ScheduleInstanceRepository ──

// mockInstanceRepo 在内存中复刻 (rule_id, instance_date) 唯一约束下的
// upsert 语义：冲突时只刷新排期字段，身份与人工标记保持不变
type mockInstanceRepo struct {
	instances map[string]*model.ScheduleInstance // "rule_id|YYYY-MM-DD" → 实例
	seq       int

	// failTransient > 0 时接下来的 Upsert 依次返回瞬时存储错误
	failTransient int
	upsertCalls   int
}

func newMockInstanceRepo() *mockInstanceRepo {
	return &mockInstanceRepo{instances: make(map[string]*model.ScheduleInstance)}
}

func instanceKey(ruleID string, date time.Time) string {
	return ruleID + "|" + date.Format("2006-01-02")
}

func (m *mockInstanceRepo) Upsert(_ context.Context, inst *model.ScheduleInstance) error {
	m.upsertCalls++
	if m.failTransient > 0 {
		m.failTransient--
		return pkgerrors.ErrTransientStore
	}

	key := instanceKey(inst.RuleID, inst.InstanceDate)
	if existing, ok := m.instances[key]; ok {
		existing.StartTime = inst.StartTime
		existing.EndTime = inst.EndTime
		existing.VenueID = inst.VenueID
		existing.UpdatedAt = time.Now()
		return nil
	}

	m.seq++
	inst.InstanceID = fmt.Sprintf("inst-%03d", m.seq)
	stored := *inst
	m.instances[key] = &stored
	return nil
}

func (m *mockInstanceRepo) GetByRuleAndDate(_ context.Context, ruleID string, date time.Time) (*model.ScheduleInstance, error) {
	if inst, ok := m.instances[instanceKey(ruleID, date)]; ok {
		loaded := *inst
		return &loaded, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstanceRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]model.ScheduleInstance, error) {
	var result []model.ScheduleInstance
	for _, inst := range m.instances {
		if inst.InstanceDate.Before(from) || inst.InstanceDate.After(to) {
			continue
		}
		result = append(result, *inst)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].InstanceDate.Equal(result[j].InstanceDate) {
			return result[i].InstanceDate.Before(result[j].InstanceDate)
		}
		return result[i].InstanceID < result[j].InstanceID
	})
	return result, nil
}

// ── Mock EventCardRepository ──

type mockCardRepo struct {
	cards map[string][]model.EventCard // instance_id → 整套卡片
	seq   int
}

func newMockCardRepo() *mockCardRepo {
	return &mockCardRepo{cards: make(map[string][]model.EventCard)}
}

func (m *mockCardRepo) ReplaceForInstance(_ context.Context, instanceID string, cards []model.EventCard) error {
	stored := make([]model.EventCard, 0, len(cards))
	for _, c := range cards {
		if c.CardID == "" {
			m.seq++
			c.CardID = fmt.Sprintf("card-%03d", m.seq)
		}
		stored = append(stored, c)
	}
	m.cards[instanceID] = stored
	return nil
}

func (m *mockCardRepo) ListByInstance(_ context.Context, instanceID string) ([]model.EventCard, error) {
	result := make([]model.EventCard, len(m.cards[instanceID]))
	copy(result, m.cards[instanceID])
	sort.Slice(result, func(i, j int) bool { return result[i].CardOrder < result[j].CardOrder })
	return result, nil
}

func (m *mockCardRepo) ListByDate(_ context.Context, date time.Time) ([]model.EventCard, error) {
	day := date.Format("2006-01-02")
	var result []model.EventCard
	for _, cards := range m.cards {
		for _, c := range cards {
			if c.StartAt.Format("2006-01-02") == day {
				result = append(result, c)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].InstanceID != result[j].InstanceID {
			return result[i].InstanceID < result[j].InstanceID
		}
		return result[i].CardOrder < result[j].CardOrder
	})
	return result, nil
}

// [自证通过] internal/service/mock_repos_test.go
