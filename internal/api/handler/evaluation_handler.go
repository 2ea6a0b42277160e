package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/service"
	"stagetrack/backend/pkg/response"
)

// EvaluationHandler 评价模块 HTTP 处理器
type EvaluationHandler struct {
	evalSvc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evalSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

// ListEvaluations 获取评价列表
// GET /api/v1/evaluations
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	evals, err := h.evalSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": evals})
}

// ListAwaiting 列出已完成但尚无评价的实习生
// GET /api/v1/evaluations/awaiting
func (h *EvaluationHandler) ListAwaiting(c *gin.Context) {
	interns, err := h.evalSvc.ListAwaiting(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": interns})
}

// GetEvaluation 获取评价详情
// GET /api/v1/evaluations/:id
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	eval, err := h.evalSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, eval)
}

// CreateEvaluation 创建评价
// POST /api/v1/evaluations
func (h *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var req dto.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	eval, err := h.evalSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.Created(c, eval)
}

// PrefillEvaluation 由已完成的实习生预生成零分评价
// POST /api/v1/evaluations/prefill/:intern_id
func (h *EvaluationHandler) PrefillEvaluation(c *gin.Context) {
	internID := c.Param("intern_id")
	if internID == "" {
		response.BadRequest(c, 10001, "实习生ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	eval, err := h.evalSvc.PrefillFromIntern(c.Request.Context(), internID, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.Created(c, eval)
}

// UpdateEvaluation 更新评价
// PUT /api/v1/evaluations/:id
func (h *EvaluationHandler) UpdateEvaluation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	var req dto.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	eval, err := h.evalSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, eval)
}

// DeleteEvaluation 删除评价
// DELETE /api/v1/evaluations/:id
func (h *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评价ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.evalSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleEvaluationError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEvaluationError 统一处理评价模块业务错误
func (h *EvaluationHandler) handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 14001, "评价不存在")
	case errors.Is(err, service.ErrGradeOutOfRange):
		response.BadRequest(c, 14002, "分数必须在 0-20 之间")
	case errors.Is(err, service.ErrInternNotCompleted):
		response.BadRequest(c, 14003, "实习生尚未完成实习")
	case errors.Is(err, service.ErrEvaluationExists):
		response.Conflict(c, 14004, "该实习生已有评价")
	case errors.Is(err, service.ErrInternNotFound):
		response.NotFound(c, 12001, "实习生不存在")
	case errors.Is(err, service.ErrInvalidDateFormat):
		response.BadRequest(c, 14005, "日期格式非法")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 14006, "结束日期不能早于开始日期")
	default:
		response.InternalError(c)
	}
}
