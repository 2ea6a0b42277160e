package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"stagetrack/backend/internal/dto"
	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/notify"
	"stagetrack/backend/internal/repository"
)

// ── 项目模块业务错误 ──

var ErrProjectNotFound = errors.New("项目不存在")

// ProjectService 项目业务接口
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest, callerID string) (*dto.ProjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error)
	List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error)
	Stats(ctx context.Context) (*dto.ProjectStatsResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type projectService struct {
	repo   *repository.Repository
	hub    *notify.Hub
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, hub *notify.Hub, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, hub: hub, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Title:       req.Title,
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
		Interns:     toProjectInterns(req.Interns),
		Tasks:       toTasks(req.Tasks),
	}
	project.CreatedBy = &callerID
	project.UpdatedBy = &callerID

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Projet créé", "Projet « "+project.Title+" » créé", notify.SeveritySuccess)

	return toProjectResponse(project), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *projectService) GetByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProjectResponse(project), nil
}

// ────────────────────── List ──────────────────────

func (s *projectService) List(ctx context.Context, req *dto.ProjectListRequest) ([]dto.ProjectResponse, error) {
	projects, err := s.repo.Project.List(ctx)
	if err != nil {
		s.logger.Error("列出项目失败", zap.Error(err))
		return nil, err
	}

	projects = FilterProjects(projects, req.Search, req.Status)

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, *toProjectResponse(&projects[i]))
	}
	return result, nil
}

// ────────────────────── Stats ──────────────────────

func (s *projectService) Stats(ctx context.Context) (*dto.ProjectStatsResponse, error) {
	projects, err := s.repo.Project.List(ctx)
	if err != nil {
		s.logger.Error("列出项目失败", zap.Error(err))
		return nil, err
	}

	stats := ComputeProjectStats(projects)
	return &dto.ProjectStatsResponse{
		Total:      stats.Total,
		Completed:  stats.Completed,
		InProgress: stats.InProgress,
		NotStarted: stats.NotStarted,
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *projectService) Update(ctx context.Context, id string, req *dto.UpdateProjectRequest, callerID string) (*dto.ProjectResponse, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.StartDate != nil {
		t, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		project.StartDate = t
	}
	if req.EndDate != nil {
		t, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		project.EndDate = t
	}
	if project.EndDate.Before(project.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Description != nil {
		project.Description = req.Description
	}

	project.UpdatedBy = &callerID

	if err := s.repo.Project.Update(ctx, project); err != nil {
		s.logger.Error("更新项目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 分配快照与任务清单按整体替换语义更新
	var newInterns []model.ProjectIntern
	var newTasks []model.Task
	if req.Interns != nil {
		newInterns = toProjectInterns(*req.Interns)
	}
	if req.Tasks != nil {
		newTasks = toTasks(*req.Tasks)
	}
	if newInterns != nil || newTasks != nil {
		if err := s.repo.Project.ReplaceAssignments(ctx, id, newInterns, newTasks); err != nil {
			s.logger.Error("更新项目分配失败", zap.String("id", id), zap.Error(err))
			return nil, err
		}
		project, err = s.repo.Project.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	s.hub.Publish("Projet mis à jour", "Projet « "+project.Title+" » modifié", notify.SeverityInfo)

	return toProjectResponse(project), nil
}

// ────────────────────── Delete ──────────────────────

func (s *projectService) Delete(ctx context.Context, id string, callerID string) error {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("查询项目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Project.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除项目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.hub.Publish("Projet supprimé", "Projet « "+project.Title+" » supprimé", notify.SeverityWarning)
	return nil
}

// ── 内部辅助方法 ──

func toProjectInterns(inputs []dto.ProjectInternInput) []model.ProjectIntern {
	result := make([]model.ProjectIntern, 0, len(inputs))
	for i, in := range inputs {
		result = append(result, model.ProjectIntern{
			Name:       in.Name,
			Status:     in.Status,
			Completion: in.Completion,
			Position:   i,
		})
	}
	return result
}

func toTasks(inputs []dto.TaskInput) []model.Task {
	result := make([]model.Task, 0, len(inputs))
	for i, in := range inputs {
		result = append(result, model.Task{
			Name:     in.Name,
			Status:   in.Status,
			Position: i,
		})
	}
	return result
}

func toProjectResponse(p *model.Project) *dto.ProjectResponse {
	interns := make([]dto.ProjectInternResponse, 0, len(p.Interns))
	for _, pi := range p.Interns {
		interns = append(interns, dto.ProjectInternResponse{
			ID:         pi.ProjectInternID,
			Name:       pi.Name,
			Status:     pi.Status,
			Completion: pi.Completion,
		})
	}

	tasks := make([]dto.TaskResponse, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, dto.TaskResponse{
			ID:     t.TaskID,
			Name:   t.Name,
			Status: t.Status,
		})
	}

	return &dto.ProjectResponse{
		ID:          p.ProjectID,
		Title:       p.Title,
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Description: p.Description,
		Interns:     interns,
		Tasks:       tasks,
		Progress:    CalculateProgress(p.Tasks),
		CreatedAt:   formatTimestamp(p.CreatedAt),
		UpdatedAt:   formatTimestamp(p.UpdatedAt),
	}
}
