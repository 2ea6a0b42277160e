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

// ── 实习生模块业务错误 ──

var (
	ErrInternNotFound      = errors.New("实习生不存在")
	ErrInvalidInternStatus = errors.New("实习生状态取值非法")
	ErrInvalidDateRange    = errors.New("结束日期不能早于开始日期")
	ErrInvalidDateFormat   = errors.New("日期格式非法")
)

const dateLayout = "2006-01-02"

// formatTimestamp 统一输出 UTC 的 RFC3339 时间戳
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// InternService 实习生业务接口
type InternService interface {
	Create(ctx context.Context, req *dto.CreateInternRequest, callerID string) (*dto.InternResponse, error)
	GetByID(ctx context.Context, id string) (*dto.InternResponse, error)
	List(ctx context.Context, req *dto.InternListRequest) ([]dto.InternResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateInternRequest, callerID string) (*dto.InternResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type internService struct {
	repo   *repository.Repository
	sync   SyncService
	hub    *notify.Hub
	logger *zap.Logger
}

// NewInternService 创建 InternService 实例
func NewInternService(repo *repository.Repository, syncSvc SyncService, hub *notify.Hub, logger *zap.Logger) InternService {
	return &internService{repo: repo, sync: syncSvc, hub: hub, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *internService) Create(ctx context.Context, req *dto.CreateInternRequest, callerID string) (*dto.InternResponse, error) {
	status := req.Status
	if status == "" {
		status = model.InternStatusNotStarted
	}
	if !model.ValidInternStatus(status) {
		return nil, ErrInvalidInternStatus
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	intern := &model.Intern{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Title:     req.Title,
		Email:     req.Email,
		StartDate: start,
		EndDate:   end,
		Status:    status,
		Gender:    req.Gender,
		Photo:     req.Photo,
	}
	intern.CreatedBy = &callerID
	intern.UpdatedBy = &callerID

	if err := s.repo.Intern.Create(ctx, intern); err != nil {
		s.logger.Error("创建实习生失败", zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Stagiaire créé", intern.FullName()+" a été enregistré", notify.SeveritySuccess)

	// 终态实习生立即派生项目；同步失败仅记录，不影响主保存
	s.syncBestEffort(ctx, intern)

	return toInternResponse(intern), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *internService) GetByID(ctx context.Context, id string) (*dto.InternResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		s.logger.Error("查询实习生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toInternResponse(intern), nil
}

// ────────────────────── List ──────────────────────

func (s *internService) List(ctx context.Context, req *dto.InternListRequest) ([]dto.InternResponse, error) {
	interns, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("列出实习生失败", zap.Error(err))
		return nil, err
	}

	interns = FilterInterns(interns, req.Search)

	result := make([]dto.InternResponse, 0, len(interns))
	for i := range interns {
		result = append(result, *toInternResponse(&interns[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *internService) Update(ctx context.Context, id string, req *dto.UpdateInternRequest, callerID string) (*dto.InternResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		s.logger.Error("查询实习生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		intern.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		intern.LastName = *req.LastName
	}
	if req.Title != nil {
		intern.Title = *req.Title
	}
	if req.Email != nil {
		intern.Email = *req.Email
	}
	if req.StartDate != nil {
		t, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		intern.StartDate = t
	}
	if req.EndDate != nil {
		t, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		intern.EndDate = t
	}
	if intern.EndDate.Before(intern.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Status != nil {
		// 状态由调用方驱动，任何合法值都可直接设置，无顺序约束
		if !model.ValidInternStatus(*req.Status) {
			return nil, ErrInvalidInternStatus
		}
		intern.Status = *req.Status
	}
	if req.Gender != nil {
		intern.Gender = *req.Gender
	}
	if req.Photo != nil {
		intern.Photo = req.Photo
	}

	intern.UpdatedBy = &callerID

	if err := s.repo.Intern.Update(ctx, intern); err != nil {
		s.logger.Error("更新实习生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Stagiaire mis à jour", intern.FullName()+" a été modifié", notify.SeverityInfo)

	s.syncBestEffort(ctx, intern)

	return toInternResponse(intern), nil
}

// ────────────────────── Delete ──────────────────────

func (s *internService) Delete(ctx context.Context, id string, callerID string) error {
	intern, err := s.repo.Intern.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInternNotFound
		}
		s.logger.Error("查询实习生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Intern.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除实习生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.hub.Publish("Stagiaire supprimé", intern.FullName()+" a été supprimé", notify.SeverityWarning)
	return nil
}

// ── 内部辅助方法 ──

// syncBestEffort 尽力而为的二次效应：同步失败不回传给调用方
func (s *internService) syncBestEffort(ctx context.Context, intern *model.Intern) {
	if intern.Status != model.InternStatusCompleted {
		return
	}
	if _, err := s.sync.SyncInternToProject(ctx, intern); err != nil {
		s.logger.Warn("实习生项目同步失败",
			zap.String("intern_id", intern.InternID),
			zap.Error(err),
		)
	}
}

func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

func toInternResponse(in *model.Intern) *dto.InternResponse {
	return &dto.InternResponse{
		ID:        in.InternID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Title:     in.Title,
		Email:     in.Email,
		StartDate: in.StartDate.Format(dateLayout),
		EndDate:   in.EndDate.Format(dateLayout),
		Status:    in.Status,
		Gender:    in.Gender,
		Photo:     in.Photo,
		CreatedAt: formatTimestamp(in.CreatedAt),
		UpdatedAt: formatTimestamp(in.UpdatedAt),
	}
}
