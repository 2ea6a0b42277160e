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

// ── 评价模块业务错误 ──

var (
	ErrEvaluationNotFound = errors.New("评价不存在")
	ErrGradeOutOfRange    = errors.New("分数必须在 0-20 之间")
	ErrInternNotCompleted = errors.New("实习生尚未完成实习")
	ErrEvaluationExists   = errors.New("该实习生已有评价")
)

// EvaluationService 评价业务接口
type EvaluationService interface {
	Create(ctx context.Context, req *dto.CreateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EvaluationResponse, error)
	List(ctx context.Context) ([]dto.EvaluationResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// PrefillFromIntern 由已完成的实习生预生成零分评价，等待补录
	PrefillFromIntern(ctx context.Context, internID string, callerID string) (*dto.EvaluationResponse, error)
	// ListAwaiting 列出已完成但尚无评价的实习生
	ListAwaiting(ctx context.Context) ([]dto.InternResponse, error)
}

type evaluationService struct {
	repo   *repository.Repository
	hub    *notify.Hub
	logger *zap.Logger
}

// NewEvaluationService 创建 EvaluationService 实例
func NewEvaluationService(repo *repository.Repository, hub *notify.Hub, logger *zap.Logger) EvaluationService {
	return &evaluationService{repo: repo, hub: hub, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *evaluationService) Create(ctx context.Context, req *dto.CreateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error) {
	// 绑定层已做范围校验，这里兜底（服务层可被非 HTTP 调用方复用）
	if req.Grade < 0 || req.Grade > 20 {
		return nil, ErrGradeOutOfRange
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	eval := &model.Evaluation{
		InternID:  req.InternID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StartDate: start,
		EndDate:   end,
		Grade:     req.Grade,
		Comment:   req.Comment,
	}
	eval.CreatedBy = &callerID
	eval.UpdatedBy = &callerID

	if err := s.repo.Evaluation.Create(ctx, eval); err != nil {
		s.logger.Error("创建评价失败", zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Évaluation créée",
		"Évaluation de "+eval.FirstName+" "+eval.LastName+" enregistrée",
		notify.SeveritySuccess,
	)

	return toEvaluationResponse(eval), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *evaluationService) GetByID(ctx context.Context, id string) (*dto.EvaluationResponse, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评价失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEvaluationResponse(eval), nil
}

// ────────────────────── List ──────────────────────

func (s *evaluationService) List(ctx context.Context) ([]dto.EvaluationResponse, error) {
	evals, err := s.repo.Evaluation.List(ctx)
	if err != nil {
		s.logger.Error("列出评价失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EvaluationResponse, 0, len(evals))
	for i := range evals {
		result = append(result, *toEvaluationResponse(&evals[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *evaluationService) Update(ctx context.Context, id string, req *dto.UpdateEvaluationRequest, callerID string) (*dto.EvaluationResponse, error) {
	eval, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		s.logger.Error("查询评价失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.FirstName != nil {
		eval.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		eval.LastName = *req.LastName
	}
	if req.StartDate != nil {
		t, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		eval.StartDate = t
	}
	if req.EndDate != nil {
		t, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		eval.EndDate = t
	}
	if eval.EndDate.Before(eval.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if req.Grade != nil {
		if *req.Grade < 0 || *req.Grade > 20 {
			return nil, ErrGradeOutOfRange
		}
		eval.Grade = *req.Grade
	}
	if req.Comment != nil {
		eval.Comment = *req.Comment
	}

	eval.UpdatedBy = &callerID

	if err := s.repo.Evaluation.Update(ctx, eval); err != nil {
		s.logger.Error("更新评价失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Évaluation mise à jour",
		"Évaluation de "+eval.FirstName+" "+eval.LastName+" modifiée",
		notify.SeverityInfo,
	)

	return toEvaluationResponse(eval), nil
}

// ────────────────────── Delete ──────────────────────

func (s *evaluationService) Delete(ctx context.Context, id string, callerID string) error {
	eval, err := s.repo.Evaluation.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluationNotFound
		}
		s.logger.Error("查询评价失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Evaluation.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除评价失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.hub.Publish("Évaluation supprimée",
		"Évaluation de "+eval.FirstName+" "+eval.LastName+" supprimée",
		notify.SeverityWarning,
	)
	return nil
}

// ────────────────────── PrefillFromIntern ──────────────────────

func (s *evaluationService) PrefillFromIntern(ctx context.Context, internID string, callerID string) (*dto.EvaluationResponse, error) {
	intern, err := s.repo.Intern.GetByID(ctx, internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternNotFound
		}
		s.logger.Error("查询实习生失败", zap.String("id", internID), zap.Error(err))
		return nil, err
	}

	if intern.Status != model.InternStatusCompleted {
		return nil, ErrInternNotCompleted
	}

	// 已有评价则拒绝重复预生成
	if _, err := s.repo.Evaluation.GetByInternID(ctx, internID); err == nil {
		return nil, ErrEvaluationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eval := &model.Evaluation{
		InternID:  &intern.InternID,
		FirstName: intern.FirstName,
		LastName:  intern.LastName,
		StartDate: intern.StartDate,
		EndDate:   intern.EndDate,
		Grade:     0, // 零分占位，等待补录
		Comment:   "",
	}
	eval.CreatedBy = &callerID
	eval.UpdatedBy = &callerID

	if err := s.repo.Evaluation.Create(ctx, eval); err != nil {
		s.logger.Error("预生成评价失败", zap.String("intern_id", internID), zap.Error(err))
		return nil, err
	}

	s.hub.Publish("Évaluation à compléter",
		"Évaluation de "+intern.FullName()+" en attente de notation",
		notify.SeverityInfo,
	)

	return toEvaluationResponse(eval), nil
}

// ────────────────────── ListAwaiting ──────────────────────

// ListAwaiting 列出已完成但尚无评价的实习生
// 关联优先走 intern_id 外键；历史数据无外键时回退为姓名精确匹配
func (s *evaluationService) ListAwaiting(ctx context.Context) ([]dto.InternResponse, error) {
	interns, err := s.repo.Intern.ListByStatus(ctx, model.InternStatusCompleted)
	if err != nil {
		s.logger.Error("查询已完成实习生失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.InternResponse, 0, len(interns))
	for i := range interns {
		in := &interns[i]

		if _, err := s.repo.Evaluation.GetByInternID(ctx, in.InternID); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if _, err := s.repo.Evaluation.GetByName(ctx, in.FirstName, in.LastName); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		result = append(result, *toInternResponse(in))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toEvaluationResponse(e *model.Evaluation) *dto.EvaluationResponse {
	return &dto.EvaluationResponse{
		ID:        e.EvaluationID,
		InternID:  e.InternID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		StartDate: e.StartDate.Format(dateLayout),
		EndDate:   e.EndDate.Format(dateLayout),
		Grade:     e.Grade,
		Comment:   e.Comment,
		CreatedAt: formatTimestamp(e.CreatedAt),
		UpdatedAt: formatTimestamp(e.UpdatedAt),
	}
}
