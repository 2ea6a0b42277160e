package service

import (
	"go.uber.org/zap"

	"stagetrack/backend/config"
	"stagetrack/backend/internal/notify"
	"stagetrack/backend/internal/repository"
	"stagetrack/backend/pkg/jwt"
	"stagetrack/backend/pkg/redis"
)

// Service 业务层聚合入口
type Service struct {
	Auth       AuthService
	Intern     InternService
	Project    ProjectService
	Evaluation EvaluationService
	Sync       SyncService
	Export     ExportService
	Hub        *notify.Hub
}

// NewService 装配全部业务服务
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	hub *notify.Hub,
	logger *zap.Logger,
) *Service {
	syncSvc := NewSyncService(repo, hub, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Intern:     NewInternService(repo, syncSvc, hub, logger),
		Project:    NewProjectService(repo, hub, logger),
		Evaluation: NewEvaluationService(repo, hub, logger),
		Sync:       syncSvc,
		Export:     NewExportService(repo, logger),
		Hub:        hub,
	}
}
