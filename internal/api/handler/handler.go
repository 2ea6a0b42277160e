package handler

import "stagetrack/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Intern       *InternHandler
	Project      *ProjectHandler
	Evaluation   *EvaluationHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Intern:       NewInternHandler(svc.Intern),
		Project:      NewProjectHandler(svc.Project, svc.Sync),
		Evaluation:   NewEvaluationHandler(svc.Evaluation),
		Notification: NewNotificationHandler(svc.Hub),
		Export:       NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
