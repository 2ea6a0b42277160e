package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stagetrack/backend/config"
	"stagetrack/backend/internal/api/handler"
	"stagetrack/backend/internal/api/middleware"
	"stagetrack/backend/pkg/jwt"
	"stagetrack/backend/pkg/redis"
)

// 登录接口限流：每 IP 每分钟最多 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// maxBodyBytes 全局请求体上限（1MB，照片以 base64 传输时仍足够）
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/profile", h.Auth.GetProfile)
			authorized.PUT("/auth/profile", h.Auth.UpdateProfile)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 实习生模块
			interns := authorized.Group("/interns")
			{
				interns.GET("", h.Intern.ListInterns)
				interns.GET("/:id", h.Intern.GetIntern)
				interns.POST("", h.Intern.CreateIntern)
				interns.PUT("/:id", h.Intern.UpdateIntern)
				interns.DELETE("/:id", middleware.RoleAuth("admin"), h.Intern.DeleteIntern)
			}

			// 项目模块
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.ListProjects)
				projects.GET("/stats", h.Project.GetProjectStats)
				projects.POST("/reconcile", middleware.RoleAuth("admin"), h.Project.ReconcileProjects)
				projects.GET("/:id", h.Project.GetProject)
				projects.POST("", h.Project.CreateProject)
				projects.PUT("/:id", h.Project.UpdateProject)
				projects.DELETE("/:id", middleware.RoleAuth("admin"), h.Project.DeleteProject)
			}

			// 评价模块
			evaluations := authorized.Group("/evaluations")
			{
				evaluations.GET("", h.Evaluation.ListEvaluations)
				evaluations.GET("/awaiting", h.Evaluation.ListAwaiting)
				evaluations.GET("/:id", h.Evaluation.GetEvaluation)
				evaluations.POST("", h.Evaluation.CreateEvaluation)
				evaluations.POST("/prefill/:intern_id", h.Evaluation.PrefillEvaluation)
				evaluations.PUT("/:id", h.Evaluation.UpdateEvaluation)
				evaluations.DELETE("/:id", middleware.RoleAuth("admin"), h.Evaluation.DeleteEvaluation)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListNotifications)
				notifications.GET("/stream", h.Notification.StreamNotifications)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/interns/csv", h.Export.ExportInternsCSV)
				export.GET("/interns/xlsx", h.Export.ExportInternsXLSX)
				export.GET("/evaluations/:id/pdf", h.Export.ExportEvaluationPDF)
				export.GET("/evaluations/:id/certificate", h.Export.ExportCertificatePDF)
				export.GET("/calendar", h.Export.ExportCalendarICS)
			}
		}
	}

	return r
}
