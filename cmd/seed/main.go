package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stagetrack/backend/config"
	"stagetrack/backend/internal/model"
	"stagetrack/backend/internal/repository"
	"stagetrack/backend/pkg/database"
	applogger "stagetrack/backend/pkg/logger"
)

// 初始化默认管理员账号。已存在同邮箱账号时为无操作，可重复执行。
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Seed.AdminPassword == "" {
		logger.Fatal("seed.admin_password 未配置（环境变量 STAGE_SEED_ADMIN_PASSWORD）")
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := repo.User.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal("查询管理员账号失败", zap.Error(err))
	}
	if existing != nil {
		logger.Info("管理员账号已存在，跳过创建", zap.String("email", cfg.Seed.AdminEmail))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("密码哈希失败", zap.Error(err))
	}

	admin := &model.User{
		Name:               cfg.Seed.AdminName,
		Email:              cfg.Seed.AdminEmail,
		PasswordHash:       string(hash),
		Role:               "admin",
		MustChangePassword: true, // 首次登录强制改密
	}

	if err := repo.User.Create(ctx, admin); err != nil {
		logger.Fatal("创建管理员账号失败", zap.Error(err))
	}

	logger.Info("管理员账号创建成功",
		zap.String("email", admin.Email),
		zap.String("user_id", admin.UserID),
	)
}
