package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations 将内嵌的 SQL 迁移应用到目标库
// 结构已是最新时为无操作
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("加载内嵌迁移失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("数据库结构已是最新")
	case err != nil:
		return fmt.Errorf("执行迁移失败: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("读取迁移版本失败: %w", verr)
	}
	if dirty {
		logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
		return nil
	}

	logger.Info("数据库迁移就绪", zap.Uint("version", version))
	return nil
}
