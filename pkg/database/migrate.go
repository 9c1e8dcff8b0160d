package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 应用排程库的全部未执行迁移
// 服务启动时调用，保证规则/实例/卡片表结构与代码一致后才开始接收请求
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("加载排程库迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("排程库结构已是最新，无需迁移")
		} else {
			return fmt.Errorf("执行排程库迁移失败: %w", err)
		}
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("排程库迁移处于 dirty 状态，需人工介入", zap.Uint("version", version))
	} else {
		logger.Info("排程库迁移就绪", zap.Uint("version", version))
	}

	return nil
}
