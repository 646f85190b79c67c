package database

import (
	"fmt"
	"log/slog"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"

	"gorm.io/gorm"
)

// Models returns every persisted model in FK dependency order (referenced tables first)
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.SkkuProfile{},
		&model.ExternalProfile{},
		&model.UserToken{},
		&model.Exhibition{},
		&model.Artwork{},
		&model.Notice{},
		&model.Comment{},
	}
}

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Safety check: prevent accidental data loss in production
	if cfg.IsProduction() {
		return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
	}

	// Step 1: Drop all tables in reverse dependency order (FK constraints)
	slog.Info("🗑️  기존 테이블 삭제 중...")
	models := Models()
	migrator := db.Migrator()
	for i := len(models) - 1; i >= 0; i-- {
		if !migrator.HasTable(models[i]) {
			continue
		}
		if err := migrator.DropTable(models[i]); err != nil {
			slog.Debug("테이블 삭제 실패", "model", fmt.Sprintf("%T", models[i]), "error", err)
		} else {
			slog.Debug("테이블 삭제 성공", "model", fmt.Sprintf("%T", models[i]))
		}
	}

	// Step 2: Create tables
	slog.Info("📦 새 테이블 생성 중...")
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// AutoMigrate creates tables based on model definitions
func AutoMigrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}

	return nil
}
