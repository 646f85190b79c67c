package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sqliteConfig(env string) *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: env},
		Database: config.DatabaseConfig{
			Driver:        config.DriverSQLite,
			Service:       ":memory:",
			MaxIdleConns:  1,
			MaxOpenConns:  1,
			IsAutoMigrate: true,
		},
	}
}

func TestNew_SQLiteMigratesAndHealthChecks(t *testing.T) {
	db, err := database.New(sqliteConfig("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestMigrate_BlockedInProduction(t *testing.T) {
	db, err := database.New(sqliteConfig("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Error(t, database.Migrate(db.DB, sqliteConfig("prod")))
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig("test")
	cfg.Database.Driver = "mongo"

	_, err := database.New(cfg)
	assert.Error(t, err)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	db, err := database.New(sqliteConfig("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rollback := errors.New("rollback")
	err = database.WithTransaction(context.Background(), db.DB, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Notice{Title: "공지", Content: "내용"}).Error; err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	var count int64
	require.NoError(t, db.Model(&model.Notice{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Error(t, database.WithTransaction(context.Background(), db.DB, nil))
}

func TestMaskSQL(t *testing.T) {
	sql := "SELECT * FROM `users` WHERE username = \"Member@SKKU.edu\" OR email = 'member@skku.edu' LIMIT 1"

	masked := database.MaskSQL(sql)

	assert.NotContains(t, masked, "member@skku.edu")
	assert.Contains(t, masked, "'m***@skku.edu'")
	assert.Contains(t, masked, "\"M***@SKKU.edu\"")
	assert.Equal(t, "SELECT 1", database.MaskSQL("SELECT 1"))
}
