package config_test

import (
	"testing"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SERVICE", "gallery.db")
	t.Setenv("JWT_SECRET", "test-jwt-secret-key-must-be-at-least-32-characters-long")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := config.Load("test")
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadSize)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_SERVICE", "gallery")
	t.Setenv("DB_USER", "gallery")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "test-jwt-secret-key-must-be-at-least-32-characters-long")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PAGINATION_LIMIT", "20")
	t.Setenv("AUTH_EMAIL_VERIFICATION", "false")

	cfg, err := config.Load("dev")
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 20, cfg.Pagination.Limit)
	assert.False(t, cfg.Auth.EmailVerification)
	assert.True(t, cfg.IsDevelopment())
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{name: "short jwt secret", mutate: func(cfg *config.Config) { cfg.JWT.Secret = "short" }},
		{name: "missing db host", mutate: func(cfg *config.Config) {
			cfg.Database.Driver = config.DriverMySQL
			cfg.Database.Host = ""
		}},
		{name: "unknown driver", mutate: func(cfg *config.Config) { cfg.Database.Driver = "mongo" }},
		{name: "s3 without bucket", mutate: func(cfg *config.Config) { cfg.Storage.Driver = config.StorageS3 }},
		{name: "invalid port", mutate: func(cfg *config.Config) { cfg.App.Port = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func validConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Port: 8080},
		Database:   config.DatabaseConfig{Driver: config.DriverSQLite, Service: ":memory:"},
		JWT:        config.JWTConfig{Secret: "test-jwt-secret-key-must-be-at-least-32-characters-long"},
		Storage:    config.StorageConfig{Driver: config.StorageLocal},
		Pagination: config.PaginationConfig{Limit: 10, DisplayPageCount: 5},
	}
}
