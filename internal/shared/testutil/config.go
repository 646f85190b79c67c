package testutil

import (
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
)

// NewTestConfig creates a test configuration
// This removes the need for environment variables during testing
func NewTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "skku-gallery-test",
			Env:  "test",
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		Database: config.DatabaseConfig{
			Driver:        config.DriverSQLite,
			Service:       ":memory:",
			MaxIdleConns:  1,
			MaxOpenConns:  1,
			IsAutoMigrate: true,
		},
		JWT: config.JWTConfig{
			Secret: "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry: 24 * time.Hour,
		},
		Session: config.SessionConfig{
			CookieName: "gallery_session",
			MaxAge:     24 * time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           86400,
		},
		Server: config.ServerConfig{
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			GracefulTimeout: 30 * time.Second,
			MaxUploadSize:   1 << 20,
		},
		Auth: config.AuthConfig{
			EmailVerification: false,
			VerificationTTL:   24 * time.Hour,
			PasswordResetTTL:  time.Hour,
			UnverifiedMaxAge:  7 * 24 * time.Hour,
		},
		Storage: config.StorageConfig{
			Driver:   config.StorageLocal,
			LocalURL: "/uploads",
		},
		Kafka: config.KafkaConfig{Topic: "gallery.events"},
		Scheduler: config.SchedulerConfig{
			Spec: "0 0 4 * * *",
		},
		Seed: config.SeedConfig{
			AdminEmail: "admin@skku.edu",
		},
		Pagination: config.PaginationConfig{
			Limit:            12,
			DisplayPageCount: 5,
		},
	}
}
