package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverOracle   = "oracle"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Session    SessionConfig
	CORS       CORSConfig
	Server     ServerConfig
	Auth       AuthConfig
	Mail       MailConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Scheduler  SchedulerConfig
	Seed       SeedConfig
	Pagination PaginationConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port int
	URL  string // 메일 링크 생성에 사용되는 외부 URL
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Service         string // oracle service name, postgres/mysql database name, sqlite file path
	User            string
	Password        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SlowQuery       time.Duration
	IsAutoMigrate   bool // true: 테이블 재생성, false: 마이그레이션 비활성화
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	MaxUploadSize   int64
}

type AuthConfig struct {
	EmailVerification bool
	VerificationTTL   time.Duration
	PasswordResetTTL  time.Duration
	UnverifiedMaxAge  time.Duration // 미인증 계정 보관 기간
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type StorageConfig struct {
	Driver    string
	LocalPath string
	LocalURL  string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	CDNURL    string
}

type RedisConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type SchedulerConfig struct {
	Enabled bool
	Spec    string
}

type SeedConfig struct {
	Enabled       bool
	File          string
	AdminEmail    string
	AdminPassword string
}

type PaginationConfig struct {
	Limit            int
	DisplayPageCount int
}

func Load(env string) (*Config, error) {
	if err := loadEnvFile(env); err != nil {
		return nil, fmt.Errorf("환경 변수 로드 실패: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "skku-gallery"),
			Env:  env,
			Port: getEnvAsInt("APP_PORT", 8080),
			URL:  getEnv("APP_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverOracle),
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnvAsInt("DB_PORT", 1521),
			Service:         getEnv("DB_SERVICE", ""),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", "10m"),
			SlowQuery:       getEnvAsDuration("DB_SLOW_QUERY", "200ms"),
			IsAutoMigrate:   getEnvAsBool("DB_AUTO_MIGRATE", false), // 기본값: false (안전)
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			Expiry: getEnvAsDuration("JWT_EXPIRY", "24h"),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "gallery_session"),
			MaxAge:     getEnvAsDuration("SESSION_MAX_AGE", "24h"),
			Secure:     getEnvAsBool("SESSION_SECURE", env == "prod" || env == "production"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"*"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},
		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			GracefulTimeout: getEnvAsDuration("GRACEFUL_TIMEOUT", "30s"),
			MaxUploadSize:   int64(getEnvAsInt("SERVER_MAX_UPLOAD_MB", 10)) << 20,
		},
		Auth: AuthConfig{
			EmailVerification: getEnvAsBool("AUTH_EMAIL_VERIFICATION", true),
			VerificationTTL:   getEnvAsDuration("AUTH_VERIFICATION_TTL", "24h"),
			PasswordResetTTL:  getEnvAsDuration("AUTH_PASSWORD_RESET_TTL", "1h"),
			UnverifiedMaxAge:  getEnvAsDuration("AUTH_UNVERIFIED_MAX_AGE", "168h"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@skku-gallery.kr"),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", StorageLocal),
			LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
			LocalURL:  getEnv("STORAGE_LOCAL_URL", "/uploads"),
			Bucket:    getEnv("STORAGE_BUCKET", ""),
			Region:    getEnv("STORAGE_REGION", ""),
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			CDNURL:    getEnv("STORAGE_CDN_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "gallery.events"),
		},
		Scheduler: SchedulerConfig{
			Enabled: getEnvAsBool("SCHEDULER_ENABLED", true),
			Spec:    getEnv("SCHEDULER_CLEANUP_SPEC", "0 0 4 * * *"),
		},
		Seed: SeedConfig{
			Enabled:       getEnvAsBool("SEED_ENABLED", false),
			File:          getEnv("SEED_FILE", ""),
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@skku.edu"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		Pagination: PaginationConfig{
			Limit:            getEnvAsInt("PAGINATION_LIMIT", 12),
			DisplayPageCount: getEnvAsInt("PAGINATION_DISPLAY_PAGES", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("환경 변수 검증 실패 : %w", err)
	}

	return cfg, nil
}

func loadEnvFile(env string) error {
	envFile := fmt.Sprintf(".env.%s", env)

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Warn("환경 변수 파일을 찾을 수 없습니다. 시스템 환경 변수를 사용합니다.",
			"file", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 오류: %s: %w", envFile, err)
	}

	absPath, _ := filepath.Abs(envFile)
	slog.Info("환경 변수 파일 로드", "file", absPath)
	return nil
}

func (c *Config) Validate() error {
	var errors []string

	// App validation
	if c.App.Port < 1 || c.App.Port > 65535 {
		errors = append(errors, "유효하지 않은 포트 번호")
	}

	// Database validation
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Service == "" {
			errors = append(errors, "SQLite 파일 경로(DB_SERVICE)가 필요합니다")
		}
	case DriverOracle, DriverPostgres, DriverMySQL:
		if c.Database.Host == "" {
			errors = append(errors, "데이터베이스 Host가 필요합니다")
		}
		if c.Database.Service == "" {
			errors = append(errors, "데이터베이스 Service가 필요합니다")
		}
		if c.Database.User == "" {
			errors = append(errors, "데이터베이스 User가 필요합니다")
		}
		if c.Database.Password == "" {
			errors = append(errors, "데이터베이스 Password가 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 데이터베이스 드라이버: %s", c.Database.Driver))
	}

	// JWT validation
	if c.JWT.Secret == "" {
		errors = append(errors, "JWT Secret Key가 필요합니다")
	}
	if len(c.JWT.Secret) < 32 {
		errors = append(errors, "JWT Secret Key는 32자 이상이어야 합니다")
	}

	// Storage validation
	switch c.Storage.Driver {
	case StorageLocal:
	case StorageS3:
		if c.Storage.Bucket == "" || c.Storage.Region == "" {
			errors = append(errors, "S3 Bucket과 Region이 필요합니다")
		}
	default:
		errors = append(errors, fmt.Sprintf("지원하지 않는 스토리지 드라이버: %s", c.Storage.Driver))
	}

	if c.Pagination.Limit < 1 || c.Pagination.DisplayPageCount < 1 {
		errors = append(errors, "페이지네이션 설정은 1 이상이어야 합니다")
	}

	if len(errors) > 0 {
		return fmt.Errorf("유효성 검사 오류: %s", strings.Join(errors, ", "))
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "prod" || c.App.Env == "production"
}

// IsMailConfigured reports whether SMTP credentials are present
func (c *Config) IsMailConfigured() bool {
	return c.Mail.Host != "" && c.Mail.Username != "" && c.Mail.Password != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if defaultDuration, err := time.ParseDuration(defaultValue); err == nil {
		return defaultDuration
	}
	return 0
}
