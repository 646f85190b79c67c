package tokenstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"gorm.io/gorm"
)

const tokenInvalid = "TOKEN_INVALID" // errInfo

var ErrTokenInvalid = sharedError.NewDomainError(tokenInvalid)

func init() {
	sharedError.RegisterDomainErrorResponse(tokenInvalid, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "TOKEN-001",
		Message: "유효하지 않거나 만료된 링크입니다.",
	})
}

// Store issues one-time tokens for email verification and password reset
type Store interface {
	Issue(ctx context.Context, kind model.TokenKind, userID uint32, ttl time.Duration) (string, error)
	// Consume returns the user id bound to the token and invalidates it
	Consume(ctx context.Context, kind model.TokenKind, token string) (uint32, error)
	// PurgeExpired removes expired tokens, returning how many were removed
	PurgeExpired(ctx context.Context) (int64, error)
}

// New returns a redis-backed store when REDIS_URL is set, otherwise the database store
func New(cfg *config.Config, db *gorm.DB) (Store, func() error, error) {
	if cfg.Redis.URL == "" {
		return NewDatabaseStore(db), func() error { return nil }, nil
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("REDIS_URL 파싱 실패: %w", err)
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis 연결 실패: %w", err)
	}

	return NewRedisStore(client), client.Close, nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
