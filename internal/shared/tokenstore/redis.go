package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
)

const keyPrefix = "gallery:token:"

// RedisStore keeps tokens as TTL'd keys; expiry is handled by redis
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func tokenKey(kind model.TokenKind, token string) string {
	return keyPrefix + string(kind) + ":" + token
}

func userKey(kind model.TokenKind, userID uint32) string {
	return keyPrefix + string(kind) + ":user:" + strconv.FormatUint(uint64(userID), 10)
}

func (s *RedisStore) Issue(ctx context.Context, kind model.TokenKind, userID uint32, ttl time.Duration) (string, error) {
	token := newToken()

	// drop the previously issued token of this kind for the user
	previous, err := s.client.Get(ctx, userKey(kind, userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("lookup previous %s token: %w", kind, err)
	}

	pipe := s.client.TxPipeline()
	if previous != "" {
		pipe.Del(ctx, tokenKey(kind, previous))
	}
	pipe.Set(ctx, tokenKey(kind, token), userID, ttl)
	pipe.Set(ctx, userKey(kind, userID), token, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("issue %s token: %w", kind, err)
	}
	return token, nil
}

func (s *RedisStore) Consume(ctx context.Context, kind model.TokenKind, token string) (uint32, error) {
	value, err := s.client.GetDel(ctx, tokenKey(kind, token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("token not found: %w", ErrTokenInvalid)
	}
	if err != nil {
		return 0, fmt.Errorf("consume %s token: %w", kind, err)
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("corrupt token value %q: %w", value, ErrTokenInvalid)
	}

	s.client.Del(ctx, userKey(kind, uint32(userID)))
	return uint32(userID), nil
}

func (s *RedisStore) PurgeExpired(context.Context) (int64, error) {
	return 0, nil
}
