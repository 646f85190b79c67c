package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"gorm.io/gorm"
)

// DatabaseStore keeps tokens in the user_token table
type DatabaseStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db, now: time.Now}
}

func (s *DatabaseStore) Issue(ctx context.Context, kind model.TokenKind, userID uint32, ttl time.Duration) (string, error) {
	token := newToken()

	record := &model.UserToken{
		Token:     token,
		Kind:      kind,
		UserID:    userID,
		ExpiresAt: s.now().Add(ttl),
	}

	// previous tokens of the same kind stop working once a new one is issued
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND kind = ?", userID, kind).Delete(&model.UserToken{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return "", fmt.Errorf("issue %s token: %w", kind, err)
	}
	return token, nil
}

func (s *DatabaseStore) Consume(ctx context.Context, kind model.TokenKind, token string) (uint32, error) {
	var record model.UserToken

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("token = ? AND kind = ?", token, kind).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("token not found: %w", ErrTokenInvalid)
			}
			return err
		}
		// a concurrent consume may have deleted the row after First; only one caller wins
		result := tx.Where("token = ?", record.Token).Delete(&model.UserToken{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return fmt.Errorf("token already consumed: %w", ErrTokenInvalid)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.now().After(record.ExpiresAt) {
		return 0, fmt.Errorf("token expired at %s: %w", record.ExpiresAt, ErrTokenInvalid)
	}
	return record.UserID, nil
}

func (s *DatabaseStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&model.UserToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("purge expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
