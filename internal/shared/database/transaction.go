package database

import (
	"context"
	"errors"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"gorm.io/gorm"
)

// WithTransaction executes fn within a transaction while propagating context.
// The tx passed to fn already carries ctx; repositories take it in place of the root handle.
// Returning an error from fn rolls back and the rollback is logged with the request logger.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    if err := repo.Delete(ctx, tx, id); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.FromContext(ctx).Warn("트랜잭션 롤백", "error", err)
	}
	return err
}
