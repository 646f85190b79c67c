package dashboard

import (
	"context"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

type DashboardRepository struct{}

func NewDashboardRepository() *DashboardRepository {
	return &DashboardRepository{}
}

// Count counts rows of model matching the optional condition
func (r *DashboardRepository) Count(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (int64, error) {
	var count int64
	tx := db.WithContext(ctx).Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}
	err := tx.Count(&count).Error
	return count, err
}

func (r *DashboardRepository) RecentUsers(ctx context.Context, db *gorm.DB, limit int) ([]model.User, error) {
	var users []model.User
	err := db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *DashboardRepository) RecentArtworks(ctx context.Context, db *gorm.DB, limit int) ([]model.Artwork, error) {
	var artworks []model.Artwork
	err := db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&artworks).Error
	return artworks, err
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
