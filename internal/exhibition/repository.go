package exhibition

import (
	"context"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

type ListFilter struct {
	Type    model.ExhibitionType
	Status  model.ExhibitionStatus
	Keyword string
	Now     time.Time
}

type ExhibitionRepository struct{}

func NewExhibitionRepository() *ExhibitionRepository {
	return &ExhibitionRepository{}
}

func (r *ExhibitionRepository) Create(ctx context.Context, db *gorm.DB, exhibition *model.Exhibition) error {
	return db.WithContext(ctx).Create(exhibition).Error
}

func (r *ExhibitionRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Exhibition, error) {
	var exhibition model.Exhibition
	err := db.WithContext(ctx).Where("id = ?", id).First(&exhibition).Error
	if err != nil {
		return nil, err
	}
	return &exhibition, nil
}

// FindWithArtworks loads the exhibition and its artworks, newest first
func (r *ExhibitionRepository) FindWithArtworks(ctx context.Context, db *gorm.DB, id uint32) (*model.Exhibition, error) {
	var exhibition model.Exhibition
	err := db.WithContext(ctx).
		Preload("Artworks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&exhibition).Error
	if err != nil {
		return nil, err
	}
	return &exhibition, nil
}

func (r *ExhibitionRepository) List(ctx context.Context, db *gorm.DB, filter ListFilter, offset, limit int) ([]model.Exhibition, error) {
	var exhibitions []model.Exhibition
	err := applyFilter(db.WithContext(ctx), filter).
		Order("start_date DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&exhibitions).Error
	return exhibitions, err
}

func (r *ExhibitionRepository) Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error) {
	var count int64
	err := applyFilter(db.WithContext(ctx).Model(&model.Exhibition{}), filter).Count(&count).Error
	return count, err
}

func (r *ExhibitionRepository) UpdateFields(ctx context.Context, db *gorm.DB, id uint32, fields map[string]any) error {
	return db.WithContext(ctx).Model(&model.Exhibition{}).Where("id = ?", id).Updates(fields).Error
}

// Delete detaches the exhibition's artworks and removes it. Must run inside a transaction.
func (r *ExhibitionRepository) Delete(ctx context.Context, tx *gorm.DB, id uint32) (int64, error) {
	tx = tx.WithContext(ctx)

	detached := tx.Model(&model.Artwork{}).Where("exhibition_id = ?", id).Update("exhibition_id", nil)
	if detached.Error != nil {
		return 0, detached.Error
	}

	result := tx.Where("id = ?", id).Delete(&model.Exhibition{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return detached.RowsAffected, nil
}

func applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Type != "" {
		db = db.Where("exhibition_type = ?", filter.Type)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("(title LIKE ? OR subtitle LIKE ? OR location LIKE ?)", like, like, like)
	}

	// dates are stored at midnight UTC and the end date is inclusive
	now := filter.Now
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch filter.Status {
	case model.ExhibitionStatusUpcoming:
		db = db.Where("start_date > ?", now)
	case model.ExhibitionStatusOngoing:
		db = db.Where("start_date <= ? AND end_date >= ?", now, today)
	case model.ExhibitionStatusEnded:
		db = db.Where("end_date < ?", today)
	}
	return db
}
