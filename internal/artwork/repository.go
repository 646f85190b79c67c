package artwork

import (
	"context"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

type ListFilter struct {
	Keyword      string
	Department   string
	ExhibitionID uint32
	Featured     *bool
	UserID       uint32
}

type ArtworkRepository struct{}

func NewArtworkRepository() *ArtworkRepository {
	return &ArtworkRepository{}
}

func (r *ArtworkRepository) Create(ctx context.Context, db *gorm.DB, artwork *model.Artwork) error {
	return db.WithContext(ctx).Create(artwork).Error
}

func (r *ArtworkRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Artwork, error) {
	var artwork model.Artwork
	err := db.WithContext(ctx).
		Preload("Exhibition").
		Preload("User").
		Where("id = ?", id).
		First(&artwork).Error
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *ArtworkRepository) List(ctx context.Context, db *gorm.DB, filter ListFilter, offset, limit int) ([]model.Artwork, error) {
	var artworks []model.Artwork
	err := applyFilter(db.WithContext(ctx).Preload("Exhibition"), filter).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&artworks).Error
	return artworks, err
}

func (r *ArtworkRepository) Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error) {
	var count int64
	err := applyFilter(db.WithContext(ctx).Model(&model.Artwork{}), filter).Count(&count).Error
	return count, err
}

// ListFeatured returns the newest featured artworks
func (r *ArtworkRepository) ListFeatured(ctx context.Context, db *gorm.DB, limit int) ([]model.Artwork, error) {
	var artworks []model.Artwork
	err := db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("updated_at DESC").
		Limit(limit).
		Find(&artworks).Error
	return artworks, err
}

func (r *ArtworkRepository) Departments(ctx context.Context, db *gorm.DB) ([]string, error) {
	var departments []string
	err := db.WithContext(ctx).
		Model(&model.Artwork{}).
		Where("department <> ''").
		Distinct().
		Order("department").
		Pluck("department", &departments).Error
	return departments, err
}

func (r *ArtworkRepository) UpdateFields(ctx context.Context, db *gorm.DB, id uint32, fields map[string]any) error {
	return db.WithContext(ctx).Model(&model.Artwork{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the artwork and its comments. Must run inside a transaction.
func (r *ArtworkRepository) Delete(ctx context.Context, tx *gorm.DB, id uint32) error {
	tx = tx.WithContext(ctx)

	if err := tx.Where("artwork_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return err
	}

	result := tx.Where("id = ?", id).Delete(&model.Artwork{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ArtworkRepository) ExhibitionExists(ctx context.Context, db *gorm.DB, id uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Exhibition{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExhibitionOptions lists exhibitions for the artwork form select box
func (r *ArtworkRepository) ExhibitionOptions(ctx context.Context, db *gorm.DB) ([]model.Exhibition, error) {
	var exhibitions []model.Exhibition
	err := db.WithContext(ctx).
		Select("id", "title").
		Order("start_date DESC").
		Find(&exhibitions).Error
	return exhibitions, err
}

func applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("(title LIKE ? OR artist LIKE ? OR description LIKE ?)", like, like, like)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	if filter.ExhibitionID != 0 {
		db = db.Where("exhibition_id = ?", filter.ExhibitionID)
	}
	if filter.Featured != nil {
		db = db.Where("is_featured = ?", *filter.Featured)
	}
	if filter.UserID != 0 {
		db = db.Where("user_id = ?", filter.UserID)
	}
	return db
}
