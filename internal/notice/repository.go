package notice

import (
	"context"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

type ListFilter struct {
	Keyword     string
	IsImportant *bool
}

type NoticeRepository struct{}

func NewNoticeRepository() *NoticeRepository {
	return &NoticeRepository{}
}

func (r *NoticeRepository) Create(ctx context.Context, db *gorm.DB, notice *model.Notice) error {
	return db.WithContext(ctx).Create(notice).Error
}

func (r *NoticeRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Notice, error) {
	var notice model.Notice
	err := db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

// List orders important notices first, then newest
func (r *NoticeRepository) List(ctx context.Context, db *gorm.DB, filter ListFilter, offset, limit int) ([]model.Notice, error) {
	var notices []model.Notice
	err := applyFilter(db.WithContext(ctx), filter).
		Preload("Author").
		Order("is_important DESC").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notices).Error
	return notices, err
}

func (r *NoticeRepository) Count(ctx context.Context, db *gorm.DB, filter ListFilter) (int64, error) {
	var count int64
	err := applyFilter(db.WithContext(ctx).Model(&model.Notice{}), filter).Count(&count).Error
	return count, err
}

func (r *NoticeRepository) UpdateFields(ctx context.Context, db *gorm.DB, id uint32, fields map[string]any) error {
	return db.WithContext(ctx).Model(&model.Notice{}).Where("id = ?", id).Updates(fields).Error
}

// IncrementViews adds one in SQL, not read-modify-write
func (r *NoticeRepository) IncrementViews(ctx context.Context, db *gorm.DB, id uint32) error {
	return db.WithContext(ctx).
		Model(&model.Notice{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *NoticeRepository) Delete(ctx context.Context, db *gorm.DB, id uint32) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func applyFilter(db *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		db = db.Where("(title LIKE ? OR content LIKE ?)", like, like)
	}
	if filter.IsImportant != nil {
		db = db.Where("is_important = ?", *filter.IsImportant)
	}
	return db
}
