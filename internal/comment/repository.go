package comment

import (
	"context"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, db *gorm.DB, comment *model.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Comment, error) {
	var comment model.Comment
	err := db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByArtwork returns comments oldest first so threads read top-down
func (r *CommentRepository) ListByArtwork(ctx context.Context, db *gorm.DB, artworkID uint32, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := db.WithContext(ctx).
		Preload("Author").
		Where("artwork_id = ?", artworkID).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByArtwork(ctx context.Context, db *gorm.DB, artworkID uint32) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Comment{}).Where("artwork_id = ?", artworkID).Count(&count).Error
	return count, err
}

func (r *CommentRepository) UpdateContent(ctx context.Context, db *gorm.DB, id uint32, content string) error {
	return db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

func (r *CommentRepository) Delete(ctx context.Context, db *gorm.DB, id uint32) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error
}

func (r *CommentRepository) ArtworkExists(ctx context.Context, db *gorm.DB, artworkID uint32) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&model.Artwork{}).Where("id = ?", artworkID).Count(&count).Error
	return count > 0, err
}
