package artwork

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"gorm.io/gorm"
)

const (
	imageFolder          = "artworks"
	DefaultFeaturedCount = 8
)

type ArtworkService struct {
	db                *gorm.DB
	cfg               *config.Config
	artworkRepository *ArtworkRepository
	storage           imagestore.Storage
	publisher         event.Publisher
}

func NewArtworkService(db *gorm.DB, cfg *config.Config, artworkRepository *ArtworkRepository, storage imagestore.Storage, publisher event.Publisher) *ArtworkService {
	return &ArtworkService{
		db:                db,
		cfg:               cfg,
		artworkRepository: artworkRepository,
		storage:           storage,
		publisher:         publisher,
	}
}

func (s *ArtworkService) List(ctx context.Context, query ListQuery, page pagination.Query) (*ArtworkListResponse, error) {
	filter := query.Filter()

	total, err := s.artworkRepository.Count(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("count artworks: %w", err)
	}

	p := pagination.New(total, page.Page, page.Limit, s.cfg.Pagination.DisplayPageCount)
	artworks, err := s.artworkRepository.List(ctx, s.db, filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}

	return &ArtworkListResponse{Items: NewArtworkResponses(artworks), Pagination: p}, nil
}

func (s *ArtworkService) Get(ctx context.Context, id uint32) (*ArtworkResponse, error) {
	artwork, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	resp := NewArtworkResponse(artwork)
	return &resp, nil
}

func (s *ArtworkService) Featured(ctx context.Context, limit int) ([]ArtworkResponse, error) {
	if limit <= 0 {
		limit = DefaultFeaturedCount
	}

	artworks, err := s.artworkRepository.ListFeatured(ctx, s.db, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured artworks: %w", err)
	}
	return NewArtworkResponses(artworks), nil
}

// Departments lists the distinct departments for the list filter
func (s *ArtworkService) Departments(ctx context.Context) ([]string, error) {
	return s.artworkRepository.Departments(ctx, s.db)
}

// ExhibitionOptions lists (id, title) pairs for the artwork form
func (s *ArtworkService) ExhibitionOptions(ctx context.Context) ([]model.Exhibition, error) {
	return s.artworkRepository.ExhibitionOptions(ctx, s.db)
}

// Create stores the optional image first and removes it again when the insert fails.
// Only administrators may mark an artwork as featured.
func (s *ArtworkService) Create(ctx context.Context, actor *sharedContext.SessionUser, req *ArtworkRequest, image *multipart.FileHeader) (*ArtworkResponse, error) {
	log := logger.FromContext(ctx)
	req.normalize()
	if req.Title == "" {
		return nil, fmt.Errorf("create artwork: %w", ErrTitleRequired)
	}

	if err := s.checkExhibition(ctx, req.Exhibition()); err != nil {
		return nil, err
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	ownerID := actor.ID
	artwork := &model.Artwork{
		Title:        req.Title,
		Description:  req.Description,
		Artist:       req.Artist,
		Department:   req.Department,
		Year:         req.Year,
		IsFeatured:   req.IsFeatured && actor.IsAdmin(),
		ExhibitionID: req.Exhibition(),
		UserID:       &ownerID,
	}
	if uploaded != nil {
		artwork.ImageURL = uploaded.URL
		artwork.ImageKey = uploaded.Key
	}

	if err := s.artworkRepository.Create(ctx, s.db, artwork); err != nil {
		s.discard(ctx, uploaded)
		log.Error("작품 등록 실패", "error", err)
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	log.Info("작품 등록 완료", "artwork_id", artwork.ID)
	event.Emit(ctx, s.publisher, event.New(event.ArtworkCreated, artwork.ID, actor.ID))

	return s.Get(ctx, artwork.ID)
}

func (s *ArtworkService) Update(ctx context.Context, actor *sharedContext.SessionUser, id uint32, req *ArtworkRequest, image *multipart.FileHeader) (*ArtworkResponse, error) {
	log := logger.FromContext(ctx)
	req.normalize()
	if req.Title == "" {
		return nil, fmt.Errorf("update artwork %d: %w", id, ErrTitleRequired)
	}

	artwork, err := s.find(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(artwork.UserID) {
		log.Warn("작품 수정 권한 없음", "artwork_id", id)
		return nil, fmt.Errorf("update artwork %d: %w", id, ErrArtworkForbidden)
	}
	if err := s.checkExhibition(ctx, req.Exhibition()); err != nil {
		return nil, err
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"title":         req.Title,
		"description":   req.Description,
		"artist":        req.Artist,
		"department":    req.Department,
		"year":          req.Year,
		"exhibition_id": req.Exhibition(),
	}
	if actor.IsAdmin() {
		fields["is_featured"] = req.IsFeatured
	}

	replaced := ""
	switch {
	case uploaded != nil:
		fields["image_url"] = uploaded.URL
		fields["image_key"] = uploaded.Key
		replaced = artwork.ImageKey
	case req.RemoveImage:
		fields["image_url"] = ""
		fields["image_key"] = ""
		replaced = artwork.ImageKey
	}

	if err := s.artworkRepository.UpdateFields(ctx, s.db, id, fields); err != nil {
		s.discard(ctx, uploaded)
		log.Error("작품 수정 실패", "artwork_id", id, "error", err)
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	if replaced != "" {
		s.discard(ctx, &imagestore.Image{Key: replaced})
	}

	log.Info("작품 수정 완료", "artwork_id", id)
	return s.Get(ctx, id)
}

// SetFeatured toggles the featured flag (admin only, enforced by the route)
func (s *ArtworkService) SetFeatured(ctx context.Context, id uint32, featured bool) (*ArtworkResponse, error) {
	if _, err := s.find(ctx, s.db, id); err != nil {
		return nil, err
	}

	if err := s.artworkRepository.UpdateFields(ctx, s.db, id, map[string]any{"is_featured": featured}); err != nil {
		return nil, fmt.Errorf("set featured: %w", err)
	}

	logger.FromContext(ctx).Info("추천 작품 변경", "artwork_id", id, "featured", featured)
	return s.Get(ctx, id)
}

// Delete removes the artwork with its comments, then its stored image
func (s *ArtworkService) Delete(ctx context.Context, actor *sharedContext.SessionUser, id uint32) error {
	log := logger.FromContext(ctx)

	artwork, err := s.find(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(artwork.UserID) {
		log.Warn("작품 삭제 권한 없음", "artwork_id", id)
		return fmt.Errorf("delete artwork %d: %w", id, ErrArtworkForbidden)
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.artworkRepository.Delete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete artwork %d: %w", id, ErrArtworkNotFound)
		}
		log.Error("작품 삭제 실패", "artwork_id", id, "error", err)
		return fmt.Errorf("delete artwork: %w", err)
	}

	if artwork.ImageKey != "" {
		s.discard(ctx, &imagestore.Image{Key: artwork.ImageKey})
	}

	log.Info("작품 삭제 완료", "artwork_id", id)
	event.Emit(ctx, s.publisher, event.New(event.ArtworkDeleted, id, actor.ID))
	return nil
}

func (s *ArtworkService) find(ctx context.Context, db *gorm.DB, id uint32) (*model.Artwork, error) {
	artwork, err := s.artworkRepository.FindByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find artwork %d: %w", id, ErrArtworkNotFound)
		}
		return nil, fmt.Errorf("find artwork %d: %w", id, err)
	}
	return artwork, nil
}

func (s *ArtworkService) checkExhibition(ctx context.Context, id *uint32) error {
	if id == nil {
		return nil
	}

	exists, err := s.artworkRepository.ExhibitionExists(ctx, s.db, *id)
	if err != nil {
		return fmt.Errorf("check exhibition: %w", err)
	}
	if !exists {
		return fmt.Errorf("exhibition %d: %w", *id, ErrExhibitionNotFound)
	}
	return nil
}

func (s *ArtworkService) upload(ctx context.Context, image *multipart.FileHeader) (*imagestore.Image, error) {
	if image == nil {
		return nil, nil
	}

	uploaded, err := s.storage.Upload(ctx, image, imageFolder)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return uploaded, nil
}

// discard removes a stored image; failures only leave an orphan file behind
func (s *ArtworkService) discard(ctx context.Context, image *imagestore.Image) {
	if image == nil || image.Key == "" {
		return
	}
	if err := s.storage.Delete(ctx, image.Key); err != nil {
		logger.FromContext(ctx).Warn("이미지 삭제 실패", "key", image.Key, "error", err)
	}
}
