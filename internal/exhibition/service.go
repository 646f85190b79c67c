package exhibition

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const imageFolder = "exhibitions"

type ExhibitionService struct {
	db                   *gorm.DB
	cfg                  *config.Config
	exhibitionRepository *ExhibitionRepository
	storage              imagestore.Storage
	publisher            event.Publisher
	now                  func() time.Time
}

func NewExhibitionService(db *gorm.DB, cfg *config.Config, exhibitionRepository *ExhibitionRepository, storage imagestore.Storage, publisher event.Publisher) *ExhibitionService {
	return &ExhibitionService{
		db:                   db,
		cfg:                  cfg,
		exhibitionRepository: exhibitionRepository,
		storage:              storage,
		publisher:            publisher,
		now:                  func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExhibitionService) List(ctx context.Context, query ListQuery, page pagination.Query) (*ExhibitionListResponse, error) {
	now := s.now()
	filter := query.Filter(now)

	total, err := s.exhibitionRepository.Count(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("count exhibitions: %w", err)
	}

	p := pagination.New(total, page.Page, page.Limit, s.cfg.Pagination.DisplayPageCount)
	exhibitions, err := s.exhibitionRepository.List(ctx, s.db, filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list exhibitions: %w", err)
	}

	items := make([]ExhibitionResponse, 0, len(exhibitions))
	for i := range exhibitions {
		items = append(items, NewExhibitionResponse(&exhibitions[i], now))
	}
	return &ExhibitionListResponse{Items: items, Pagination: p}, nil
}

// Ongoing lists exhibitions running today, for the home page
func (s *ExhibitionService) Ongoing(ctx context.Context, limit int) ([]ExhibitionResponse, error) {
	response, err := s.List(ctx, ListQuery{Status: string(model.ExhibitionStatusOngoing)}, pagination.Query{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

// Get returns the exhibition with its artworks
func (s *ExhibitionService) Get(ctx context.Context, id uint32) (*ExhibitionResponse, error) {
	exhibition, err := s.exhibitionRepository.FindWithArtworks(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find exhibition %d: %w", id, ErrExhibitionNotFound)
		}
		return nil, fmt.Errorf("find exhibition %d: %w", id, err)
	}

	resp := NewExhibitionResponse(exhibition, s.now())
	return &resp, nil
}

func (s *ExhibitionService) Create(ctx context.Context, actorID uint32, req *ExhibitionRequest, image *multipart.FileHeader) (*ExhibitionResponse, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("create exhibition: %w", ErrTitleRequired)
	}
	start, end, err := req.Period()
	if err != nil {
		return nil, fmt.Errorf("create exhibition: %w", err)
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	exhibition := &model.Exhibition{
		Title:          title,
		Subtitle:       req.Subtitle,
		Description:    req.Description,
		StartDate:      start,
		EndDate:        end,
		ExhibitionType: req.Type(),
		Location:       req.Location,
		Artists:        datatypes.NewJSONSlice(req.ArtistList()),
		IsFeatured:     req.IsFeatured,
	}
	if uploaded != nil {
		exhibition.ImageURL = uploaded.URL
		exhibition.ImageKey = uploaded.Key
	}

	if err := s.exhibitionRepository.Create(ctx, s.db, exhibition); err != nil {
		s.discard(ctx, uploaded)
		log.Error("전시 등록 실패", "error", err)
		return nil, fmt.Errorf("create exhibition: %w", err)
	}

	log.Info("전시 등록 완료", "exhibition_id", exhibition.ID)
	event.Emit(ctx, s.publisher, event.New(event.ExhibitionCreated, exhibition.ID, actorID))

	return s.Get(ctx, exhibition.ID)
}

func (s *ExhibitionService) Update(ctx context.Context, id uint32, req *ExhibitionRequest, image *multipart.FileHeader) (*ExhibitionResponse, error) {
	log := logger.FromContext(ctx)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("update exhibition: %w", ErrTitleRequired)
	}
	start, end, err := req.Period()
	if err != nil {
		return nil, fmt.Errorf("update exhibition: %w", err)
	}

	current, err := s.exhibitionRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("update exhibition %d: %w", id, ErrExhibitionNotFound)
		}
		return nil, fmt.Errorf("update exhibition %d: %w", id, err)
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"title":           title,
		"subtitle":        req.Subtitle,
		"description":     req.Description,
		"start_date":      start,
		"end_date":        end,
		"exhibition_type": req.Type(),
		"location":        req.Location,
		"artists":         datatypes.NewJSONSlice(req.ArtistList()),
		"is_featured":     req.IsFeatured,
	}

	replaced := ""
	switch {
	case uploaded != nil:
		fields["image_url"] = uploaded.URL
		fields["image_key"] = uploaded.Key
		replaced = current.ImageKey
	case req.RemoveImage:
		fields["image_url"] = ""
		fields["image_key"] = ""
		replaced = current.ImageKey
	}

	if err := s.exhibitionRepository.UpdateFields(ctx, s.db, id, fields); err != nil {
		s.discard(ctx, uploaded)
		log.Error("전시 수정 실패", "exhibition_id", id, "error", err)
		return nil, fmt.Errorf("update exhibition: %w", err)
	}
	if replaced != "" {
		s.discard(ctx, &imagestore.Image{Key: replaced})
	}

	log.Info("전시 수정 완료", "exhibition_id", id)
	return s.Get(ctx, id)
}

// Delete detaches the artworks and removes the exhibition in one transaction
func (s *ExhibitionService) Delete(ctx context.Context, actorID, id uint32) error {
	log := logger.FromContext(ctx)

	current, err := s.exhibitionRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete exhibition %d: %w", id, ErrExhibitionNotFound)
		}
		return fmt.Errorf("delete exhibition %d: %w", id, err)
	}

	var detached int64
	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		n, err := s.exhibitionRepository.Delete(ctx, tx, id)
		detached = n
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete exhibition %d: %w", id, ErrExhibitionNotFound)
		}
		log.Error("전시 삭제 실패", "exhibition_id", id, "error", err)
		return fmt.Errorf("delete exhibition: %w", err)
	}

	if current.ImageKey != "" {
		s.discard(ctx, &imagestore.Image{Key: current.ImageKey})
	}

	log.Info("전시 삭제 완료", "exhibition_id", id, "detached_artworks", detached)
	event.Emit(ctx, s.publisher, event.New(event.ExhibitionDeleted, id, actorID))
	return nil
}

func (s *ExhibitionService) upload(ctx context.Context, image *multipart.FileHeader) (*imagestore.Image, error) {
	if image == nil {
		return nil, nil
	}

	uploaded, err := s.storage.Upload(ctx, image, imageFolder)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return uploaded, nil
}

func (s *ExhibitionService) discard(ctx context.Context, image *imagestore.Image) {
	if image == nil || image.Key == "" {
		return
	}
	if err := s.storage.Delete(ctx, image.Key); err != nil {
		logger.FromContext(ctx).Warn("이미지 삭제 실패", "key", image.Key, "error", err)
	}
}
