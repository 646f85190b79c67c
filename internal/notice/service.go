package notice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type NoticeService struct {
	db               *gorm.DB
	cfg              *config.Config
	noticeRepository *NoticeRepository
	publisher        event.Publisher
}

func NewNoticeService(db *gorm.DB, cfg *config.Config, noticeRepository *NoticeRepository, publisher event.Publisher) *NoticeService {
	return &NoticeService{
		db:               db,
		cfg:              cfg,
		noticeRepository: noticeRepository,
		publisher:        publisher,
	}
}

func (s *NoticeService) List(ctx context.Context, query ListQuery, page pagination.Query) (*NoticeListResponse, error) {
	filter := query.Filter()

	total, err := s.noticeRepository.Count(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("count notices: %w", err)
	}

	p := pagination.New(total, page.Page, page.Limit, s.cfg.Pagination.DisplayPageCount)
	notices, err := s.noticeRepository.List(ctx, s.db, filter, p.Offset(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}

	items := make([]NoticeResponse, 0, len(notices))
	for i := range notices {
		items = append(items, NewNoticeResponse(&notices[i]))
	}
	return &NoticeListResponse{Items: items, Pagination: p}, nil
}

// Latest returns the newest notices for the home page
func (s *NoticeService) Latest(ctx context.Context, limit int) ([]NoticeResponse, error) {
	response, err := s.List(ctx, ListQuery{}, pagination.Query{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return response.Items, nil
}

// Get returns the notice without touching its view count
func (s *NoticeService) Get(ctx context.Context, id uint32) (*NoticeResponse, error) {
	notice, err := s.noticeRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find notice %d: %w", id, ErrNoticeNotFound)
		}
		return nil, fmt.Errorf("find notice %d: %w", id, err)
	}

	resp := NewNoticeResponse(notice)
	return &resp, nil
}

// View is Get for public readers: it counts the visit first
func (s *NoticeService) View(ctx context.Context, id uint32) (*NoticeResponse, error) {
	if err := s.noticeRepository.IncrementViews(ctx, s.db, id); err != nil {
		logger.FromContext(ctx).Warn("조회수 증가 실패", "notice_id", id, "error", err)
	}
	return s.Get(ctx, id)
}

func (s *NoticeService) Create(ctx context.Context, authorID uint32, req *NoticeRequest) (*NoticeResponse, error) {
	log := logger.FromContext(ctx)

	if req.blank() {
		return nil, fmt.Errorf("create notice: %w", ErrTitleRequired)
	}

	notice := &model.Notice{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		IsImportant: req.IsImportant,
		AuthorID:    &authorID,
	}
	if err := s.noticeRepository.Create(ctx, s.db, notice); err != nil {
		log.Error("공지사항 등록 실패", "error", err)
		return nil, fmt.Errorf("create notice: %w", err)
	}

	log.Info("공지사항 등록 완료", "notice_id", notice.ID, "important", notice.IsImportant)
	event.Emit(ctx, s.publisher, event.New(event.NoticePublished, notice.ID, authorID))

	return s.Get(ctx, notice.ID)
}

func (s *NoticeService) Update(ctx context.Context, id uint32, req *NoticeRequest) (*NoticeResponse, error) {
	if req.blank() {
		return nil, fmt.Errorf("update notice %d: %w", id, ErrTitleRequired)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	err := s.noticeRepository.UpdateFields(ctx, s.db, id, map[string]any{
		"title":        strings.TrimSpace(req.Title),
		"content":      req.Content,
		"is_important": req.IsImportant,
	})
	if err != nil {
		return nil, fmt.Errorf("update notice %d: %w", id, err)
	}

	logger.FromContext(ctx).Info("공지사항 수정 완료", "notice_id", id)
	return s.Get(ctx, id)
}

func (s *NoticeService) Delete(ctx context.Context, id uint32) error {
	if err := s.noticeRepository.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("delete notice %d: %w", id, ErrNoticeNotFound)
		}
		return fmt.Errorf("delete notice %d: %w", id, err)
	}

	logger.FromContext(ctx).Info("공지사항 삭제 완료", "notice_id", id)
	return nil
}
