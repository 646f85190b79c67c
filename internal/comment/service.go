package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type CommentService struct {
	db                *gorm.DB
	cfg               *config.Config
	commentRepository *CommentRepository
}

func NewCommentService(db *gorm.DB, cfg *config.Config, commentRepository *CommentRepository) *CommentService {
	return &CommentService{
		db:                db,
		cfg:               cfg,
		commentRepository: commentRepository,
	}
}

// ListByArtwork pages through an artwork's comments; viewer decides CanEdit and may be nil
func (s *CommentService) ListByArtwork(ctx context.Context, artworkID uint32, viewer *sharedContext.SessionUser, page pagination.Query) (*CommentListResponse, error) {
	if err := s.checkArtwork(ctx, artworkID); err != nil {
		return nil, err
	}

	total, err := s.commentRepository.CountByArtwork(ctx, s.db, artworkID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	p := pagination.New(total, page.Page, page.Limit, s.cfg.Pagination.DisplayPageCount)
	comments, err := s.commentRepository.ListByArtwork(ctx, s.db, artworkID, p.Offset(), p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	items := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, NewCommentResponse(&comments[i], viewer))
	}
	return &CommentListResponse{Items: items, Pagination: p}, nil
}

func (s *CommentService) Create(ctx context.Context, author *sharedContext.SessionUser, artworkID uint32, req *CommentRequest) (*CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("create comment: %w", ErrCommentEmpty)
	}
	if err := s.checkArtwork(ctx, artworkID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:   content,
		ArtworkID: artworkID,
		AuthorID:  author.ID,
	}
	if err := s.commentRepository.Create(ctx, s.db, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	logger.FromContext(ctx).Info("댓글 등록", "comment_id", comment.ID, "artwork_id", artworkID)
	return s.get(ctx, comment.ID, author)
}

func (s *CommentService) Update(ctx context.Context, actor *sharedContext.SessionUser, id uint32, req *CommentRequest) (*CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("update comment: %w", ErrCommentEmpty)
	}

	if _, err := s.authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.commentRepository.UpdateContent(ctx, s.db, id, content); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	logger.FromContext(ctx).Info("댓글 수정", "comment_id", id)
	return s.get(ctx, id, actor)
}

func (s *CommentService) Delete(ctx context.Context, actor *sharedContext.SessionUser, id uint32) error {
	if _, err := s.authorize(ctx, actor, id); err != nil {
		return err
	}

	if err := s.commentRepository.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	logger.FromContext(ctx).Info("댓글 삭제", "comment_id", id)
	return nil
}

// authorize loads the comment and allows only its author or an admin
func (s *CommentService) authorize(ctx context.Context, actor *sharedContext.SessionUser, id uint32) (*model.Comment, error) {
	comment, err := s.commentRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find comment %d: %w", id, ErrCommentNotFound)
		}
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}

	authorID := comment.AuthorID
	if !actor.CanModify(&authorID) {
		logger.FromContext(ctx).Warn("댓글 권한 없음", "comment_id", id)
		return nil, fmt.Errorf("comment %d: %w", id, ErrCommentForbidden)
	}
	return comment, nil
}

func (s *CommentService) get(ctx context.Context, id uint32, viewer *sharedContext.SessionUser) (*CommentResponse, error) {
	comment, err := s.commentRepository.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("find comment %d: %w", id, err)
	}

	resp := NewCommentResponse(comment, viewer)
	return &resp, nil
}

func (s *CommentService) checkArtwork(ctx context.Context, artworkID uint32) error {
	exists, err := s.commentRepository.ArtworkExists(ctx, s.db, artworkID)
	if err != nil {
		return fmt.Errorf("check artwork: %w", err)
	}
	if !exists {
		return fmt.Errorf("artwork %d: %w", artworkID, ErrArtworkNotFound)
	}
	return nil
}
