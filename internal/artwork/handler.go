package artwork

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/comment"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	ListView        = "artwork/list"
	DetailView      = "artwork/detail"
	AdminListView   = "admin/artwork/list"
	AdminDetailView = "admin/artwork/detail"

	imageField = "image"
)

type ArtworkHandler struct {
	cfg            *config.Config
	artworkService *ArtworkService
	commentService *comment.CommentService
}

func NewArtworkHandler(cfg *config.Config, artworkService *ArtworkService, commentService *comment.CommentService) *ArtworkHandler {
	return &ArtworkHandler{
		cfg:            cfg,
		artworkService: artworkService,
		commentService: commentService,
	}
}

func (h *ArtworkHandler) List(c *gin.Context) {
	h.list(c, ListView, "작품")
}

func (h *ArtworkHandler) AdminList(c *gin.Context) {
	h.list(c, AdminListView, "작품 관리")
}

func (h *ArtworkHandler) list(c *gin.Context, view, title string) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	ctx := c.Request.Context()
	response, err := h.artworkService.List(ctx, query, pagination.ParseQuery(c, h.cfg.Pagination.Limit))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	departments, err := h.artworkService.Departments(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("학과 목록 조회 실패", "error", err)
	}
	handler.HTML(c, http.StatusOK, view, gin.H{
		"Title":       title,
		"Artworks":    response.Items,
		"Pagination":  response.Pagination,
		"Filter":      query,
		"Departments": departments,
	})
}

// Featured answers JSON for the home page carousel
func (h *ArtworkHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultFeaturedCount)))
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	response, err := h.artworkService.Featured(c.Request.Context(), limit)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "")
}

func (h *ArtworkHandler) Detail(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	response, err := h.artworkService.Get(ctx, id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	viewer, _ := sharedContext.GetUser(c)
	comments, err := h.commentService.ListByArtwork(ctx, id, viewer, pagination.ParseQuery(c, comment.DefaultPageSize))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	handler.HTML(c, http.StatusOK, DetailView, gin.H{
		"Title":    response.Title,
		"Artwork":  response,
		"Comments": comments,
		"CanEdit":  viewer.CanModify(response.UserID),
	})
}

func (h *ArtworkHandler) AdminDetail(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	response, err := h.artworkService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}
	h.form(c, "작품 수정", response)
}

// AdminNew renders the empty artwork form
func (h *ArtworkHandler) AdminNew(c *gin.Context) {
	h.form(c, "작품 등록", nil)
}

func (h *ArtworkHandler) form(c *gin.Context, title string, artwork *ArtworkResponse) {
	ctx := c.Request.Context()
	exhibitions, err := h.artworkService.ExhibitionOptions(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("전시 목록 조회 실패", "error", err)
	}

	handler.HTML(c, http.StatusOK, AdminDetailView, gin.H{
		"Title":       title,
		"Artwork":     artwork,
		"Exhibitions": exhibitions,
	})
}

func (h *ArtworkHandler) Create(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	var request ArtworkRequest
	if !handler.Bind(c, &request) {
		return
	}
	image, ok := handler.OptionalFile(c, imageField)
	if !ok {
		return
	}

	response, err := h.artworkService.Create(c.Request.Context(), sessionUser, &request, image)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusCreated, response, "작품이 등록되었습니다.")
}

func (h *ArtworkHandler) Update(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request ArtworkRequest
	if !handler.Bind(c, &request) {
		return
	}
	image, ok := handler.OptionalFile(c, imageField)
	if !ok {
		return
	}

	response, err := h.artworkService.Update(c.Request.Context(), sessionUser, id, &request, image)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "작품이 수정되었습니다.")
}

func (h *ArtworkHandler) Delete(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.artworkService.Delete(c.Request.Context(), sessionUser, id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "작품이 삭제되었습니다.")
}

func (h *ArtworkHandler) SetFeatured(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request FeaturedRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.artworkService.SetFeatured(c.Request.Context(), id, request.IsFeatured)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "추천 설정이 변경되었습니다.")
}
