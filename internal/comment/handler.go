package comment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

type CommentHandler struct {
	commentService *CommentService
}

func NewCommentHandler(commentService *CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// List always answers JSON; the artwork page loads further comment pages with fetch
func (h *CommentHandler) List(c *gin.Context) {
	artworkID, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	viewer, _ := sharedContext.GetUser(c)
	response, err := h.commentService.ListByArtwork(c.Request.Context(), artworkID, viewer, pagination.ParseQuery(c, DefaultPageSize))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "")
}

func (h *CommentHandler) Create(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	artworkID, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request CommentRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.commentService.Create(c.Request.Context(), sessionUser, artworkID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusCreated, response, "댓글이 등록되었습니다.")
}

func (h *CommentHandler) Update(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request CommentRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.commentService.Update(c.Request.Context(), sessionUser, id, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "댓글이 수정되었습니다.")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), sessionUser, id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "댓글이 삭제되었습니다.")
}
