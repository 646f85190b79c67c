package exhibition

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	ListView        = "exhibition/list"
	DetailView      = "exhibition/detail"
	AdminListView   = "admin/exhibition/list"
	AdminDetailView = "admin/exhibition/detail"

	imageField = "image"
)

type ExhibitionHandler struct {
	cfg               *config.Config
	exhibitionService *ExhibitionService
}

func NewExhibitionHandler(cfg *config.Config, exhibitionService *ExhibitionService) *ExhibitionHandler {
	return &ExhibitionHandler{
		cfg:               cfg,
		exhibitionService: exhibitionService,
	}
}

func (h *ExhibitionHandler) List(c *gin.Context) {
	h.list(c, ListView, "전시")
}

func (h *ExhibitionHandler) AdminList(c *gin.Context) {
	h.list(c, AdminListView, "전시 관리")
}

func (h *ExhibitionHandler) list(c *gin.Context, view, title string) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.exhibitionService.List(c.Request.Context(), query, pagination.ParseQuery(c, h.cfg.Pagination.Limit))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	handler.HTML(c, http.StatusOK, view, gin.H{
		"Title":       title,
		"Exhibitions": response.Items,
		"Pagination":  response.Pagination,
		"Filter":      query,
		"Types":       typeLabels,
		"Statuses":    statusLabels,
	})
}

func (h *ExhibitionHandler) Detail(c *gin.Context) {
	h.detail(c, DetailView)
}

func (h *ExhibitionHandler) AdminDetail(c *gin.Context) {
	h.detail(c, AdminDetailView)
}

func (h *ExhibitionHandler) detail(c *gin.Context, view string) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	response, err := h.exhibitionService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	title := response.Title
	if view == AdminDetailView {
		title = "전시 수정"
	}
	handler.HTML(c, http.StatusOK, view, gin.H{
		"Title":      title,
		"Exhibition": response,
		"Types":      typeLabels,
	})
}

// AdminNew renders the empty exhibition form
func (h *ExhibitionHandler) AdminNew(c *gin.Context) {
	handler.HTML(c, http.StatusOK, AdminDetailView, gin.H{
		"Title":      "전시 등록",
		"Exhibition": (*ExhibitionResponse)(nil),
		"Types":      typeLabels,
	})
}

func (h *ExhibitionHandler) Create(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	var request ExhibitionRequest
	if !handler.Bind(c, &request) {
		return
	}
	image, ok := handler.OptionalFile(c, imageField)
	if !ok {
		return
	}

	response, err := h.exhibitionService.Create(c.Request.Context(), sessionUser.ID, &request, image)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusCreated, response, "전시가 등록되었습니다.")
}

func (h *ExhibitionHandler) Update(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request ExhibitionRequest
	if !handler.Bind(c, &request) {
		return
	}
	image, ok := handler.OptionalFile(c, imageField)
	if !ok {
		return
	}

	response, err := h.exhibitionService.Update(c.Request.Context(), id, &request, image)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "전시가 수정되었습니다.")
}

func (h *ExhibitionHandler) Delete(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.exhibitionService.Delete(c.Request.Context(), sessionUser.ID, id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "전시가 삭제되었습니다.")
}
