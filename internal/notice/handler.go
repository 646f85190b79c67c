package notice

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	ListView        = "notice/list"
	DetailView      = "notice/detail"
	AdminListView   = "admin/notice/list"
	AdminDetailView = "admin/notice/detail"
)

type NoticeHandler struct {
	cfg           *config.Config
	noticeService *NoticeService
}

func NewNoticeHandler(cfg *config.Config, noticeService *NoticeService) *NoticeHandler {
	return &NoticeHandler{
		cfg:           cfg,
		noticeService: noticeService,
	}
}

func (h *NoticeHandler) List(c *gin.Context) {
	h.list(c, ListView, "공지사항")
}

func (h *NoticeHandler) AdminList(c *gin.Context) {
	h.list(c, AdminListView, "공지사항 관리")
}

func (h *NoticeHandler) list(c *gin.Context, view, title string) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.noticeService.List(c.Request.Context(), query, pagination.ParseQuery(c, h.cfg.Pagination.Limit))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	handler.HTML(c, http.StatusOK, view, gin.H{
		"Title":      title,
		"Notices":    response.Items,
		"Pagination": response.Pagination,
		"Filter":     query,
	})
}

func (h *NoticeHandler) Detail(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	response, err := h.noticeService.View(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	handler.HTML(c, http.StatusOK, DetailView, gin.H{
		"Title":  response.Title,
		"Notice": response,
	})
}

func (h *NoticeHandler) AdminDetail(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	response, err := h.noticeService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	handler.HTML(c, http.StatusOK, AdminDetailView, gin.H{
		"Title":  "공지사항 수정",
		"Notice": response,
	})
}

// AdminNew renders the empty notice form
func (h *NoticeHandler) AdminNew(c *gin.Context) {
	handler.HTML(c, http.StatusOK, AdminDetailView, gin.H{
		"Title":  "공지사항 작성",
		"Notice": (*NoticeResponse)(nil),
	})
}

func (h *NoticeHandler) Create(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	var request NoticeRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.noticeService.Create(c.Request.Context(), sessionUser.ID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusCreated, response, "공지사항이 등록되었습니다.")
}

func (h *NoticeHandler) Update(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request NoticeRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.noticeService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "공지사항이 수정되었습니다.")
}

func (h *NoticeHandler) Delete(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.noticeService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "공지사항이 삭제되었습니다.")
}
