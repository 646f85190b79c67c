package home

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/artwork"
	"github.com/skku-gallery/gallery/go-web-server/internal/exhibition"
	"github.com/skku-gallery/gallery/go-web-server/internal/notice"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

const (
	IndexView = "home/index"

	featuredCount   = 8
	exhibitionCount = 3
	noticeCount     = 5
)

// HomeHandler renders the landing page. A failing section is logged and left empty.
type HomeHandler struct {
	artworkService    *artwork.ArtworkService
	exhibitionService *exhibition.ExhibitionService
	noticeService     *notice.NoticeService
}

func NewHomeHandler(artworkService *artwork.ArtworkService, exhibitionService *exhibition.ExhibitionService, noticeService *notice.NoticeService) *HomeHandler {
	return &HomeHandler{
		artworkService:    artworkService,
		exhibitionService: exhibitionService,
		noticeService:     noticeService,
	}
}

func (h *HomeHandler) Index(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromContext(ctx)

	featured, err := h.artworkService.Featured(ctx, featuredCount)
	if err != nil {
		log.Error("추천 작품 조회 실패", "error", err)
	}
	exhibitions, err := h.exhibitionService.Ongoing(ctx, exhibitionCount)
	if err != nil {
		log.Error("진행 중 전시 조회 실패", "error", err)
	}
	notices, err := h.noticeService.Latest(ctx, noticeCount)
	if err != nil {
		log.Error("공지사항 조회 실패", "error", err)
	}

	data := gin.H{
		"FeaturedArtworks": featured,
		"Exhibitions":      exhibitions,
		"Notices":          notices,
	}
	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, data, "")
		return
	}

	data["Title"] = "홈"
	handler.HTML(c, http.StatusOK, IndexView, data)
}
