package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
)

const View = "admin/dashboard"

type DashboardHandler struct {
	dashboardService *DashboardService
}

func NewDashboardHandler(dashboardService *DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Index(c *gin.Context) {
	response, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}

	handler.HTML(c, http.StatusOK, View, gin.H{
		"Title":     "대시보드",
		"Dashboard": response,
	})
}
