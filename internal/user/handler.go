package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	ProfileView     = "user/profile"
	AdminListView   = "admin/user/list"
	AdminDetailView = "admin/user/detail"
)

type UserHandler struct {
	cfg         *config.Config
	userService *UserService
}

func NewUserHandler(cfg *config.Config, userService *UserService) *UserHandler {
	return &UserHandler{
		cfg:         cfg,
		userService: userService,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	response, err := h.userService.GetProfile(c.Request.Context(), sessionUser.ID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}
	handler.HTML(c, http.StatusOK, ProfileView, gin.H{
		"Title": "내 정보",
		"User":  response,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.userService.UpdateProfile(c.Request.Context(), sessionUser.ID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "정보가 수정되었습니다.")
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), sessionUser.ID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	middleware.ClearSessionCookie(c, h.cfg)
	handler.RespondSuccess(c, http.StatusOK, gin.H{"redirect": "/"}, "회원 탈퇴가 완료되었습니다.")
}

func (h *UserHandler) AdminList(c *gin.Context) {
	var query ListQuery
	if !handler.BindQuery(c, &query) {
		return
	}

	response, err := h.userService.List(c.Request.Context(), query, pagination.ParseQuery(c, h.cfg.Pagination.Limit))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}
	handler.HTML(c, http.StatusOK, AdminListView, gin.H{
		"Title":      "회원 관리",
		"Users":      response.Items,
		"Pagination": response.Pagination,
		"Filter":     query,
		"Roles":      roleLabels,
		"Statuses":   statusLabels,
	})
}

func (h *UserHandler) AdminDetail(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	response, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, response, "")
		return
	}
	handler.HTML(c, http.StatusOK, AdminDetailView, gin.H{
		"Title":    "회원 상세",
		"User":     response,
		"Roles":    roleLabels,
		"Statuses": statusLabels,
	})
}

func (h *UserHandler) AdminUpdate(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	var request AdminUpdateRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.userService.AdminUpdate(c.Request.Context(), sessionUser.ID, id, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, response, "회원 정보가 수정되었습니다.")
}

func (h *UserHandler) AdminDelete(c *gin.Context) {
	sessionUser, ok := handler.RequireUser(c)
	if !ok {
		return
	}
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.AdminDelete(c.Request.Context(), sessionUser.ID, id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "회원이 삭제되었습니다.")
}

func (h *UserHandler) AdminResetPassword(c *gin.Context) {
	id, ok := handler.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), id); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "임시 비밀번호가 메일로 발송되었습니다.")
}
