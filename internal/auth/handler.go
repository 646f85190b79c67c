package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
)

const (
	LoginView          = "user/login"
	SignupView         = "user/signup"
	VerifyEmailView    = "user/verify-email"
	ForgotPasswordView = "user/forgot-password"
	ResetPasswordView  = "user/reset-password"
)

type AuthHandler struct {
	cfg         *config.Config
	authService *AuthService
}

func NewAuthHandler(cfg *config.Config, authService *AuthService) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		authService: authService,
	}
}

func (a *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := sharedContext.GetUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	handler.HTML(c, http.StatusOK, LoginView, gin.H{
		"Title":    "로그인",
		"Redirect": SafeRedirect(c.Query("redirect"), ""),
	})
}

func (a *AuthHandler) SignupPage(c *gin.Context) {
	if _, ok := sharedContext.GetUser(c); ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	handler.HTML(c, http.StatusOK, SignupView, gin.H{
		"Title": "회원가입",
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest

	// Parse and validate request
	if !handler.Bind(c, &request) {
		return
	}

	result, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	middleware.SetSessionCookie(c, a.cfg, result.SessionToken)
	handler.RespondSuccess(c, http.StatusOK, result.Response, "로그인되었습니다.")
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var request SignupRequest

	// Parse and validate request
	if !handler.Bind(c, &request) {
		return
	}

	response, err := a.authService.Signup(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	message := "회원가입이 완료되었습니다."
	if a.cfg.Auth.EmailVerification {
		message = "회원가입이 완료되었습니다. 이메일로 발송된 링크를 눌러 인증을 완료해 주세요."
	}
	handler.RespondSuccess(c, http.StatusCreated, response, message)
}

func (a *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, a.cfg)
	handler.RespondSuccess(c, http.StatusOK, gin.H{"redirect": "/"}, "로그아웃되었습니다.")
}

func (a *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := a.authService.VerifyEmail(c.Request.Context(), c.Query("token")); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	if handler.WantsJSON(c) {
		handler.RespondSuccess(c, http.StatusOK, nil, "이메일 인증이 완료되었습니다.")
		return
	}
	handler.HTML(c, http.StatusOK, VerifyEmailView, gin.H{
		"Title": "이메일 인증",
	})
}

func (a *AuthHandler) ResendVerification(c *gin.Context) {
	var request EmailRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := a.authService.ResendVerification(c.Request.Context(), request.Email); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "인증 메일을 다시 보냈습니다.")
}

func (a *AuthHandler) ForgotPasswordPage(c *gin.Context) {
	handler.HTML(c, http.StatusOK, ForgotPasswordView, gin.H{
		"Title": "비밀번호 찾기",
	})
}

// ForgotPassword answers the same way whether or not the address is registered
func (a *AuthHandler) ForgotPassword(c *gin.Context) {
	var request EmailRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := a.authService.ForgotPassword(c.Request.Context(), request.Email); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, nil, "가입된 이메일이라면 비밀번호 재설정 링크가 발송됩니다.")
}

func (a *AuthHandler) ResetPasswordPage(c *gin.Context) {
	handler.HTML(c, http.StatusOK, ResetPasswordView, gin.H{
		"Title": "비밀번호 재설정",
		"Token": c.Query("token"),
	})
}

func (a *AuthHandler) ResetPassword(c *gin.Context) {
	var request ResetPasswordRequest
	if !handler.Bind(c, &request) {
		return
	}

	if err := a.authService.ResetPassword(c.Request.Context(), &request); err != nil {
		handler.RespondDomainError(c, err)
		return
	}
	handler.RespondSuccess(c, http.StatusOK, gin.H{"redirect": "/user/login"}, "비밀번호가 변경되었습니다.")
}
