package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/token"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
	LoginPath           = "/user/login"
)

var (
	errNotAuthenticated = errors.New("session: not authenticated")
	errRoleDenied       = errors.New("session: role not allowed")
)

// Session restores the session user from the session cookie (or a Bearer header for API
// clients). It never rejects a request; route guards decide what anonymous users may do.
func Session(cfg *config.Config, tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, fromCookie := extractToken(c, cfg.Session.CookieName)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := tokenManager.ValidateToken(raw)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("세션 토큰 검증 실패",
				"step", "validate_token",
				"error", err.Error(),
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path,
			)
			if fromCookie {
				ClearSessionCookie(c, cfg)
			}
			c.Next()
			return
		}

		userID, err := claims.ID()
		if err != nil {
			c.Next()
			return
		}

		sharedContext.SetUser(c, &sharedContext.SessionUser{
			ID:    userID,
			Email: claims.Email,
			Role:  model.Role(claims.Role),
		})
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), "user_id", userID))
		c.Next()
	}
}

// IsAuthenticated rejects anonymous requests. Page requests are redirected to the login page.
func IsAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := sharedContext.GetUser(c); ok {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet && !handler.WantsJSON(c) {
			target := LoginPath + "?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		handler.RespondError(c, errNotAuthenticated, sharedError.Unauthorized)
		c.Abort()
	}
}

// HasRole allows only session users holding one of roles
func HasRole(roles ...model.Role) gin.HandlerFunc {
	authenticated := IsAuthenticated()

	return func(c *gin.Context) {
		user, ok := sharedContext.GetUser(c)
		if !ok {
			authenticated(c)
			return
		}

		if !user.HasRole(roles...) {
			logger.FromContext(c.Request.Context()).Warn("권한 없는 접근",
				"role", user.Role,
				"path", c.Request.URL.Path,
			)
			handler.RespondError(c, errRoleDenied, sharedError.Forbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func IsAdmin() gin.HandlerFunc {
	return HasRole(model.RoleAdmin)
}

// SetSessionCookie stores a freshly issued session token
func SetSessionCookie(c *gin.Context, cfg *config.Config, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, value, int(cfg.Session.MaxAge.Seconds()), "/", "", cfg.Session.Secure, true)
}

func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", cfg.Session.Secure, true)
}

func extractToken(c *gin.Context, cookieName string) (string, bool) {
	if value, err := c.Cookie(cookieName); err == nil && value != "" {
		return value, true
	}

	authHeader := c.GetHeader(AuthorizationHeader)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], BearerScheme) {
		return strings.TrimSpace(parts[1]), false
	}
	return "", false
}
