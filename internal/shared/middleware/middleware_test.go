package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whoami(c *gin.Context) {
	user, ok := sharedContext.GetUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
}

func sessionRouter(t *testing.T, manager token.Manager) *gin.Engine {
	t.Helper()

	cfg := testutil.NewTestConfig()
	router := testutil.SetupTestRouter(t)
	router.Use(middleware.Session(cfg, manager))
	router.GET("/whoami", whoami)
	router.GET("/members", middleware.IsAuthenticated(), whoami)
	router.POST("/admin", middleware.IsAdmin(), whoami)
	return router
}

func TestSession_BearerHeader(t *testing.T) {
	// Given: a token manager that accepts one token
	manager := testutil.NewMockTokenManager()
	manager.ValidateTokenFunc = func(raw string) (*token.Claims, error) {
		if raw != "good" {
			return nil, token.ErrInvalidToken
		}
		return &token.Claims{UserID: "7", Email: "member@skku.edu", Role: string(model.RoleSkkuMember)}, nil
	}
	router := sessionRouter(t, manager)

	// When: an API client sends it as a Bearer header
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/whoami",
		Headers: map[string]string{"Authorization": "Bearer good"},
	})

	// Then: the session user is restored
	require.Equal(t, http.StatusOK, recorder.Code)
	var body struct {
		ID   uint32 `json:"id"`
		Role string `json:"role"`
	}
	testutil.ParseResponse(t, recorder, &body)
	assert.Equal(t, uint32(7), body.ID)
	assert.Equal(t, string(model.RoleSkkuMember), body.Role)
	assert.Empty(t, recorder.Header().Get("Set-Cookie"))
}

func TestSession_InvalidTokens(t *testing.T) {
	manager := testutil.NewMockTokenManager()
	manager.ValidateTokenFunc = func(raw string) (*token.Claims, error) {
		if raw == "bad-claims" {
			return &token.Claims{UserID: "not-a-number"}, nil
		}
		return nil, token.ErrInvalidToken
	}
	router := sessionRouter(t, manager)
	cfg := testutil.NewTestConfig()

	testCases := []struct {
		name        string
		cookie      string
		header      string
		clearCookie bool
	}{
		{name: "expired cookie", cookie: "expired", clearCookie: true},
		{name: "invalid bearer", header: "Bearer nope"},
		{name: "claims without a user id", cookie: "bad-claims"},
		{name: "unknown scheme", header: "Basic abc"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.TestRequest{Method: http.MethodGet, URL: "/whoami", Headers: map[string]string{}}
			if tc.cookie != "" {
				req.Cookies = []*http.Cookie{{Name: cfg.Session.CookieName, Value: tc.cookie}}
			}
			if tc.header != "" {
				req.Headers["Authorization"] = tc.header
			}

			recorder := testutil.ExecuteRequest(t, router, req)

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"anonymous":true`)
			if tc.clearCookie {
				assert.Contains(t, recorder.Header().Get("Set-Cookie"), "Max-Age=0")
			} else {
				assert.Empty(t, recorder.Header().Get("Set-Cookie"))
			}
		})
	}
}

func TestGuards(t *testing.T) {
	cfg := testutil.NewTestConfig()
	router := sessionRouter(t, token.NewJWTManager(cfg))
	member := &model.User{ID: 3, Email: "member@skku.edu", Role: model.RoleSkkuMember}
	admin := &model.User{ID: 1, Email: "admin@skku.edu", Role: model.RoleAdmin}

	testCases := []struct {
		name     string
		method   string
		url      string
		user     *model.User
		headers  map[string]string
		status   int
		code     string
		location string
	}{
		{name: "anonymous page is redirected", method: http.MethodGet, url: "/members?tab=1", headers: testutil.AcceptHTML(), status: http.StatusFound, location: "/user/login?redirect=%2Fmembers%3Ftab%3D1"},
		{name: "anonymous api call", method: http.MethodGet, url: "/members", status: http.StatusUnauthorized, code: sharedError.Unauthorized.Code},
		{name: "member passes authentication", method: http.MethodGet, url: "/members", user: member, status: http.StatusOK},
		{name: "anonymous post to admin", method: http.MethodPost, url: "/admin", status: http.StatusUnauthorized, code: sharedError.Unauthorized.Code},
		{name: "member is not admin", method: http.MethodPost, url: "/admin", user: member, status: http.StatusForbidden, code: sharedError.Forbidden.Code},
		{name: "admin", method: http.MethodPost, url: "/admin", user: admin, status: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.TestRequest{Method: tc.method, URL: tc.url, Headers: tc.headers}
			if tc.user != nil {
				req.Cookies = []*http.Cookie{testutil.SessionCookie(t, cfg, tc.user)}
			}

			recorder := testutil.ExecuteRequest(t, router, req)

			assert.Equal(t, tc.status, recorder.Code)
			if tc.location != "" {
				assert.Equal(t, tc.location, recorder.Header().Get("Location"))
			}
			if tc.code != "" {
				envelope := testutil.ParseEnvelope(t, recorder, nil)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tc.code, envelope.Error.Code)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := testutil.SetupTestRouter(t)
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/",
		Headers: map[string]string{middleware.RequestIDHeader: "trace-123"},
	})
	assert.Equal(t, "trace-123", recorder.Body.String())
	assert.Equal(t, "trace-123", recorder.Header().Get(middleware.RequestIDHeader))

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/",
		Headers: map[string]string{middleware.RequestIDHeader: strings.Repeat("x", 100)},
	})
	assert.Len(t, recorder.Body.String(), 36, "oversized ids are replaced with a uuid")
}

func TestErrorHandler(t *testing.T) {
	router := testutil.SetupTestRouter(t)
	router.Use(middleware.ErrorHandler())
	router.GET("/unhandled", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	router.GET("/slow", middleware.Timeout(10*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
		_ = c.Error(c.Request.Context().Err())
	})
	router.GET("/answered", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusAccepted, "ok")
	})

	testCases := []struct {
		url    string
		status int
		code   string
	}{
		{url: "/unhandled", status: http.StatusInternalServerError, code: sharedError.InternalServerError.Code},
		{url: "/slow", status: http.StatusServiceUnavailable, code: sharedError.RequestTimeout.Code},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: tc.url})

			assert.Equal(t, tc.status, recorder.Code)
			envelope := testutil.ParseEnvelope(t, recorder, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tc.code, envelope.Error.Code)
		})
	}

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/answered"})
	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestLoggerMiddleware(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger.SetupWithWriter("production", &buf)
	buf.Reset()

	router := testutil.SetupTestRouter(t)
	router.Use(middleware.RequestID(), middleware.LoggerMiddleware("/css"))
	router.GET("/css/site.css", func(c *gin.Context) { c.String(http.StatusOK, "body{}") })
	router.GET("/missing.css", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/page", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info("handler log")
		c.Status(http.StatusOK)
	})

	headers := map[string]string{middleware.RequestIDHeader: "req-1"}
	testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/css/site.css", Headers: headers})
	assert.Empty(t, buf.String(), "successful static responses are not logged")

	testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/page?q=1", Headers: headers})
	out := buf.String()
	assert.Contains(t, out, `"msg":"handler log"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"query":"q=1"`)

	buf.Reset()
	testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/missing.css", Headers: headers})
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
