package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/validator"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/view"
	"github.com/skku-gallery/gallery/go-web-server/web"
)

var (
	resolverOnce sync.Once
	resolver     *view.Resolver
	resolverErr  error
)

// Views returns the resolver over the embedded templates, parsed once per test binary
func Views(t *testing.T) *view.Resolver {
	t.Helper()

	resolverOnce.Do(func() {
		resolver, resolverErr = web.NewResolver()
	})
	if resolverErr != nil {
		t.Fatalf("Failed to parse templates: %v", resolverErr)
	}
	return resolver
}

// SetupTestRouter creates a test Gin router without middleware
func SetupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Register custom validators for testing
	_ = validator.RegisterAll()

	engine := gin.New()
	engine.HTMLRender = Views(t)
	return engine
}

// TestRequest describes one request; JSON is sent and accepted unless Headers say otherwise
type TestRequest struct {
	Method  string
	URL     string
	Body    any
	Headers map[string]string
	Cookies []*http.Cookie
}

// ExecuteRequest executes a test HTTP request and returns the response
func ExecuteRequest(t *testing.T, router http.Handler, req TestRequest) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.URL, bodyReader)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	for _, c := range req.Cookies {
		httpReq.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httpReq)

	return recorder
}

// AcceptHTML is the header set of a browser navigation
func AcceptHTML() map[string]string {
	return map[string]string{"Accept": "text/html,application/xhtml+xml"}
}

// ParseResponse parses the JSON response body into the given struct
func ParseResponse(t *testing.T, recorder *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.Unmarshal(recorder.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to parse response body: %v", err)
	}
}

// Envelope is the decoded form of the JSON response envelope
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Status  int    `json:"status"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseEnvelope decodes the envelope and, when out is non-nil, its data field
func ParseEnvelope(t *testing.T, recorder *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()

	var env Envelope
	ParseResponse(t, recorder, &env)
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("Failed to parse envelope data: %v", err)
		}
	}
	return env
}
