package bootstrap_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/bootstrap"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupEngine_RecoversPanics(t *testing.T) {
	// Given: an engine with the common middleware
	cfg := testutil.NewTestConfig()
	engine := bootstrap.NewBootstrap(cfg).SetupEngine(testutil.Views(t), "/css")
	engine.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	// When: a handler panics on an API request
	recorder := testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: "/panic"})

	// Then: the client gets the 500 envelope and the request id
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get(middleware.RequestIDHeader))
	envelope := testutil.ParseEnvelope(t, recorder, nil)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, sharedError.InternalServerError.Code, envelope.Error.Code)

	// and a browser gets the error page
	recorder = testutil.ExecuteRequest(t, engine, testutil.TestRequest{Method: http.MethodGet, URL: "/panic", Headers: testutil.AcceptHTML()})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), sharedError.InternalServerError.Message)
}

func TestSetupEngine_MultipartLimit(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.Server.MaxUploadSize = 4 << 20

	engine := bootstrap.NewBootstrap(cfg).SetupEngine(testutil.Views(t))
	assert.Equal(t, int64(4<<20), engine.MaxMultipartMemory)
}
