package bootstrap

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
)

// Bootstrap handles common server setup
type Bootstrap struct {
	cfg *config.Config
}

// NewBootstrap creates a new bootstrap instance
func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates a gin engine with the common middleware and the page renderer.
// staticPrefixes are passed to the request logger so asset hits stay out of the log.
func (b *Bootstrap) SetupEngine(views render.HTMLRender, staticPrefixes ...string) *gin.Engine {
	// Set Gin mode based on environment
	switch {
	case b.cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
	case b.cfg.App.Env == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	// Create engine without default middleware
	engine := gin.New()
	engine.HTMLRender = views
	engine.MaxMultipartMemory = b.cfg.Server.MaxUploadSize
	engine.RedirectTrailingSlash = true
	engine.HandleMethodNotAllowed = false

	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.LoggerMiddleware(staticPrefixes...))
	engine.Use(middleware.Timeout(middleware.DefaultTimeout)) // 30 second global timeout
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.ErrorHandler())

	return engine
}

// recoveryHandler answers panics with the 500 page or envelope
func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	err := fmt.Errorf("panic: %v", recovered)

	logger.FromContext(c.Request.Context()).Error("Panic Recovered",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", middleware.GetRequestID(c),
	)
	if c.Writer.Written() {
		c.Abort()
		return
	}

	handler.RespondError(c, err, sharedError.InternalServerError)
	c.Abort()
}
