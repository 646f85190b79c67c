package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

const healthTimeout = 5 * time.Second

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

// Health checks database connectivity and reports which backends are configured
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	service := gin.H{
		"name":        h.cfg.App.Name,
		"environment": h.cfg.App.Env,
	}
	components := gin.H{
		"storage":   h.cfg.Storage.Driver,
		"tokens":    backend(h.cfg.Redis.URL != "", "redis", "database"),
		"mail":      backend(h.cfg.IsMailConfigured(), "smtp", "log"),
		"events":    backend(len(h.cfg.Kafka.Brokers) > 0, "kafka", "log"),
		"scheduler": h.cfg.Scheduler.Enabled,
	}

	start := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Error("Health check 실패", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": service,
			"checks": gin.H{
				"database": gin.H{
					"status": "down",
					"driver": h.cfg.Database.Driver,
					"error":  err.Error(),
				},
			},
			"components": components,
		})
		return
	}

	service["port"] = h.cfg.App.Port
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": service,
		"checks": gin.H{
			"database": gin.H{
				"status":     "up",
				"driver":     h.cfg.Database.Driver,
				"latency_ms": time.Since(start).Milliseconds(),
			},
		},
		"components": components,
	})
}

func backend(enabled bool, on, off string) string {
	if enabled {
		return on
	}
	return off
}
