package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/handler"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

var errNoRoute = errors.New("no route")

// ErrorHandler answers errors that handlers attached with c.Error but never responded to
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		resp := sharedError.Resolve(err)
		if IsTimeout(c) {
			resp = sharedError.RequestTimeout
		}
		logger.FromContext(c.Request.Context()).Error("처리되지 않은 에러",
			"error", err.Error(),
			"code", resp.Code,
		)
		handler.RespondError(c, err, resp)
	}
}

// NotFound is the NoRoute handler
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		handler.RespondError(c, errNoRoute, sharedError.PageNotFound)
	}
}
