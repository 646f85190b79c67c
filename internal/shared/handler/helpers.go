package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/validator"
)

const ErrorView = "common/error"

var (
	errNoSession = errors.New("handler: no session user")
	errInvalidID = errors.New("handler: invalid path id")
)

// WantsJSON reports whether the client asked for JSON instead of an HTML page
func WantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, gin.MIMEJSON) && !strings.Contains(accept, gin.MIMEHTML)
}

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req SignupRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bindWith(c, obj, c.ShouldBindJSON)
}

// Bind is BindJSON for endpoints that also accept form posts (multipart uploads).
// Toggle endpoints driven by fetch use BindJSON so an empty form body cannot reset a flag.
func Bind(c *gin.Context, obj any) bool {
	return bindWith(c, obj, c.ShouldBind)
}

// BindQuery binds and validates query string filters
func BindQuery(c *gin.Context, obj any) bool {
	return bindWith(c, obj, c.ShouldBindQuery)
}

func bindWith(c *gin.Context, obj any, bind func(any) error) bool {
	if err := bind(obj); err != nil {
		// Add error to context for middleware logging
		_ = c.Error(err)

		// validation errors always answer as JSON: forms are submitted with fetch
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(resp.Status, sharedError.Failure(*resp))
		} else {
			c.JSON(sharedError.InvalidRequest.Status, sharedError.Failure(sharedError.InvalidRequest))
		}
		return false
	}
	return true
}

// ParamID reads a numeric path parameter, answering 404 when it is malformed
func ParamID(c *gin.Context, name string) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		RespondError(c, errInvalidID, sharedError.PageNotFound)
		return 0, false
	}
	return uint32(id), true
}

// OptionalFile returns the uploaded file field, nil when the request has none.
// A malformed multipart body answers 400.
func OptionalFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(field)
	if err == nil {
		return file, true
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}

	RespondError(c, err, sharedError.InvalidRequest)
	return nil, false
}

// RequireUser returns the session user; when absent a 401 has already been sent
func RequireUser(c *gin.Context) (*sharedContext.SessionUser, bool) {
	user, ok := sharedContext.GetUser(c)
	if !ok {
		RespondError(c, errNoSession, sharedError.Unauthorized)
		c.Abort()
		return nil, false
	}
	return user, true
}

// HTML renders a view with the request-wide values every page needs
func HTML(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := sharedContext.GetUser(c); ok {
		data["CurrentUser"] = user
	}
	data["Path"] = c.Request.URL.Path
	data["Query"] = c.Request.URL.Query()

	c.HTML(status, view, data)
}

// RespondSuccess sends the success envelope
func RespondSuccess(c *gin.Context, status int, data any, message string) {
	c.JSON(status, sharedError.Success(data, message))
}

// RespondError sends an error response with logging: a JSON envelope or the error page,
// depending on the Accept header
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	_ = c.Error(err)

	if WantsJSON(c) || c.Request.Method != http.MethodGet {
		c.JSON(errResp.Status, sharedError.Failure(errResp))
		return
	}

	HTML(c, errResp.Status, ErrorView, gin.H{
		"Title": "오류",
		"Error": errResp,
	})
}

// RespondDomainError resolves err through the domain error registry
func RespondDomainError(c *gin.Context, err error) {
	RespondError(c, err, sharedError.Resolve(err))
}
