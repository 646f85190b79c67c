package error

import (
	"errors"
	"net/http"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"` // client message
}

// Envelope wraps every JSON response: { success, data|error, message }
type Envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-001", // METHOD_ARGUMENT_NOT_VALID
		Message: "잘못된 요청입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ERROR-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "ERROR-003", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}

	// PageNotFound is returned for unknown routes
	PageNotFound = ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ERROR-004",
		Message: "요청하신 페이지를 찾을 수 없습니다.",
	}

	// RequestTimeout is answered when a handler failed because the request deadline passed
	RequestTimeout = ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "ERROR-005",
		Message: "요청 처리 시간이 초과되었습니다. 잠시 후 다시 시도해주세요.",
	}

	// Unauthorized indicates the request has no valid session
	Unauthorized = ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "로그인을 해주세요.",
	}

	// Forbidden indicates the session user lacks the required role
	Forbidden = ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-001",
		Message: "접근 권한이 없습니다.",
	}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}

// Resolve is ResolveDomainError with InternalServerError as the fallback
func Resolve(err error) ErrorResponse {
	if resp, ok := ResolveDomainError(err); ok {
		return resp
	}
	return InternalServerError
}

// Success builds a successful envelope
func Success(data any, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Failure builds a failed envelope from an error response
func Failure(resp ErrorResponse) Envelope {
	return Envelope{Success: false, Error: &resp, Message: resp.Message}
}
