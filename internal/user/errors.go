package user

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	userNotFound          = "USER_NOT_FOUND"            // errInfo
	emailAlreadyExists    = "USER_EMAIL_ALREADY_EXISTS" // errInfo
	usernameAlreadyExists = "USER_USERNAME_ALREADY_EXISTS"
	cannotDeleteSelf      = "USER_CANNOT_DELETE_SELF"
	cannotDemoteSelf      = "USER_CANNOT_DEMOTE_SELF"
)

var (
	ErrUserNotFound          = sharedError.NewDomainError(userNotFound)
	ErrEmailAlreadyExists    = sharedError.NewDomainError(emailAlreadyExists)
	ErrUsernameAlreadyExists = sharedError.NewDomainError(usernameAlreadyExists)
	ErrCannotDeleteSelf      = sharedError.NewDomainError(cannotDeleteSelf)
	ErrCannotDemoteSelf      = sharedError.NewDomainError(cannotDemoteSelf)
)

func init() {
	sharedError.RegisterDomainErrorResponse(userNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "USER-001",
		Message: "사용자를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(emailAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "USER-002",
		Message: "이미 사용 중인 이메일입니다.",
	})

	sharedError.RegisterDomainErrorResponse(usernameAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "USER-003",
		Message: "이미 사용 중인 아이디입니다.",
	})

	sharedError.RegisterDomainErrorResponse(cannotDeleteSelf, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "USER-004",
		Message: "자기 자신의 계정은 관리 화면에서 삭제할 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(cannotDemoteSelf, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "USER-005",
		Message: "자기 자신의 관리자 권한이나 상태는 변경할 수 없습니다.",
	})
}
