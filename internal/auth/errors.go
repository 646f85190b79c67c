package auth

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	incorrectCredentials = "INCORRECT_CREDENTIALS" // errInfo
	skkuEmailRequired    = "SKKU_EMAIL_REQUIRED"   // errInfo
	accountUnverified    = "ACCOUNT_UNVERIFIED"
	accountPending       = "ACCOUNT_PENDING"
	accountInactive      = "ACCOUNT_INACTIVE"
	accountBlocked       = "ACCOUNT_BLOCKED"
)

var (
	ErrIncorrectCredentials = sharedError.NewDomainError(incorrectCredentials)
	ErrSkkuEmailRequired    = sharedError.NewDomainError(skkuEmailRequired)
	ErrAccountUnverified    = sharedError.NewDomainError(accountUnverified)
	ErrAccountPending       = sharedError.NewDomainError(accountPending)
	ErrAccountInactive      = sharedError.NewDomainError(accountInactive)
	ErrAccountBlocked       = sharedError.NewDomainError(accountBlocked)
)

func init() {
	sharedError.RegisterDomainErrorResponse(incorrectCredentials, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "아이디(이메일) 또는 비밀번호가 일치하지 않습니다.",
	})

	sharedError.RegisterDomainErrorResponse(skkuEmailRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-004",
		Message: "성균관대학교 회원은 학교 이메일(@skku.edu, @g.skku.edu)로 가입해야 합니다.",
	})

	sharedError.RegisterDomainErrorResponse(accountUnverified, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-005",
		Message: "이메일 인증 후 로그인할 수 있습니다.",
	})

	sharedError.RegisterDomainErrorResponse(accountPending, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-006",
		Message: "관리자 승인 대기 중인 계정입니다.",
	})

	sharedError.RegisterDomainErrorResponse(accountInactive, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-007",
		Message: "비활성화된 계정입니다. 관리자에게 문의해 주세요.",
	})

	sharedError.RegisterDomainErrorResponse(accountBlocked, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-008",
		Message: "이용이 제한된 계정입니다.",
	})
}
