package notice

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	noticeNotFound = "NOTICE_NOT_FOUND" // errInfo
	titleRequired  = "NOTICE_TITLE_REQUIRED"
)

var (
	ErrNoticeNotFound = sharedError.NewDomainError(noticeNotFound)
	ErrTitleRequired  = sharedError.NewDomainError(titleRequired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(noticeNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "NOTICE-001",
		Message: "공지사항을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(titleRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "NOTICE-002",
		Message: "공지사항 제목과 내용을 입력해 주세요.",
	})
}
