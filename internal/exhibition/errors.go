package exhibition

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	exhibitionNotFound = "EXHIBITION_NOT_FOUND" // errInfo
	invalidPeriod      = "EXHIBITION_INVALID_PERIOD"
	invalidDate        = "EXHIBITION_INVALID_DATE"
	titleRequired      = "EXHIBITION_TITLE_REQUIRED"
)

var (
	ErrExhibitionNotFound = sharedError.NewDomainError(exhibitionNotFound)
	ErrInvalidPeriod      = sharedError.NewDomainError(invalidPeriod)
	ErrInvalidDate        = sharedError.NewDomainError(invalidDate)
	ErrTitleRequired      = sharedError.NewDomainError(titleRequired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(exhibitionNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "EXHIBITION-001",
		Message: "전시를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidPeriod, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EXHIBITION-002",
		Message: "종료일은 시작일과 같거나 이후여야 합니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidDate, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EXHIBITION-003",
		Message: "날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)",
	})

	sharedError.RegisterDomainErrorResponse(titleRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "EXHIBITION-004",
		Message: "전시 제목을 입력해 주세요.",
	})
}
