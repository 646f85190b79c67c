package artwork

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	artworkNotFound    = "ARTWORK_NOT_FOUND" // errInfo
	artworkForbidden   = "ARTWORK_FORBIDDEN" // errInfo
	exhibitionNotFound = "ARTWORK_EXHIBITION_NOT_FOUND"
	titleRequired      = "ARTWORK_TITLE_REQUIRED"
)

var (
	ErrArtworkNotFound    = sharedError.NewDomainError(artworkNotFound)
	ErrArtworkForbidden   = sharedError.NewDomainError(artworkForbidden)
	ErrExhibitionNotFound = sharedError.NewDomainError(exhibitionNotFound)
	ErrTitleRequired      = sharedError.NewDomainError(titleRequired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(artworkNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "ARTWORK-001",
		Message: "작품을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(artworkForbidden, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "ARTWORK-002",
		Message: "작품을 수정하거나 삭제할 권한이 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(exhibitionNotFound, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ARTWORK-003",
		Message: "선택한 전시를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(titleRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "ARTWORK-004",
		Message: "작품 제목을 입력해 주세요.",
	})
}
