package comment

import (
	"net/http"

	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	commentNotFound  = "COMMENT_NOT_FOUND" // errInfo
	commentForbidden = "COMMENT_FORBIDDEN" // errInfo
	artworkNotFound  = "COMMENT_ARTWORK_NOT_FOUND"
	commentEmpty     = "COMMENT_EMPTY"
)

var (
	ErrCommentNotFound  = sharedError.NewDomainError(commentNotFound)
	ErrCommentForbidden = sharedError.NewDomainError(commentForbidden)
	ErrArtworkNotFound  = sharedError.NewDomainError(artworkNotFound)
	ErrCommentEmpty     = sharedError.NewDomainError(commentEmpty)
)

func init() {
	sharedError.RegisterDomainErrorResponse(commentNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "COMMENT-001",
		Message: "댓글을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(commentForbidden, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "COMMENT-002",
		Message: "댓글을 수정하거나 삭제할 권한이 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(artworkNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "COMMENT-003",
		Message: "작품을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(commentEmpty, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMENT-004",
		Message: "댓글 내용을 입력해 주세요.",
	})
}
