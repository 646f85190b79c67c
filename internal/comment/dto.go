package comment

import (
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	sharedContext "github.com/skku-gallery/gallery/go-web-server/internal/shared/context"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const DefaultPageSize = 20

type CommentResponse struct {
	ID         uint32    `json:"id"`
	Content    string    `json:"content"`
	ArtworkID  uint32    `json:"artworkId"`
	AuthorID   uint32    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CanEdit    bool      `json:"canEdit"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewCommentResponse copies the comment; viewer may be nil for anonymous visitors
func NewCommentResponse(c *model.Comment, viewer *sharedContext.SessionUser) CommentResponse {
	authorID := c.AuthorID
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		ArtworkID: c.ArtworkID,
		AuthorID:  c.AuthorID,
		CanEdit:   viewer.CanModify(&authorID),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	} else {
		resp.AuthorName = "탈퇴한 회원"
	}
	return resp
}

// IsEdited reports whether the comment changed after it was written
func (c CommentResponse) IsEdited() bool {
	return c.UpdatedAt.Sub(c.CreatedAt) > time.Second
}

type CommentListResponse struct {
	Items      []CommentResponse     `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

type CommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,min=1,max=1000"`
}
