package notice

import (
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
)

const (
	unknownAuthor = "관리자"
	previewLength = 120
)

type NoticeResponse struct {
	ID          uint32    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsImportant bool      `json:"isImportant"`
	Views       int       `json:"views"`
	AuthorID    *uint32   `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewNoticeResponse(n *model.Notice) NoticeResponse {
	resp := NoticeResponse{
		ID:          n.ID,
		Title:       n.Title,
		Content:     n.Content,
		IsImportant: n.IsImportant,
		Views:       n.Views,
		AuthorID:    n.AuthorID,
		AuthorName:  unknownAuthor,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Author != nil {
		resp.AuthorName = n.Author.Name
	}
	return resp
}

// Preview is the first line of the content, cut to previewLength runes
func (n NoticeResponse) Preview() string {
	text := strings.TrimSpace(n.Content)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "…"
}

// Paragraphs splits the content on blank lines for the detail page
func (n NoticeResponse) Paragraphs() []string {
	var paragraphs []string
	for _, p := range strings.Split(strings.ReplaceAll(n.Content, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

type NoticeListResponse struct {
	Items      []NoticeResponse      `json:"items"`
	Pagination pagination.Pagination `json:"pagination"`
}

type NoticeRequest struct {
	Title       string `json:"title" form:"title" binding:"required,notblank,max=200"`
	Content     string `json:"content" form:"content" binding:"required,notblank,max=20000"`
	IsImportant bool   `json:"isImportant" form:"isImportant"`
}

func (r *NoticeRequest) blank() bool {
	return strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Content) == ""
}

type ListQuery struct {
	Keyword   string `form:"keyword" binding:"max=100"`
	Important string `form:"important" binding:"omitempty,oneof=true false"`
}

func (q ListQuery) Filter() ListFilter {
	filter := ListFilter{Keyword: strings.TrimSpace(q.Keyword)}
	if q.Important != "" {
		important := q.Important == "true"
		filter.IsImportant = &important
	}
	return filter
}
