package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit            = 10
	MaxLimit                = 100
	DefaultDisplayPageCount = 5
)

// Pagination describes one page of a listing and the window of page links around it
type Pagination struct {
	TotalItems       int64 `json:"totalItems"`
	Page             int   `json:"page"`
	Limit            int   `json:"limit"`
	DisplayPageCount int   `json:"-"`
	TotalPages       int   `json:"totalPages"`
	StartPage        int   `json:"startPage"`
	EndPage          int   `json:"endPage"`
	HasPrev          bool  `json:"hasPrev"`
	HasNext          bool  `json:"hasNext"`

	ShowStartEllipsis bool `json:"showStartEllipsis"`
	ShowEndEllipsis   bool `json:"showEndEllipsis"`
}

// New computes the page window. The requested page is clamped into [1, max(totalPages, 1)].
func New(totalItems int64, page, limit, displayPageCount int) Pagination {
	if totalItems < 0 {
		totalItems = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if displayPageCount <= 0 {
		displayPageCount = DefaultDisplayPageCount
	}

	totalPages := int((totalItems + int64(limit) - 1) / int64(limit))

	if page < 1 {
		page = 1
	}
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	startPage := max(1, min(page-displayPageCount/2, totalPages-displayPageCount+1))
	endPage := min(startPage+displayPageCount-1, totalPages)

	return Pagination{
		TotalItems:        totalItems,
		Page:              page,
		Limit:             limit,
		DisplayPageCount:  displayPageCount,
		TotalPages:        totalPages,
		StartPage:         startPage,
		EndPage:           endPage,
		HasPrev:           page > 1,
		HasNext:           page < totalPages,
		ShowStartEllipsis: startPage > 1,
		ShowEndEllipsis:   endPage < totalPages,
	}
}

// PageNumbers returns the inclusive sequence [StartPage..EndPage], empty when there are no pages
func (p Pagination) PageNumbers() []int {
	if p.EndPage < p.StartPage {
		return []int{}
	}

	pages := make([]int, 0, p.EndPage-p.StartPage+1)
	for i := p.StartPage; i <= p.EndPage; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Offset is the number of rows to skip for the current page
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) PrevPage() int {
	if p.HasPrev {
		return p.Page - 1
	}
	return p.Page
}

func (p Pagination) NextPage() int {
	if p.HasNext {
		return p.Page + 1
	}
	return p.Page
}

// Query is the page/limit pair requested by a client
type Query struct {
	Page  int
	Limit int
}

// ParseQuery extracts page and limit from the request, falling back to defaultLimit
func ParseQuery(c *gin.Context, defaultLimit int) Query {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = defaultLimit
	}

	return Query{Page: page, Limit: limit}
}
