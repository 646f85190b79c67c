package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/pagination"
	"github.com/stretchr/testify/assert"
)

func TestNew_Window(t *testing.T) {
	testCases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		display    int
		totalPages int
		pages      []int
		hasPrev    bool
		hasNext    bool
		startEll   bool
		endEll     bool
	}{
		{name: "first page", total: 95, page: 1, limit: 10, display: 5, totalPages: 10, pages: []int{1, 2, 3, 4, 5}, hasNext: true, endEll: true},
		{name: "middle page", total: 95, page: 6, limit: 10, display: 5, totalPages: 10, pages: []int{4, 5, 6, 7, 8}, hasPrev: true, hasNext: true, startEll: true, endEll: true},
		{name: "last page", total: 95, page: 10, limit: 10, display: 5, totalPages: 10, pages: []int{6, 7, 8, 9, 10}, hasPrev: true, startEll: true},
		{name: "fewer pages than window", total: 25, page: 2, limit: 10, display: 5, totalPages: 3, pages: []int{1, 2, 3}, hasPrev: true, hasNext: true},
		{name: "exact multiple", total: 30, page: 3, limit: 10, display: 5, totalPages: 3, pages: []int{1, 2, 3}, hasPrev: true},
		{name: "empty", total: 0, page: 1, limit: 10, display: 5, totalPages: 0, pages: []int{}},
		{name: "page beyond total is clamped", total: 25, page: 99, limit: 10, display: 5, totalPages: 3, pages: []int{1, 2, 3}, hasPrev: true},
		{name: "even window", total: 100, page: 5, limit: 10, display: 4, totalPages: 10, pages: []int{3, 4, 5, 6}, hasPrev: true, hasNext: true, startEll: true, endEll: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := pagination.New(tc.total, tc.page, tc.limit, tc.display)

			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.pages, p.PageNumbers())
			assert.Equal(t, tc.hasPrev, p.HasPrev)
			assert.Equal(t, tc.hasNext, p.HasNext)
			assert.Equal(t, tc.startEll, p.ShowStartEllipsis)
			assert.Equal(t, tc.endEll, p.ShowEndEllipsis)
		})
	}
}

func TestNew_Properties(t *testing.T) {
	for total := int64(0); total <= 120; total += 7 {
		for limit := 1; limit <= 12; limit += 3 {
			for display := 1; display <= 7; display += 2 {
				for page := 1; page <= 20; page++ {
					p := pagination.New(total, page, limit, display)

					expectedPages := int((total + int64(limit) - 1) / int64(limit))
					assert.Equal(t, expectedPages, p.TotalPages)

					numbers := p.PageNumbers()
					if p.TotalPages == 0 {
						assert.Empty(t, numbers)
					} else {
						assert.Len(t, numbers, p.EndPage-p.StartPage+1)
						assert.LessOrEqual(t, len(numbers), display)
					}
					for _, n := range numbers {
						assert.GreaterOrEqual(t, n, 1)
						assert.LessOrEqual(t, n, p.TotalPages)
					}

					assert.Equal(t, p.Page > 1, p.HasPrev)
					assert.Equal(t, p.Page < p.TotalPages, p.HasNext)
					assert.GreaterOrEqual(t, p.Offset(), 0)
				}
			}
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	p := pagination.New(50, 0, 0, 0)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, pagination.DefaultLimit, p.Limit)
	assert.Equal(t, pagination.DefaultDisplayPageCount, p.DisplayPageCount)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 2, p.NextPage())
}

func TestParseQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		url   string
		page  int
		limit int
	}{
		{url: "/artwork", page: 1, limit: 12},
		{url: "/artwork?page=3&limit=20", page: 3, limit: 20},
		{url: "/artwork?page=-1&limit=abc", page: 1, limit: 12},
		{url: "/artwork?limit=1000", page: 1, limit: 12},
	}

	for _, tc := range testCases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tc.url, nil)

		q := pagination.ParseQuery(c, 12)
		assert.Equal(t, tc.page, q.Page, tc.url)
		assert.Equal(t, tc.limit, q.Limit, tc.url)
	}
}
