package view

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
)

const DateLayout = "2006.01.02"

// Funcs is the template function map shared by every view
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate":    formatDate,
		"pageURL":       pageURL,
		"optimizeImage": imagestore.OptimizeURL,
		"join":          strings.Join,
		"hasPrefix":     strings.HasPrefix,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
	}
}

func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	default:
		return ""
	}
}

// pageURL keeps the current filters and replaces the page parameter
func pageURL(basePath string, query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return basePath + "?" + q.Encode()
}
