package imagestore

import (
	"net/url"
	"strconv"
	"strings"
)

// OptimizeURL adds resize/format query parameters understood by the image CDN.
// Relative URLs (local storage) are returned untouched.
func OptimizeURL(raw string, width int) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	if width > 0 {
		q.Set("w", strconv.Itoa(width))
	}
	if q.Get("q") == "" {
		q.Set("q", "80")
	}
	if q.Get("fm") == "" {
		q.Set("fm", "webp")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
