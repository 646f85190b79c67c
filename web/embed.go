// Package web embeds the page templates and static assets served by the gallery.
package web

import (
	"embed"
	"io/fs"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/view"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Templates is rooted at templates/ (partials/, layouts/, pages/)
func Templates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static is rooted at static/ (css/, js/, images/)
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func NewResolver() (*view.Resolver, error) {
	return view.NewResolver(Templates(), Static())
}
