package view

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

var htmlContentType = []string{"text/html; charset=utf-8"}

// Instance lets the resolver serve as gin's HTMLRender, so handlers call c.HTML(status, view, data)
func (r *Resolver) Instance(name string, data any) render.Render {
	return viewRender{resolver: r, name: name, data: toMap(data)}
}

func toMap(data any) map[string]any {
	switch d := data.(type) {
	case gin.H:
		return d
	case map[string]any:
		return d
	case nil:
		return map[string]any{}
	default:
		return map[string]any{"Data": d}
	}
}

type viewRender struct {
	resolver *Resolver
	name     string
	data     map[string]any
}

func (v viewRender) Render(w http.ResponseWriter) error {
	v.WriteContentType(w)
	return v.resolver.Render(w, v.name, v.data)
}

func (v viewRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = htmlContentType
	}
}
