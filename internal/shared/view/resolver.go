package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
)

var ErrViewNotFound = errors.New("view: template not found")

const (
	adminPrefix  = "admin/"
	adminLayout  = "admin_layout"
	pagesDir     = "pages"
	partialsGlob = "partials/*.html"
	layoutFile   = "layouts/admin.html"
)

type page struct {
	tmpl  *template.Template
	entry string
	css   []string
}

// Resolver renders page templates. Views under admin/ are wrapped in the admin layout;
// all other pages are complete documents that include the shared partials themselves.
type Resolver struct {
	pages map[string]page
}

// NewResolver parses every template under pages/ in templates; static is consulted
// once per view for a matching stylesheet (css/<view>.css).
func NewResolver(templates fs.FS, static fs.FS) (*Resolver, error) {
	r := &Resolver{pages: make(map[string]page)}

	base, err := template.New("").Funcs(Funcs()).ParseFS(templates, partialsGlob)
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	adminBase, err := template.Must(base.Clone()).ParseFS(templates, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse admin layout: %w", err)
	}

	err = fs.WalkDir(templates, pagesDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		name := strings.TrimSuffix(strings.TrimPrefix(p, pagesDir+"/"), ".html")
		isAdmin := IsAdminView(name)

		set := base
		entry := path.Base(p)
		if isAdmin {
			set = adminBase
			entry = adminLayout
		}

		clone, err := set.Clone()
		if err != nil {
			return err
		}
		tmpl, err := clone.ParseFS(templates, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}

		r.pages[name] = page{tmpl: tmpl, entry: entry, css: stylesheets(static, name)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// IsAdminView reports whether the view is rendered inside the admin layout
func IsAdminView(name string) bool {
	return strings.HasPrefix(name, adminPrefix)
}

// stylesheets lists the area stylesheet plus the view's own one when it exists
func stylesheets(static fs.FS, name string) []string {
	css := []string{"/css/common.css"}
	if IsAdminView(name) {
		css = append(css, "/css/admin/common.css")
	}

	if static != nil {
		if _, err := fs.Stat(static, "css/"+name+".css"); err == nil {
			css = append(css, "/css/"+name+".css")
		}
	}
	return css
}

// Has reports whether a view with the given name was parsed
func (r *Resolver) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// CSS returns the stylesheet paths injected for a view
func (r *Resolver) CSS(name string) []string {
	return r.pages[name].css
}

// Render executes the view into w. Output is buffered so a failing template writes nothing.
func (r *Resolver) Render(w io.Writer, name string, data map[string]any) error {
	p, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}

	bag := make(map[string]any, len(data)+3)
	for k, v := range data {
		bag[k] = v
	}
	bag["View"] = name
	bag["CSS"] = p.css
	bag["IsAdminView"] = IsAdminView(name)

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, p.entry, bag); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
