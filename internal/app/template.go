package app

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/render"
)

// TemplateRenderer implements gin's render.HTMLRender on top of a
// layouts/partials/pages directory tree:
//
//	templates/
//	  layouts/   page skeletons, e.g. base.html defining "base"
//	  partials/  shared fragments, e.g. nav.html defining "nav"
//	  ...        page templates, addressed by their path ("crm/index.html")
//
// Every page is compiled against its own clone of the layout+partial set, so
// a page's {{ define "content" }} overrides the layout's block without
// leaking into other pages. Pages invoke the layout with
// {{ template "base" . }}.
//
// In debug mode the whole tree is re-read per request for hot reload; in
// release mode it is compiled once at startup.
type TemplateRenderer struct {
	fs    fs.FS
	pages map[string]*template.Template // release mode cache
	debug bool
}

var _ render.HTMLRender = (*TemplateRenderer)(nil)

// NewTemplateRenderer compiles the template tree rooted at fsys. In release
// mode a parse failure anywhere in the tree is reported here, before the
// server starts.
func NewTemplateRenderer(fsys fs.FS, debug bool) (*TemplateRenderer, error) {
	r := &TemplateRenderer{fs: fsys, debug: debug}

	if !debug {
		pages, err := r.compile()
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		r.pages = pages
	}

	return r, nil
}

// Instance returns the render for one page, addressed by its path relative
// to templates/ (e.g. "leave/index.html").
func (r *TemplateRenderer) Instance(name string, data any) render.Render {
	pages := r.pages
	if r.debug {
		var err error
		pages, err = r.compile()
		if err != nil {
			return &pageRender{err: err}
		}
	}

	return &pageRender{tmpl: pages[name], name: name, data: data}
}

// compile builds one template set per page: layouts and partials form a base
// that each page is cloned onto.
func (r *TemplateRenderer) compile() (map[string]*template.Template, error) {
	base := template.New("")
	for _, pattern := range []string{"templates/layouts/*.html", "templates/partials/*.html"} {
		files, err := fs.Glob(r.fs, pattern)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			src, err := fs.ReadFile(r.fs, f)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f, err)
			}
			if _, err := base.New(f).Parse(string(src)); err != nil {
				return nil, fmt.Errorf("parse %s: %w", f, err)
			}
		}
	}

	paths, err := r.pagePaths()
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(paths))
	for _, p := range paths {
		set, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", p, err)
		}
		src, err := fs.ReadFile(r.fs, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		name := strings.TrimPrefix(p, "templates/")
		if _, err := set.New(name).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		pages[name] = set
	}

	return pages, nil
}

// pagePaths lists every .html file under templates/ outside layouts/ and
// partials/.
func (r *TemplateRenderer) pagePaths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(r.fs, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		rel := strings.TrimPrefix(path, "templates/")
		if strings.HasPrefix(rel, "layouts/") || strings.HasPrefix(rel, "partials/") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// pageRender executes a single compiled page. A missing page or a parse
// failure surfaces as a render error, which gin turns into a 500.
type pageRender struct {
	tmpl *template.Template
	name string
	data any
	err  error
}

func (p *pageRender) Render(w http.ResponseWriter) error {
	p.WriteContentType(w)
	if p.err != nil {
		return p.err
	}
	if p.tmpl == nil {
		return fmt.Errorf("template %q not found", p.name)
	}
	return p.tmpl.ExecuteTemplate(w, p.name, p.data)
}

func (p *pageRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = []string{"text/html; charset=utf-8"}
	}
}
