package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/choppi/admin-web/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed page templates, each page cloned from the shared
// layout so blocks do not collide between pages.
type Renderer struct {
	pages map[string]*template.Template
	logg  *logger.Logger
}

var pageNames = []string{"login", "stores", "store_detail", "admin", "error"}

// NewRenderer parses the embedded templates once at startup; a broken template
// is a programming error and fails fast.
func NewRenderer(logg *logger.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New("layout.html").ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return &Renderer{pages: pages, logg: logg}, nil
}

// Render writes a page. The template executes into a buffer first so a render
// failure yields a clean 500 instead of a half-written body.
func (rnd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tpl, ok := rnd.pages[page]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		if rnd.logg != nil {
			rnd.logg.Error(r.Context(), "render.failed", err)
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
