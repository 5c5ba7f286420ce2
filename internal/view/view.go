// Package view renders the article pages with html/template. Templates
// and the stylesheet are embedded in the binary.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Pages.
const (
	Index   = "index"
	Show    = "show"
	NewPage = "new"
	Edit    = "edit"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Data is what every page template receives.
type Data struct {
	Title    string
	Article  *model.Article
	Articles []*model.Article
	Errors   []string
	Statuses []string
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"articlePath": func(id int64) string {
		return "/articles/" + strconv.FormatInt(id, 10)
	},
}

// New parses every page together with the layout and the form partial.
func New() (*Renderer, error) {
	v := &Renderer{pages: map[string]*template.Template{}}

	for _, page := range []string{Index, Show, NewPage, Edit} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/_form.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		v.pages[page] = t
	}

	return v, nil
}

// Render writes page with status. Nothing is written if the template fails.
func (v *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	t, ok := v.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.Statuses == nil {
		data.Statuses = model.ValidStatuses
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s template: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)

	return err
}

// Assets serves the embedded stylesheet.
func Assets() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FS(sub)
}
