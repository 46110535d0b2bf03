package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/dmitrijs2005/signbook/internal/models"
	"github.com/dmitrijs2005/signbook/internal/signature"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageHome    = "home"
	pageManage  = "manage"
	pageDisplay = "display"
)

var pageTitles = map[string]string{
	pageHome:    "Home",
	pageManage:  "Manage Users",
	pageDisplay: "Display Users",
}

type flash struct {
	Kind    string // success, error or info
	Message string
}

type formValues struct {
	ID       string
	FullName string
	Address  string
}

type recordView struct {
	ID          int64
	FullName    string
	Address     string
	Size        int
	ContentType string
	ImageURL    string
}

type pageData struct {
	Title   string
	Active  string
	Flash   *flash
	Form    formValues
	Records []recordView
}

func toViews(rows []models.Record) []recordView {
	views := make([]recordView, 0, len(rows))
	for _, r := range rows {
		views = append(views, recordView{
			ID:          r.ID,
			FullName:    r.FullName,
			Address:     r.Address,
			Size:        len(r.Signature),
			ContentType: signature.ContentType(r.Signature),
			ImageURL:    fmt.Sprintf("/records/%d/signature", r.ID),
		})
	}
	return views
}

func parseTemplates() (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"bytes": func(n int) string { return humanize.Bytes(uint64(n)) },
	}

	pages := make(map[string]*template.Template, len(pageTitles))
	for name := range pageTitles {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// render executes a page into a buffer first so a template error never
// leaves a half-written response behind.
func (s *Server) render(ctx context.Context, w http.ResponseWriter, status int, page string, data pageData) {
	data.Title = pageTitles[page]
	data.Active = page

	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error(ctx, "render failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
