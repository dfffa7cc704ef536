// Package web renders the server-side pages: the syllabus input screen and the course dashboard.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"syllabus-builder/internal/dashboard"
	"syllabus-builder/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeView is the input screen.
type HomeView struct {
	Text     string
	Weeks    int
	MaxWeeks int
	Status   domain.GenerationStatus
	Error    string
	// HasCourse offers a link back to the dashboard after a failed regeneration.
	HasCourse bool
}

// DashboardView is the course dashboard for one selection.
type DashboardView struct {
	Page     *dashboard.Page
	Warnings []domain.Issue
	Error    string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"weight": func(w float64) string { return fmt.Sprintf("%g", w) },
	"inc":    func(i int) int { return i + 1 },
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{"home.html", "dashboard.html"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = clone
	}
	return r, nil
}

func (r *Renderer) render(w io.Writer, page string, data interface{}) error {
	// Render to a buffer so a template error never leaves a half-written page.
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) Home(w io.Writer, v HomeView) error {
	return r.render(w, "home.html", v)
}

func (r *Renderer) Dashboard(w io.Writer, v DashboardView) error {
	return r.render(w, "dashboard.html", v)
}
