package web

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/yuin/goldmark"

	"fairshare/internal/climate"
	"fairshare/internal/errors"
	"fairshare/internal/exploration"
)

// PageData contains common fields used across page templates.
type PageData struct {
	Title   string
	Version string
}

// StoryView is a story with its Markdown body rendered to HTML.
type StoryView struct {
	exploration.GeneratedStory
	RenderedHTML template.HTML
}

// HomePageData is the template data for the single scenario page.
type HomePageData struct {
	PageData
	Explorations []exploration.Exploration
	Active       exploration.Exploration
	Derived      climate.Derived
	HasCountry   bool
	CountryName  string
	Countries    []climate.Country
	Tier         climate.LifestyleTier
	Categories   []climate.LifestyleCategory
	Genres       []string
	Stories      []StoryView
	CanImagine   bool
	Flash        string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"formatTime":   formatTime,
		"formatTonnes": formatTonnes,
		"deref":        deref,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"home":  "home.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// renderPage renders a named page template with HTTP 200.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given status.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		log.Printf("template %q not found", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("template execution error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error page from a structured error.
func (r *Renderer) renderError(w http.ResponseWriter, err error) {
	var fErr *errors.Error
	if !stderrors.As(err, &fErr) {
		fErr = errors.NewInternal(err)
	}

	r.renderPageStatus(w, fErr.Status, "error", ErrorPageData{
		PageData: PageData{
			Title:   fmt.Sprintf("Error %d", fErr.Status),
			Version: r.version,
		},
		StatusCode: fErr.Status,
		Message:    fErr.Message,
	})
}

// renderMarkdown converts story Markdown to HTML using goldmark. Goldmark
// escapes raw HTML by default, so generator output cannot inject markup.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// storyViews renders each story body for display, newest last (insertion
// order is display order).
func storyViews(stories []exploration.GeneratedStory) []StoryView {
	out := make([]StoryView, len(stories))
	for i, st := range stories {
		out[i] = StoryView{GeneratedStory: st, RenderedHTML: renderMarkdown(st.Text)}
	}
	return out
}

// deref unwraps an optional string for template comparisons.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// formatTime formats a Unix millisecond timestamp as "2006-01-02 15:04" UTC.
func formatTime(unixMilli int64) string {
	return time.UnixMilli(unixMilli).UTC().Format("2006-01-02 15:04")
}

// formatTonnes formats a tonnes/year figure to one decimal place.
func formatTonnes(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.1f", v)
}
