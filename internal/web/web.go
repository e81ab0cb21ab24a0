// Package web renders the public site and the moderation pages.
//
// Pages are html/template files embedded in the binary and exposed as templ
// components, so handlers render them the same way they would render a
// generated component.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/contact"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/portfolio"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageSite          = "site.html"
	pageAdmin         = "admin.html"
	pageConfirmDelete = "confirm_delete.html"
)

// TimeLayout is how submission timestamps are displayed.
const TimeLayout = "Jan 2, 2006, 3:04 PM"

// SitePage is the data behind the public site.
type SitePage struct {
	Catalog        *portfolio.Catalog
	Categories     []string
	ActiveCategory string
	Projects       []portfolio.Project
	Form           FormView
	Year           int
}

// FormView is the render-time state of the contact form.
type FormView struct {
	Fields      contact.Fields
	Notice      contact.Notice
	ExpiresIn   time.Duration
	SubmitLabel string
	Disabled    bool
}

// NewFormView captures f for rendering.
func NewFormView(f *contact.Form) FormView {
	return FormView{
		Fields:      f.Fields(),
		Notice:      f.Notice(),
		ExpiresIn:   f.NoticeExpiresIn(),
		SubmitLabel: f.SubmitLabel(),
		Disabled:    !f.CanSubmit(),
	}
}

func (v FormView) IsSuccess() bool { return v.Notice.Kind == contact.NoticeSuccess }
func (v FormView) IsError() bool   { return v.Notice.Kind == contact.NoticeError }

// ExpiresInSeconds rounds the success notice lifetime up to whole seconds.
func (v FormView) ExpiresInSeconds() int {
	return int(math.Ceil(v.ExpiresIn.Seconds()))
}

// AdminPage is the data behind the moderation dashboard.
type AdminPage struct {
	Snapshot moderation.Snapshot
}

// ConfirmDeletePage asks the moderator to confirm one delete.
type ConfirmDeletePage struct {
	ID         string
	Submission *model.Submission
	Filter     model.Filter
	Prompt     string
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatTime": formatTime,
	}
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{pageSite, pageAdmin, pageConfirmDelete} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

func (r *Renderer) component(page string, data any) templ.Component {
	return templ.FromGoHTML(r.pages[page].Lookup(page), data)
}

// Site returns the public site component.
func (r *Renderer) Site(p SitePage) templ.Component { return r.component(pageSite, p) }

// Admin returns the moderation dashboard component.
func (r *Renderer) Admin(p AdminPage) templ.Component { return r.component(pageAdmin, p) }

// ConfirmDelete returns the delete confirmation component.
func (r *Renderer) ConfirmDelete(p ConfirmDeletePage) templ.Component {
	return r.component(pageConfirmDelete, p)
}

// Serve writes c as an HTML response with status.
func Serve(w http.ResponseWriter, req *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, req)
}

// Static serves the embedded stylesheet and script under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
