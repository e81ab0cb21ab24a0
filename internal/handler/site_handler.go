package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/contact"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/moderation"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/portfolio"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/view"
	"github.com/Hamsacgowda/Hamsa-B-C/internal/web"
)

// SiteConfig holds the dependencies of SiteHandler.
type SiteConfig struct {
	Submitter    contact.Submitter
	Dashboard    *moderation.Dashboard
	Catalog      *portfolio.Catalog
	Renderer     *web.Renderer
	AdminEnabled bool
	Now          func() time.Time
}

// SiteHandler serves the HTML pages: the public site with its contact form
// and the moderation view selected by ?admin=true.
type SiteHandler struct {
	cfg SiteConfig
}

func NewSiteHandler(cfg SiteConfig) *SiteHandler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SiteHandler{cfg: cfg}
}

// Index handles GET /. The view is selected once per page load.
func (h *SiteHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if h.cfg.AdminEnabled && view.Select(q) == view.ModeModeration {
		h.dashboard(w, r, q)
		return
	}
	h.renderSite(w, r, http.StatusOK, contact.NewForm(h.cfg.Submitter, contact.WithClock(h.cfg.Now)))
}

// Contact handles POST /contact, the no-script submission path of the form.
func (h *SiteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	form, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	// A failed submit still serves the page, with the error notice.
	if err := form.Submit(r.Context()); err != nil {
		slog.Error("error submitting contact form", "error", err)
	}
	h.renderSite(w, r, http.StatusOK, form)
}

// RateLimited answers a rate-limited POST /contact with the page and an
// error notice, keeping what the visitor typed.
func (h *SiteHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	form, ok := h.postedForm(w, r)
	if !ok {
		return
	}
	form.Reject(contact.RateLimitedText)
	h.renderSite(w, r, http.StatusTooManyRequests, form)
}

func (h *SiteHandler) postedForm(w http.ResponseWriter, r *http.Request) (*contact.Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return nil, false
	}
	form := contact.NewForm(h.cfg.Submitter, contact.WithClock(h.cfg.Now))
	form.SetFields(contact.Fields{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Subject: r.PostForm.Get("subject"),
		Message: r.PostForm.Get("message"),
	})
	return form, true
}

func (h *SiteHandler) renderSite(w http.ResponseWriter, r *http.Request, status int, form *contact.Form) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = portfolio.AllCategories
	}
	page := web.SitePage{
		Catalog:        h.cfg.Catalog,
		Categories:     h.cfg.Catalog.Categories(),
		ActiveCategory: category,
		Projects:       h.cfg.Catalog.ProjectsIn(category),
		Form:           web.NewFormView(form),
		Year:           h.cfg.Now().Year(),
	}
	web.Serve(w, r, status, h.cfg.Renderer.Site(page))
}

// dashboard renders the moderation view. A load without a filter parameter
// is a mount: it starts at the all filter and re-fetches. A filter change
// only re-renders, unless nothing has been fetched yet. The filter belongs
// to the request; the shared dashboard only holds the fetched rows.
func (h *SiteHandler) dashboard(w http.ResponseWriter, r *http.Request, q url.Values) {
	d := h.cfg.Dashboard
	filter := model.FilterAll
	if q.Has("filter") {
		filter = model.ParseFilter(q.Get("filter"))
		if !d.Loaded() {
			_ = d.Refresh(r.Context())
		}
	} else {
		_ = d.Refresh(r.Context())
	}
	web.Serve(w, r, http.StatusOK, h.cfg.Renderer.Admin(web.AdminPage{Snapshot: d.SnapshotFor(filter)}))
}

// AdminOnly hides the moderation routes when the moderation view is disabled.
func (h *SiteHandler) AdminOnly(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.cfg.AdminEnabled {
			http.NotFound(w, r)
			return
		}
		next(w, r)
	})
}

// ToggleRead handles POST /admin/submissions/{id}/read.
func (h *SiteHandler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	d := h.cfg.Dashboard
	h.ensureLoaded(r)
	// Failures are logged by the dashboard and leave the view unchanged.
	_ = d.ToggleRead(r.Context(), r.PathValue("id"))
	h.redirectToDashboard(w, r)
}

// ConfirmDelete handles GET /admin/submissions/{id}/delete.
func (h *SiteHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.ensureLoaded(r)
	row, ok := h.cfg.Dashboard.Row(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	web.Serve(w, r, http.StatusOK, h.cfg.Renderer.ConfirmDelete(web.ConfirmDeletePage{
		ID:         id,
		Submission: row,
		Filter:     model.ParseFilter(r.URL.Query().Get("filter")),
		Prompt:     moderation.DeletePrompt,
	}))
}

// Delete handles POST /admin/submissions/{id}/delete. Only confirm=yes
// deletes; any other answer is a decline and issues no request.
func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	confirmed := r.PostFormValue("confirm") == "yes"
	_, _ = h.cfg.Dashboard.Delete(r.Context(), r.PathValue("id"), func(string) bool {
		return confirmed
	})
	h.redirectToDashboard(w, r)
}

// Refresh handles POST /admin/refresh.
func (h *SiteHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	_ = h.cfg.Dashboard.Refresh(r.Context())
	h.redirectToDashboard(w, r)
}

func (h *SiteHandler) ensureLoaded(r *http.Request) {
	if !h.cfg.Dashboard.Loaded() {
		_ = h.cfg.Dashboard.Refresh(r.Context())
	}
}

// redirectToDashboard sends the moderator back with the filter kept. The
// target carries a filter parameter, so it re-renders without re-fetching.
func (h *SiteHandler) redirectToDashboard(w http.ResponseWriter, r *http.Request) {
	filter := model.ParseFilter(r.FormValue("filter"))
	http.Redirect(w, r, DashboardURL(filter), http.StatusSeeOther)
}

// DashboardURL is the moderation view with the given filter.
func DashboardURL(f model.Filter) string {
	v := url.Values{}
	v.Set(view.AdminParam, "true")
	v.Set("filter", string(f))
	return "/?" + v.Encode()
}
