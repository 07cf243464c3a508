package web

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fairshare/internal/climate"
	"fairshare/internal/config"
	"fairshare/internal/errors"
	"fairshare/internal/imaginator"
	"fairshare/internal/session"
	"fairshare/internal/store"
)

// maxImportBytes bounds uploaded import files.
const maxImportBytes = 10 << 20

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	sess     *session.Session
	im       *imaginator.Imaginator
	cfg      *config.Config
	renderer *Renderer
}

// HandleHome handles GET /, the scenario page.
func (h *Handlers) HandleHome(w http.ResponseWriter, r *http.Request) {
	active := h.sess.Active()
	derived := climate.Derive(active)

	countryName := ""
	hasCountry := false
	if active.CountryCode != nil {
		if c, ok := climate.CountryByCode(*active.CountryCode); ok {
			countryName = c.Name
			hasCountry = true
		}
	}

	h.renderer.renderPage(w, "home", HomePageData{
		PageData: PageData{
			Title:   "Fairshare",
			Version: h.renderer.version,
		},
		Explorations: h.sess.List(),
		Active:       active,
		Derived:      derived,
		HasCountry:   hasCountry,
		CountryName:  countryName,
		Countries:    climate.Countries,
		Tier:         climate.TierFor(derived.PersonalTarget),
		Categories:   climate.LifestyleCategories,
		Genres:       imaginator.Genres,
		Stories:      storyViews(active.Stories),
		CanImagine:   h.im != nil && hasCountry,
		Flash:        r.URL.Query().Get("flash"),
	})
}

// HandleCreate handles POST /explorations: create and activate a new
// exploration.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.sess.Create(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSelect handles POST /explorations/{id}/select.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	h.sess.SetActive(r.PathValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDelete handles POST /explorations/{id}/delete.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRename handles POST /explorations/{id}/rename.
func (h *Handlers) HandleRename(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.Rename(r.Context(), r.PathValue("id"), r.FormValue("name")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleScenario handles POST /scenario: merge the submitted controls
// into the active exploration.
func (h *Handlers) HandleScenario(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("invalid form data"))
		return
	}

	country := r.FormValue("country")
	grid := r.Form.Has("grid")
	transport := r.Form.Has("transport")
	food := r.Form.Has("food")
	rate, err := strconv.Atoi(r.FormValue("participation"))
	if err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("participation rate must be a number"))
		return
	}

	patch := session.Patch{
		CountryCode:       &country,
		Grid:              &grid,
		Transport:         &transport,
		Food:              &food,
		ParticipationRate: &rate,
	}
	if err := h.sess.UpdateActive(r.Context(), patch); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleImagine handles POST /stories: generate a story for the active
// exploration.
func (h *Handlers) HandleImagine(w http.ResponseWriter, r *http.Request) {
	if h.im == nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("story generation is not configured; set OPENAI_API_KEY"))
		return
	}
	if _, err := h.im.Imagine(r.Context(), r.FormValue("genre")); err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleStoryDelete handles POST /explorations/{id}/stories/{storyID}/delete.
func (h *Handlers) HandleStoryDelete(w http.ResponseWriter, r *http.Request) {
	err := h.sess.DeleteStory(r.Context(), r.PathValue("id"), r.PathValue("storyID"))
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleExport handles GET /export: download the collection as a
// versioned JSON document named with the current date.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	data, err := store.MarshalExport(h.sess.Explorations())
	if err != nil {
		h.renderer.renderError(w, errors.NewInternal(err))
		return
	}

	filename := fmt.Sprintf("climate-explorations-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

// HandleImport handles POST /import: replace the collection from an
// uploaded file. A rejected file leaves the current state untouched.
func (h *Handlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		h.renderer.renderError(w, errors.NewInvalidRequest("no import file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.renderer.renderError(w, errors.NewInternal(err))
		return
	}

	count, err := h.sess.ImportBytes(r.Context(), data)
	if err != nil {
		h.renderer.renderError(w, err)
		return
	}

	flash := url.QueryEscape(fmt.Sprintf("Imported %d explorations", count))
	http.Redirect(w, r, "/?flash="+flash, http.StatusSeeOther)
}
