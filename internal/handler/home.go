package handler

import (
	"log/slog"
	"net/http"

	"github.com/rootwave/site/internal/content"
	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/meta"
	"github.com/rootwave/site/internal/session"
	"github.com/shopspring/decimal"
)

// HomeData holds data for the home page template.
type HomeData struct {
	Meta            meta.Page
	Site            *content.Site
	Variant         lead.Variant
	Form            lead.Form
	BusinessTypes   []lead.BusinessType
	Sizes           []string
	SampleValue     decimal.Decimal  // regular price of the chosen sizes, one piece each
	SelectedProduct *content.Product // classic form only
	Valid           bool
	Submitting      bool
	Status          lead.Status
	StatusText      string
	Toasts          []lead.Toast
	DeepLink        string // opened once after a submission
	Download        string // name of the pending CSV backup
	SupportLink     string
}

// Home handles the landing page with the visitor's lead form.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.tmpl.Render(w, "home.html", h.homeData(s)); err != nil {
		slog.Error("failed to render home template", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// homeData snapshots the session for one render. Queued toasts and the deep
// link are consumed; the backup stays until it is downloaded.
func (h *Handler) homeData(s *session.Session) HomeData {
	ctrl := s.Lead
	// Read Submitting before Status so a finishing submission is never shown
	// as neither in flight nor resolved.
	submitting := ctrl.Submitting()
	status := ctrl.Status()
	download, _ := s.PendingDownload()

	form := ctrl.Form()
	variant := ctrl.Variant()

	data := HomeData{
		Meta:          h.meta,
		Site:          h.site,
		Variant:       variant,
		Form:          form,
		BusinessTypes: lead.BusinessTypes,
		Sizes:         lead.Sizes,
		Valid:         ctrl.Valid(),
		Submitting:    submitting,
		Status:        status,
		StatusText:    status.Text(),
		Toasts:        s.TakeToasts(),
		DeepLink:      s.TakeLink(),
		Download:      download,
		SupportLink:   h.supportLink,
	}

	if variant.Has(lead.FieldStrawSizes) {
		data.SampleValue = h.site.SampleValue(form.StrawSizes)
	} else if p, ok := h.site.Product(form.Size); ok {
		data.SampleValue = p.Price
		data.SelectedProduct = &p
	}
	return data
}
