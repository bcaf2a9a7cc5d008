package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/rootwave/site/internal/content"
	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/meta"
	"github.com/rootwave/site/internal/metrics"
	"github.com/rootwave/site/internal/session"
	"github.com/rootwave/site/internal/whatsapp"
)

// TemplateRenderer renders a named page template.
type TemplateRenderer interface {
	Render(w io.Writer, name string, data any) error
}

// Options carries the optional handler settings.
type Options struct {
	Meta     meta.Page
	Settings lead.Settings
	Metrics  *metrics.LeadMetrics // may be nil
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	sessions    *session.Store
	site        *content.Site
	tmpl        TemplateRenderer
	meta        meta.Page
	metrics     *metrics.LeadMetrics
	supportLink string
}

// New creates a new Handler with the given dependencies.
func New(sessions *session.Store, site *content.Site, tmpl TemplateRenderer, opts Options) (*Handler, error) {
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if site == nil {
		return nil, errors.New("site content is required")
	}
	if tmpl == nil {
		return nil, errors.New("templates are required")
	}
	return &Handler{
		sessions:    sessions,
		site:        site,
		tmpl:        tmpl,
		meta:        opts.Meta,
		metrics:     opts.Metrics,
		supportLink: whatsapp.SupportLink(opts.Settings.WhatsAppNumber),
	}, nil
}

// RegisterRoutes registers all HTTP routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST /sample", h.Sample)
	mux.HandleFunc("GET /sample/backup", h.Backup)
}
