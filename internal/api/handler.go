package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rootwave/site/internal/content"
	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/metrics"
)

// Options carries the lead pipeline collaborators of the API.
type Options struct {
	Settings lead.Settings
	// Deliverer posts records to the webhook. Nil means every lead falls
	// back to the CSV backup.
	Deliverer lead.Deliverer
	// Backup optionally keeps a server-side copy of every CSV fallback.
	Backup  lead.FallbackWriter
	Metrics *metrics.LeadMetrics
	Now     func() time.Time
}

// Handler holds dependencies for API handlers.
type Handler struct {
	site       *content.Site
	settings   lead.Settings
	deliverer  lead.Deliverer
	backup     lead.FallbackWriter
	metrics    *metrics.LeadMetrics
	now        func() time.Time
	bufferPool *sync.Pool // Pool of bytes.Buffer for JSON encoding
}

// New creates a new API Handler.
func New(site *content.Site, opts Options) (*Handler, error) {
	if site == nil {
		return nil, errors.New("site content is required")
	}
	if opts.Settings.Brand == "" || opts.Settings.WhatsAppNumber == "" {
		return nil, errors.New("lead settings need a brand and a whatsapp number")
	}
	return &Handler{
		site:      site,
		settings:  opts.Settings,
		deliverer: opts.Deliverer,
		backup:    opts.Backup,
		metrics:   opts.Metrics,
		now:       opts.Now,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}, nil
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/leads", h.SubmitLead)
	mux.HandleFunc("POST /api/v1/leads/validate", h.ValidateLead)
	mux.HandleFunc("GET /api/v1/content", h.Content)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	buf := h.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		h.bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
		http.Error(w, `{"error":"internal server error","code":500}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  status,
	})
}
