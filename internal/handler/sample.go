package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rootwave/site/internal/lead"
	"github.com/samber/lo"
)

const (
	actionUpdate = "update"
	actionSubmit = "submit"

	// toggleKey carries the straw size of a pressed size chip.
	toggleKey = "toggle"

	maxFormBytes = 64 << 10
)

// Sample handles POST /sample: field edits, size toggles and submissions of
// the lead form. It always redirects back to the form without waiting for the
// webhook.
func (h *Handler) Sample(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Ensure(w, r)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctrl := s.Lead
	applyFields(ctrl, r.PostForm)

	if size := r.PostForm.Get(toggleKey); size != "" {
		ctrl.ToggleStrawSize(size)
	} else if r.PostForm.Get("action") == actionSubmit {
		// The deep link is queued before Begin returns; delivery finishes in
		// the background even if the browser goes away.
		done, err := ctrl.Begin(context.WithoutCancel(r.Context()))
		switch {
		case errors.Is(err, lead.ErrInvalidForm):
			s.Notify(invalidToast(lead.Invalid(ctrl.Form(), ctrl.Variant())))
		case errors.Is(err, lead.ErrSubmissionInFlight):
			slog.Debug("ignoring duplicate submit", "session", s.ID)
		case err != nil:
			slog.Error("lead submission failed", "error", err)
		default:
			variant := ctrl.Variant().Name
			go func() {
				res := <-done
				h.metrics.ObserveSubmission(variant, string(res.Status))
			}()
		}
	}

	http.Redirect(w, r, "/#samples", http.StatusSeeOther)
}

// applyFields copies the posted scalar fields of the variant into the
// controller. Unchanged values are skipped so that re-posting the form does
// not reset the status.
func applyFields(ctrl *lead.Controller, values url.Values) {
	form := ctrl.Form()
	for _, field := range ctrl.Variant().Fields {
		if field == lead.FieldStrawSizes {
			continue
		}
		posted, ok := values[string(field)]
		if !ok || len(posted) == 0 {
			continue
		}
		if posted[0] != form.Get(field) {
			ctrl.UpdateField(field, posted[0])
		}
	}
}

func invalidToast(fields []lead.Field) lead.Toast {
	names := lo.Map(fields, func(f lead.Field, _ int) string {
		return string(f)
	})
	return lead.Toast{
		Title:       "Check your details",
		Description: fmt.Sprintf("Please correct: %s.", strings.Join(names, ", ")),
		Destructive: true,
	}
}

// Backup serves the CSV backup of the last submission once.
func (h *Handler) Backup(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.FromRequest(r)
	if s == nil {
		http.NotFound(w, r)
		return
	}
	d, ok := s.TakeDownload()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Name))
	if _, err := w.Write(d.Data); err != nil {
		slog.Error("failed to write csv backup", "file", d.Name, "error", err)
	}
}
