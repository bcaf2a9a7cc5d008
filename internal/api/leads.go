package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/rootwave/site/internal/fallback"
	"github.com/rootwave/site/internal/lead"
	"github.com/samber/lo"
)

const maxRequestBytes = 64 << 10

// noticeLog collects the toasts of one API submission.
type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (n *noticeLog) Notify(t lead.Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice(t))
}

// linkSink drops the deep link; API clients get it in the response.
type linkSink struct{}

func (linkSink) Open(string) {}

// inlineBackup accepts every CSV fallback; the response carries the file.
type inlineBackup struct{}

func (inlineBackup) Write(string, []byte) error { return nil }

// SubmitLead handles POST /api/v1/leads.
//
//	@Summary		Submit a sample request
//	@Description	Validates the lead, builds the WhatsApp deep link and posts the record to the webhook once. When the webhook fails the CSV backup is returned inline.
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			lead	body		LeadRequest	true	"Lead form"
//	@Success		200		{object}	LeadResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/v1/leads [post]
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLead(w, r)
	if !ok {
		return
	}

	notices := &noticeLog{}
	ctrl, err := h.controller(req, notices)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := ctrl.Submit(context.WithoutCancel(r.Context()))
	if errors.Is(err, lead.ErrInvalidForm) {
		h.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:         err.Error(),
			Code:          http.StatusUnprocessableEntity,
			InvalidFields: fieldNames(lead.Invalid(ctrl.Form(), ctrl.Variant())),
		})
		return
	}
	if err != nil {
		slog.Error("api: lead submission failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to submit lead")
		return
	}
	h.metrics.ObserveSubmission(ctrl.Variant().Name, string(res.Status))

	resp := LeadResponse{
		Status:      res.Status,
		Message:     res.Status.Text(),
		WhatsAppURL: res.DeepLink,
		Delivered:   res.Delivered,
		Record:      res.Record,
		Notices:     notices.notices,
	}
	if res.FallbackName != "" {
		resp.Backup = &BackupResponse{Filename: res.FallbackName, CSV: string(res.FallbackCSV)}
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ValidateLead handles POST /api/v1/leads/validate.
//
//	@Summary		Validate a lead form
//	@Description	Checks the lead against the rules of its variant without submitting it
//	@Tags			leads
//	@Accept			json
//	@Produce		json
//	@Param			lead	body		LeadRequest	true	"Lead form"
//	@Success		200		{object}	ValidationResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/v1/leads/validate [post]
func (h *Handler) ValidateLead(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeLead(w, r)
	if !ok {
		return
	}

	ctrl, err := h.controller(req, nil)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	invalid := fieldNames(lead.Invalid(ctrl.Form(), ctrl.Variant()))
	h.writeJSON(w, http.StatusOK, ValidationResponse{
		Valid:         len(invalid) == 0,
		InvalidFields: invalid,
	})
}

func (h *Handler) decodeLead(w http.ResponseWriter, r *http.Request) (LeadRequest, bool) {
	var req LeadRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return LeadRequest{}, false
	}
	return req, true
}

// controller builds a fresh controller holding the request's values.
func (h *Handler) controller(req LeadRequest, notifier lead.Notifier) (*lead.Controller, error) {
	variantName := lo.Ternary(req.Variant == "", lead.Campaign.Name, req.Variant)
	variant, ok := lead.VariantByName(variantName)
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", req.Variant)
	}

	backup := fallback.Chain{inlineBackup{}}
	if h.backup != nil {
		backup = append(backup, h.backup)
	}
	deps := lead.Deps{
		Dispatcher: linkSink{},
		Deliverer:  h.deliverer,
		Fallback:   backup,
		Now:        h.now,
	}
	if notifier != nil {
		deps.Notifier = notifier
	}

	ctrl, err := lead.NewController(variant, h.settings, deps)
	if err != nil {
		return nil, err
	}

	values := map[lead.Field]string{
		lead.FieldName:         req.Name,
		lead.FieldEmail:        req.Email,
		lead.FieldPhone:        req.Phone,
		lead.FieldCompany:      req.Company,
		lead.FieldQuantity:     req.Quantity.String(),
		lead.FieldSize:         req.Size,
		lead.FieldPincode:      req.Pincode,
		lead.FieldAddress:      req.Address,
		lead.FieldBusinessType: req.BusinessType,
		lead.FieldMessage:      req.Message,
	}
	for _, field := range variant.Fields {
		if field == lead.FieldStrawSizes {
			ctrl.SetStrawSizes(req.StrawSizes)
			continue
		}
		// An omitted size keeps the default.
		if field == lead.FieldSize && req.Size == "" {
			continue
		}
		ctrl.UpdateField(field, values[field])
	}
	return ctrl, nil
}

func fieldNames(fields []lead.Field) []string {
	return lo.Map(fields, func(f lead.Field, _ int) string {
		return string(f)
	})
}
