package api

import (
	"encoding/json"

	"github.com/rootwave/site/internal/lead"
)

// LeadRequest is a lead form submitted through the API. Fields outside the
// chosen variant are ignored.
type LeadRequest struct {
	Variant      string      `json:"variant,omitempty" example:"campaign"` // "classic" or "campaign" (default)
	Name         string      `json:"name" example:"Asha Rao"`
	Email        string      `json:"email" example:"asha@cafe.in"`
	Phone        string      `json:"phone" example:"+91 98765 43210"`
	Company      string      `json:"company,omitempty"`
	Quantity     json.Number `json:"quantity,omitempty" swaggertype:"integer" example:"200"`
	Size         string      `json:"size,omitempty" example:"8mm"`
	Pincode      string      `json:"pincode,omitempty" example:"560001"`
	Address      string      `json:"address,omitempty" example:"12 MG Road, Bengaluru"`
	BusinessType string      `json:"businessType,omitempty" example:"cafe"`
	StrawSizes   []string    `json:"strawSizes,omitempty" example:"8mm,10mm"`
	Message      string      `json:"message,omitempty"`
}

// LeadResponse describes the outcome of a submitted lead.
type LeadResponse struct {
	Status      lead.Status     `json:"status" swaggertype:"string" enums:"success,webhook_error_csv_success,error"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsapp_url"`
	Delivered   bool            `json:"delivered"`
	Record      lead.Record     `json:"record" swaggertype:"object"`
	Backup      *BackupResponse `json:"backup,omitempty"`
	Notices     []Notice        `json:"notices,omitempty"`
}

// BackupResponse carries the CSV fallback of a lead the webhook did not take.
type BackupResponse struct {
	Filename string `json:"filename" example:"RootWave_Sample_Request_2026-10-16T09-30-15-123Z.csv"`
	CSV      string `json:"csv"`
}

// Notice is a short human-readable message about the submission.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Destructive bool   `json:"destructive,omitempty"`
}

// ValidationResponse reports whether a lead form may be submitted.
type ValidationResponse struct {
	Valid         bool     `json:"valid"`
	InvalidFields []string `json:"invalid_fields"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Code          int      `json:"code"`
	InvalidFields []string `json:"invalid_fields,omitempty"`
}
