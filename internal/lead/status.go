package lead

// Status is the outcome of the most recent submission.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	// StatusFallback means the webhook failed but the CSV backup was stored.
	StatusFallback Status = "webhook_error_csv_success"
	StatusError    Status = "error"
)

// Cleared reports whether the status clears the form.
func (s Status) Cleared() bool {
	return s == StatusSuccess || s == StatusFallback
}

// Text returns the inline message shown next to the form for the status.
func (s Status) Text() string {
	switch s {
	case StatusSuccess:
		return "Request sent successfully! We'll contact you on WhatsApp. Your info has been recorded."
	case StatusFallback:
		return "Request sent! We'll contact you. A CSV backup was made."
	case StatusError:
		return "Failed to record request. WhatsApp may have opened. Please try again or send details via WhatsApp if needed."
	default:
		return ""
	}
}
