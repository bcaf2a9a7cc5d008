package lead

import (
	"fmt"
	"strings"
)

const (
	notSpecified = "Not specified"
	noMessage    = "N/A"
)

// Settings carries the site-wide values stamped onto every submission.
type Settings struct {
	Brand          string
	SiteURL        string
	Campaign       string
	WhatsAppNumber string
}

// orNotSpecified returns the trimmed value of field, or the placeholder when
// the variant does not collect it or it was left blank.
func orNotSpecified(form Form, variant Variant, field Field) string {
	if !variant.Has(field) {
		return notSpecified
	}
	v := strings.TrimSpace(form.Get(field))
	if v == "" {
		return notSpecified
	}
	return v
}

// sizesOf returns the requested sizes: the multi-select set when the variant
// has one, otherwise the single size.
func sizesOf(form Form, variant Variant) string {
	if variant.Has(FieldStrawSizes) {
		return form.Get(FieldStrawSizes)
	}
	if variant.Has(FieldSize) {
		return form.Size
	}
	return ""
}

func messageOf(form Form) string {
	if m := strings.TrimSpace(form.Message); m != "" {
		return m
	}
	return noMessage
}

// FormatMessage builds the WhatsApp text for a sample request. Every line is
// present for every variant; fields the variant lacks read "Not specified".
func FormatMessage(form Form, variant Variant, s Settings) string {
	quantity := orNotSpecified(form, variant, FieldQuantity)
	if quantity != notSpecified {
		quantity += " pieces"
	}
	businessType := orNotSpecified(form, variant, FieldBusinessType)
	if businessType != notSpecified {
		businessType = BusinessTypeLabel(businessType)
	}
	sizes := sizesOf(form, variant)
	if sizes == "" {
		sizes = notSpecified
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s - Free Sample Request (Campaign)*\n\n", s.Brand)
	fmt.Fprintf(&b, "Name: %s\n", strings.TrimSpace(form.Name))
	fmt.Fprintf(&b, "Email: %s\n", strings.TrimSpace(form.Email))
	fmt.Fprintf(&b, "Phone: %s\n", strings.TrimSpace(form.Phone))
	fmt.Fprintf(&b, "Company: %s\n", orNotSpecified(form, variant, FieldCompany))
	fmt.Fprintf(&b, "Pincode: %s\n", orNotSpecified(form, variant, FieldPincode))
	fmt.Fprintf(&b, "Address: %s\n", orNotSpecified(form, variant, FieldAddress))
	fmt.Fprintf(&b, "Business Type: %s\n", businessType)
	fmt.Fprintf(&b, "Straw Sizes: %s\n", sizes)
	fmt.Fprintf(&b, "Quantity: %s\n", quantity)
	fmt.Fprintf(&b, "Message: %s\n", messageOf(form))
	fmt.Fprintf(&b, "\nThis is a request for FREE rice straws from %s.\n", s.Brand)
	fmt.Fprintf(&b, "Request from website: %s", s.SiteURL)
	return b.String()
}
