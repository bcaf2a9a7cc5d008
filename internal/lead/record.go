package lead

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout of submittedAt: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultCampaign labels every record produced by the sample form.
const DefaultCampaign = "Free Sample Request"

// Column is one field of the outbound record.
type Column struct {
	Key    string // JSON key
	Header string // CSV header
	Value  string
}

// Record is the structured form of a submission sent to the webhook and
// written to the CSV fallback. Column order is stable.
type Record struct {
	Columns     []Column
	SubmittedAt time.Time
}

// wireKeys maps form fields to their wire key and CSV header.
var wireKeys = map[Field]Column{
	FieldName:         {Key: "name", Header: "Name"},
	FieldEmail:        {Key: "email", Header: "Email"},
	FieldPhone:        {Key: "phone", Header: "Phone"},
	FieldPincode:      {Key: "pincode", Header: "Pincode"},
	FieldAddress:      {Key: "address", Header: "Address"},
	FieldBusinessType: {Key: "businessType", Header: "BusinessType"},
	FieldStrawSizes:   {Key: "strawSizes", Header: "StrawSizes"},
	FieldCompany:      {Key: "company", Header: "Company"},
	FieldQuantity:     {Key: "quantity", Header: "Quantity"},
	FieldSize:         {Key: "size", Header: "Size"},
	FieldMessage:      {Key: "message", Header: "Message"},
}

// wireOrder is the column order of the record; fields a variant lacks are
// skipped.
var wireOrder = []Field{
	FieldName, FieldEmail, FieldPhone,
	FieldPincode, FieldAddress, FieldBusinessType, FieldStrawSizes,
	FieldCompany, FieldQuantity, FieldSize,
	FieldMessage,
}

// NewRecord maps a form onto its wire representation.
func NewRecord(form Form, variant Variant, s Settings, now time.Time) Record {
	now = now.UTC()
	campaign := s.Campaign
	if campaign == "" {
		campaign = DefaultCampaign
	}

	cols := make([]Column, 0, len(wireOrder)+3)
	for _, f := range wireOrder {
		if !variant.Has(f) {
			continue
		}
		col := wireKeys[f]
		switch f {
		case FieldMessage:
			col.Value = messageOf(form)
		default:
			col.Value = strings.TrimSpace(form.Get(f))
		}
		cols = append(cols, col)
	}
	cols = append(cols,
		Column{Key: "submittedAt", Header: "SubmittedAt", Value: now.Format(TimestampLayout)},
		Column{Key: "source", Header: "Source", Value: s.SiteURL},
		Column{Key: "campaign", Header: "Campaign", Value: campaign},
	)
	return Record{Columns: cols, SubmittedAt: now}
}

// Get returns the value stored under the JSON key.
func (r Record) Get(key string) (string, bool) {
	for _, c := range r.Columns {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the record as a flat object in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %s: %w", c.Key, err)
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", c.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CSV renders a header line and one data line. Every value is quoted and
// embedded quotes are doubled.
func (r Record) CSV() []byte {
	var buf bytes.Buffer
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(c.Header)
	}
	buf.WriteByte('\n')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quoteCSV(c.Value))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FallbackFilename names the CSV backup of a submission made at t.
func FallbackFilename(brand string, t time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(TimestampLayout))
	return fmt.Sprintf("%s_Sample_Request_%s.csv", brand, ts)
}
