package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rootwave/site/internal/content"
	"github.com/rootwave/site/internal/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSettings = lead.Settings{
	Brand:          "RootWave",
	SiteURL:        "www.rootwave.org",
	Campaign:       lead.DefaultCampaign,
	WhatsAppNumber: "917760021026",
}

var testTime = time.Date(2026, 10, 16, 9, 30, 15, 123_000_000, time.UTC)

type stubDeliverer struct {
	err     error
	records []lead.Record
}

func (d *stubDeliverer) Deliver(_ context.Context, rec lead.Record) error {
	d.records = append(d.records, rec)
	return d.err
}

type statusErr int

func (e statusErr) Error() string   { return "webhook rejected" }
func (e statusErr) StatusCode() int { return int(e) }

type memBackup struct {
	files map[string][]byte
	err   error
}

func (m *memBackup) Write(name string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	return nil
}

func newTestHandler(t *testing.T, opts Options) (*Handler, *http.ServeMux) {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)

	if opts.Settings.Brand == "" {
		opts.Settings = testSettings
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testTime }
	}
	h, err := New(site, opts)
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func post(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

const campaignLead = `{
	"name": "Asha Rao",
	"email": "asha@cafe.in",
	"phone": "+91 98765 43210",
	"pincode": "560001",
	"address": "12 MG Road, Bengaluru",
	"businessType": "cafe",
	"strawSizes": ["8mm", "10mm"]
}`

func TestNew(t *testing.T) {
	site, err := content.Default()
	require.NoError(t, err)

	t.Run("nil content returns error", func(t *testing.T) {
		h, err := New(nil, Options{Settings: testSettings})
		assert.Nil(t, h)
		assert.ErrorContains(t, err, "content")
	})

	t.Run("missing settings returns error", func(t *testing.T) {
		h, err := New(site, Options{})
		assert.Nil(t, h)
		assert.ErrorContains(t, err, "brand")
	})

	t.Run("valid dependencies", func(t *testing.T) {
		h, err := New(site, Options{Settings: testSettings})
		assert.NoError(t, err)
		assert.NotNil(t, h)
	})
}

func TestSubmitLead(t *testing.T) {
	t.Run("delivered lead", func(t *testing.T) {
		deliverer := &stubDeliverer{}
		_, mux := newTestHandler(t, Options{Deliverer: deliverer})

		w := post(mux, "/api/v1/leads", campaignLead)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp struct {
			Status      string            `json:"status"`
			Message     string            `json:"message"`
			WhatsAppURL string            `json:"whatsapp_url"`
			Delivered   bool              `json:"delivered"`
			Record      map[string]string `json:"record"`
			Backup      *BackupResponse   `json:"backup"`
			Notices     []Notice          `json:"notices"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, lead.StatusSuccess.Text(), resp.Message)
		assert.True(t, resp.Delivered)
		assert.True(t, strings.HasPrefix(resp.WhatsAppURL, "https://wa.me/917760021026?text="))
		assert.Equal(t, "8mm, 10mm", resp.Record["strawSizes"])
		assert.Equal(t, "2026-10-16T09:30:15.123Z", resp.Record["submittedAt"])
		assert.Nil(t, resp.Backup)
		require.Len(t, resp.Notices, 1)
		assert.Equal(t, "Success!", resp.Notices[0].Title)
		require.Len(t, deliverer.records, 1)
	})

	t.Run("rejected lead returns the csv backup", func(t *testing.T) {
		backup := &memBackup{}
		_, mux := newTestHandler(t, Options{
			Deliverer: &stubDeliverer{err: statusErr(502)},
			Backup:    backup,
		})

		w := post(mux, "/api/v1/leads", campaignLead)

		require.Equal(t, http.StatusOK, w.Code)
		var resp LeadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, lead.StatusFallback, resp.Status)
		require.NotNil(t, resp.Backup)
		assert.Equal(t, "RootWave_Sample_Request_2026-10-16T09-30-15-123Z.csv", resp.Backup.Filename)
		assert.Contains(t, resp.Backup.CSV, `"Asha Rao"`)
		assert.Contains(t, backup.files, resp.Backup.Filename)
		require.Len(t, resp.Notices, 1)
		assert.Equal(t, "Partial Success", resp.Notices[0].Title)
		assert.True(t, resp.Notices[0].Destructive)
	})

	t.Run("server backup failure still returns the csv", func(t *testing.T) {
		_, mux := newTestHandler(t, Options{Backup: &memBackup{err: errors.New("disk full")}})

		w := post(mux, "/api/v1/leads", campaignLead)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"webhook_error_csv_success"`)
		assert.Contains(t, w.Body.String(), `"delivered":false`)
	})

	t.Run("classic variant", func(t *testing.T) {
		deliverer := &stubDeliverer{}
		_, mux := newTestHandler(t, Options{Deliverer: deliverer})

		w := post(mux, "/api/v1/leads", `{
			"variant": "classic",
			"name": "Ravi",
			"email": "ravi@hotel.in",
			"phone": "9876543210",
			"quantity": 500
		}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, deliverer.records, 1)
		qty, _ := deliverer.records[0].Get("quantity")
		size, _ := deliverer.records[0].Get("size")
		assert.Equal(t, "500", qty)
		assert.Equal(t, "6.5mm", size)
	})

	t.Run("invalid lead returns 422 with fields", func(t *testing.T) {
		deliverer := &stubDeliverer{}
		_, mux := newTestHandler(t, Options{Deliverer: deliverer})

		w := post(mux, "/api/v1/leads", `{"name":"A","email":"asha@cafe.in","phone":"123"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Equal(t, []string{"name", "phone", "pincode", "address", "businessType", "strawSizes"}, resp.InvalidFields)
		assert.Empty(t, deliverer.records, "nothing is sent")
	})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"unknown field", `{"nickname":"x"}`},
		{"snake case business type", `{"variant":"campaign","business_type":"cafe"}`},
		{"snake case straw sizes", `{"variant":"campaign","straw_sizes":["8mm"]}`},
		{"unknown variant", `{"variant":"wholesale"}`},
		{"non numeric quantity", `{"variant":"classic","quantity":"lots"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mux := newTestHandler(t, Options{})
			w := post(mux, "/api/v1/leads", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"code":400`)
		})
	}
}

func TestValidateLead(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantValid   bool
		wantInvalid []string
	}{
		{"valid campaign lead", campaignLead, true, []string{}},
		{"unknown straw size only", `{
			"name": "Asha Rao",
			"email": "asha@cafe.in",
			"phone": "+91 98765 43210",
			"pincode": "560001",
			"address": "12 MG Road, Bengaluru",
			"businessType": "cafe",
			"strawSizes": ["20mm"]
		}`, false, []string{"strawSizes"}},
		{"classic missing quantity", `{"variant":"classic","name":"Ravi","email":"ravi@hotel.in","phone":"9876543210"}`, false, []string{"quantity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deliverer := &stubDeliverer{}
			_, mux := newTestHandler(t, Options{Deliverer: deliverer})

			w := post(mux, "/api/v1/leads/validate", tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			var resp ValidationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.ElementsMatch(t, tt.wantInvalid, resp.InvalidFields)
			assert.Empty(t, deliverer.records)
		})
	}
}

func TestContent(t *testing.T) {
	_, mux := newTestHandler(t, Options{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/content", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var site content.Site
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &site))
	assert.Equal(t, "RootWave", site.Name)
	require.Len(t, site.Products, 4)
	assert.Equal(t, "1.75", site.Products[0].Price.String())
}
