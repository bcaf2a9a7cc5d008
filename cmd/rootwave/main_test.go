package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func campaignArgs(extra ...string) []string {
	args := []string{
		"rootwave", "--log-level", "error", "submit",
		"--name", "Asha Rao",
		"--email", "asha@cafe.in",
		"--phone", "+91 98765 43210",
		"--pincode", "560001",
		"--address", "12 MG Road, Bengaluru",
		"--business-type", "cafe",
		"--sizes", "8mm,10mm",
	}
	return append(args, extra...)
}

func TestSubmitCommand(t *testing.T) {
	t.Run("delivered to the webhook", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		out := t.TempDir()
		var stdout bytes.Buffer
		err := newApp(&stdout).Run(campaignArgs("--webhook-url", srv.URL, "--out", out))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Open WhatsApp: https://wa.me/917760021026?text=")
		assert.Contains(t, stdout.String(), "Success!")
		assert.Equal(t, "Asha Rao", got["name"])
		assert.Equal(t, "8mm, 10mm", got["strawSizes"])

		entries, err := os.ReadDir(out)
		require.NoError(t, err)
		assert.Empty(t, entries, "no backup when delivered")
	})

	t.Run("webhook failure writes the csv backup", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		out := t.TempDir()
		var stdout bytes.Buffer
		err := newApp(&stdout).Run(campaignArgs("--webhook-url", srv.URL, "--out", out))

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Partial Success")
		assert.Contains(t, stdout.String(), "A CSV backup was made.")

		matches, err := filepath.Glob(filepath.Join(out, "RootWave_Sample_Request_*.csv"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Asha Rao"`)
	})

	t.Run("no webhook and no backup directory is an error", func(t *testing.T) {
		var stdout bytes.Buffer
		err := newApp(&stdout).Run(campaignArgs("--out", filepath.Join(t.TempDir(), "missing")))

		assert.ErrorContains(t, err, "not recorded")
		assert.Contains(t, stdout.String(), "Open WhatsApp:")
		assert.Contains(t, stdout.String(), "Failed to record request.")
	})

	t.Run("invalid form names the fields", func(t *testing.T) {
		var stdout bytes.Buffer
		err := newApp(&stdout).Run([]string{"rootwave", "--log-level", "error", "submit", "--name", "A", "--out", t.TempDir()})

		assert.ErrorContains(t, err, "form is not valid")
		assert.ErrorContains(t, err, "name")
		assert.NotContains(t, stdout.String(), "Open WhatsApp:")
	})

	t.Run("settings file is overridden by flags", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "rootwave.toml")
		require.NoError(t, os.WriteFile(settings, []byte(`
variant = "classic"
whatsapp_number = "910000000000"
`), 0o644))

		var stdout bytes.Buffer
		err := newApp(&stdout).Run([]string{
			"rootwave", "--log-level", "error", "--config", settings, "submit",
			"--whatsapp-number", "+91 77600 21026",
			"--name", "Ravi", "--email", "ravi@hotel.in", "--phone", "9876543210",
			"--quantity", "250",
			"--out", t.TempDir(),
		})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://wa.me/917760021026?text=")
	})

	t.Run("unknown variant is rejected", func(t *testing.T) {
		err := newApp(io.Discard).Run(campaignArgs("--variant", "wholesale"))
		assert.ErrorContains(t, err, "unknown form variant")
	})
}
