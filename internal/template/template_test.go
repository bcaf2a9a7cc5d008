package template

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	add := funcMap["add"].(func(int, int) int)

	tests := []struct {
		name     string
		a, b     int
		expected int
	}{
		{"positive numbers", 2, 3, 5},
		{"zero and positive", 0, 5, 5},
		{"mixed signs", -2, 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, add(tt.a, tt.b))
		})
	}
}

func TestRupees(t *testing.T) {
	rupees := funcMap["rupees"].(func(decimal.Decimal) string)

	tests := []struct {
		input    string
		expected string
	}{
		{"1.75", "₹1.75"},
		{"2.2", "₹2.20"},
		{"4", "₹4.00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, rupees(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestContains(t *testing.T) {
	contains := funcMap["contains"].(func([]string, string) bool)

	assert.True(t, contains([]string{"6.5mm", "8mm"}, "8mm"))
	assert.False(t, contains([]string{"6.5mm"}, "8mm"))
	assert.False(t, contains(nil, "8mm"))
}

func TestMarkdown(t *testing.T) {
	markdown := funcMap["markdown"].(func(string) template.HTML)

	t.Run("renders emphasis", func(t *testing.T) {
		out := string(markdown("**RootWave** straws"))
		assert.Contains(t, out, "<strong>RootWave</strong>")
	})

	t.Run("strips scripts", func(t *testing.T) {
		out := string(markdown("hi <script>alert(1)</script>"))
		assert.NotContains(t, out, "<script>")
	})
}

func TestNew(t *testing.T) {
	tmpl, err := New()
	require.NoError(t, err)
	assert.Contains(t, tmpl.pages, "home.html")
}

func TestRenderUnknownTemplate(t *testing.T) {
	tmpl, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.Render(&buf, "missing.html", nil)
	assert.ErrorContains(t, err, "not found")
}
