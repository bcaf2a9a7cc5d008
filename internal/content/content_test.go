package content

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "RootWave", s.Name)
	assert.Equal(t, "www.rootwave.org", s.URL)
	assert.Len(t, s.Benefits, 4)
	assert.Len(t, s.Products, 4)
	assert.Len(t, s.Stats, 4)
	assert.Len(t, s.Features, 4)
	assert.Contains(t, s.BrandIntro, "**RootWave**")

	p, ok := s.Product("13mm")
	require.True(t, ok)
	assert.Equal(t, "Bubble Tea, Jelly Drinks", p.Use)
	assert.True(t, decimal.RequireFromString("4.15").Equal(p.Price))
}

func TestSampleValue(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name     string
		sizes    []string
		expected string
	}{
		{"no sizes", nil, "0"},
		{"one size", []string{"8mm"}, "2.2"},
		{"several sizes", []string{"6.5mm", "8mm"}, "3.95"},
		{"unknown size ignored", []string{"6.5mm", "99mm"}, "1.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.SampleValue(tt.sizes).String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"invalid toml", "name = ", "decoding content"},
		{"missing name", `[[products]]
id = "p"
size = "8mm"
price = "1"`, "name is required"},
		{"no products", `name = "X"`, "at least one product"},
		{"unknown size", `name = "X"
[[products]]
id = "p"
size = "9mm"
price = "1"`, "unknown size"},
		{"negative price", `name = "X"
[[products]]
id = "p"
size = "8mm"
price = "-1"`, "negative price"},
		{"unknown key", `name = "X"
colour = "green"
[[products]]
id = "p"
size = "8mm"
price = "1"`, "unknown content keys"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(strings.NewReader(`name = "Mini"
[[products]]
id = "p"
size = "10mm"
price = "3"`))
	require.NoError(t, err)
	assert.Equal(t, "Mini", s.Name)

	_, err = LoadFile("/nonexistent/content.toml")
	assert.Error(t, err)

	s, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "RootWave", s.Name)
}
