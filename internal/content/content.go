// Package content provides the read-only descriptive data shown on the site:
// benefits, the product catalog, stats and comparison notes.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rootwave/site/internal/lead"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

//go:embed content.toml
var defaultContent string

// Benefit is one environmental benefit card.
type Benefit struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Color       string `toml:"color" json:"color"`
}

// Product is one straw size in the catalog.
type Product struct {
	ID          string `toml:"id" json:"id"`
	Size        string `toml:"size" json:"size"`
	Use         string `toml:"use" json:"use"`
	Icon        string `toml:"icon" json:"icon"`
	Image       string `toml:"image" json:"image"`
	Description string `toml:"description" json:"description"`
	// Price is the regular per-piece price in INR; samples are free.
	Price decimal.Decimal `toml:"price" json:"price"`
}

// Stat is a headline number.
type Stat struct {
	Value string `toml:"value" json:"value"`
	Label string `toml:"label" json:"label"`
}

// Feature is a short selling point.
type Feature struct {
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
}

// Site is the full content document.
type Site struct {
	Name         string    `toml:"name" json:"name"`
	Slogan       string    `toml:"slogan" json:"slogan"`
	URL          string    `toml:"url" json:"url"`
	ContactEmail string    `toml:"contact_email" json:"contactEmail"`
	LogoPath     string    `toml:"logo_path" json:"logoPath"`
	Banner       string    `toml:"banner" json:"banner"`
	BrandIntro   string    `toml:"brand_intro" json:"brandIntro"` // markdown
	VsPlastic    string    `toml:"vs_plastic" json:"vsPlastic"`
	VsPaper      string    `toml:"vs_paper" json:"vsPaper"`
	Benefits     []Benefit `toml:"benefits" json:"benefits"`
	Products     []Product `toml:"products" json:"products"`
	Stats        []Stat    `toml:"stats" json:"stats"`
	Features     []Feature `toml:"features" json:"features"`
}

// Default returns the embedded content document.
func Default() (*Site, error) {
	return Parse(defaultContent)
}

// Parse decodes a TOML content document.
func Parse(doc string) (*Site, error) {
	var s Site
	md, err := toml.Decode(doc, &s)
	if err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown content keys: %v", undecoded)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a content document from r.
func Load(r io.Reader) (*Site, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	return Parse(string(data))
}

// LoadFile reads a content document from path, or the embedded default when
// path is empty.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (s *Site) validate() error {
	if s.Name == "" {
		return errors.New("content: name is required")
	}
	if len(s.Products) == 0 {
		return errors.New("content: at least one product is required")
	}
	for _, p := range s.Products {
		if !lo.Contains(lead.Sizes, p.Size) {
			return fmt.Errorf("content: product %s has unknown size %q", p.ID, p.Size)
		}
		if p.Price.IsNegative() {
			return fmt.Errorf("content: product %s has negative price", p.ID)
		}
	}
	return nil
}

// Product returns the catalog entry for size.
func (s *Site) Product(size string) (Product, bool) {
	return lo.Find(s.Products, func(p Product) bool {
		return p.Size == size
	})
}

// SampleValue returns the regular price of one piece of every size in sizes.
func (s *Site) SampleValue(sizes []string) decimal.Decimal {
	return lo.Reduce(sizes, func(total decimal.Decimal, size string, _ int) decimal.Decimal {
		if p, ok := s.Product(size); ok {
			return total.Add(p.Price)
		}
		return total
	}, decimal.Zero)
}
