package template

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// funcMap provides custom template functions.
var funcMap = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"rupees": func(d decimal.Decimal) string {
		return "₹" + d.StringFixed(2)
	},
	"contains": func(items []string, item string) bool {
		return lo.Contains(items, item)
	},
	"markdown": func(s string) template.HTML {
		extensions := blackfriday.CommonExtensions | blackfriday.Autolink
		renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
			Flags: blackfriday.CommonHTMLFlags,
		})
		unsafe := blackfriday.Run([]byte(s), blackfriday.WithRenderer(renderer), blackfriday.WithExtensions(extensions))
		// Content files may be edited by hand; never trust their HTML.
		p := bluemonday.UGCPolicy()
		return template.HTML(p.SanitizeBytes(unsafe))
	},
}

// Templates holds parsed HTML templates.
type Templates struct {
	pages map[string]*template.Template
}

// New parses and returns all templates.
func New() (*Templates, error) {
	pages := make(map[string]*template.Template)

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	pageNames := []string{"home.html"}

	for _, name := range pageNames {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}

		_, err = pageTemplate.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		pages[name] = pageTemplate
	}

	return &Templates{pages: pages}, nil
}

// Render executes the named template with the given data.
func (t *Templates) Render(w io.Writer, name string, data any) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
