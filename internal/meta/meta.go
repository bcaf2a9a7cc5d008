// Package meta describes the document head of the landing page.
package meta

import (
	"fmt"
	"strings"
)

// Page is the metadata rendered into the page head once per page.
type Page struct {
	Title       string
	Description string
	SiteName    string
	URL         string
	OGImage     string
	ThemeColor  string
}

// ForBrand builds the landing page metadata for brand served at siteURL.
func ForBrand(brand, siteURL string) Page {
	return Page{
		Title: fmt.Sprintf("%s - Premium Rice Straws | Free Samples Available", brand),
		Description: fmt.Sprintf("Get your free samples of %s's premium, biodegradable rice straws. "+
			"Made from natural ingredients. Sustainable packaging solutions for eco-conscious businesses.", brand),
		SiteName:   brand,
		URL:        CanonicalURL(siteURL),
		OGImage:    CanonicalURL(siteURL) + "/og-image.svg",
		ThemeColor: "#059669",
	}
}

// CanonicalURL returns siteURL with an https scheme and no trailing slash.
func CanonicalURL(siteURL string) string {
	u := strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if u == "" {
		return ""
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u
}
