package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// CacheControl sets Cache-Control headers based on request path:
//   - static assets: 1 year (immutable)
//   - robots.txt: 1 day
//   - swagger docs and the content API: 1 hour / 5 minutes
//   - everything else: no-store, since pages carry per-visitor form state
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cachePolicy(r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

func cachePolicy(method, path string) string {
	if method != http.MethodGet && method != http.MethodHead {
		return "no-store"
	}
	switch {
	case isStaticAsset(path):
		return "public, max-age=31536000, immutable"
	case path == "/robots.txt":
		return "public, max-age=86400"
	case strings.HasPrefix(path, "/swagger/"):
		return "public, max-age=3600"
	case path == "/api/v1/content":
		return "public, max-age=300, must-revalidate"
	default:
		return "no-store"
	}
}

// isStaticAsset checks if the path is an embedded image.
func isStaticAsset(path string) bool {
	staticAssets := []string{
		"/favicon.svg",
		"/og-image.svg",
	}

	return slices.Contains(staticAssets, path)
}
