package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":4000"`

	// AllowedOrigins lists cross-origin request sources permitted to call
	// the API with credentials. Comma-separated; entries are trimmed and
	// empties dropped.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	origins := make([]string, 0, len(h.AllowedOrigins))
	for _, o := range h.AllowedOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, strings.TrimSuffix(trimmed, "/"))
		}
	}
	h.AllowedOrigins = origins
}
