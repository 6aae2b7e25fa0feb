package config

import (
	"strings"
	"time"
)

// AuthConfig groups Google sign-in and session configuration.
type AuthConfig struct {
	// GoogleClientID is the OAuth client identifier the frontend obtains
	// ID tokens for. The verifier rejects tokens minted for any other audience.
	GoogleClientID string `env:"GOOGLE_CLIENT_ID,required"`

	// SessionSecret signs the session credential (HS256).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL is the fixed session lifetime. Sessions are not refreshed
	// by request activity.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// SessionCookieName is the cookie carrying the session credential.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`

	// DefaultRole is assigned when an allow-list entry carries no role.
	DefaultRole string `env:"DEFAULT_ROLE" envDefault:"sistematizador"`

	// VerifyTimeout bounds identity-provider verification calls (JWKS fetch).
	VerifyTimeout time.Duration `env:"AUTH_VERIFY_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	c.GoogleClientID = strings.TrimSpace(c.GoogleClientID)
	c.SessionCookieName = strings.TrimSpace(c.SessionCookieName)
	if c.SessionCookieName == "" {
		c.SessionCookieName = "session"
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 8 * time.Hour
	}
	if c.VerifyTimeout <= 0 {
		c.VerifyTimeout = 10 * time.Second
	}
	c.DefaultRole = strings.TrimSpace(strings.ToLower(c.DefaultRole))
	if c.DefaultRole == "" {
		c.DefaultRole = "sistematizador"
	}
}
