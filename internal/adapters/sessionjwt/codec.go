package sessionjwt

// Package sessionjwt issues and decodes the signed session credential carried
// in the session cookie. The credential is self-contained: there is no
// server-side session record and no revocation before expiry.

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/ports"
)

// sessionClaims is the JWT payload wrapping a Principal.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email   string           `json:"email"`
	Name    string           `json:"name"`
	Picture string           `json:"picture,omitempty"`
	Role    domainauth.Role  `json:"role"`
}

// Codec signs and validates session credentials with a server-held secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.SessionCodec = (*Codec)(nil)

// CodecConfig holds configuration for the session codec.
type CodecConfig struct {
	// Secret is the HS256 signing key.
	Secret string

	// TTL is the fixed credential lifetime. Optional, defaults to 8h.
	TTL time.Duration

	// Now overrides the clock (tests).
	Now func() time.Time
}

// NewCodec creates a session codec.
func NewCodec(config CodecConfig) (*Codec, error) {
	if config.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Codec{
		secret: []byte(config.Secret),
		ttl:    ttl,
		now:    now,
	}, nil
}

// TTL returns the fixed credential lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs the principal into a compact credential. When the principal
// carries no expiry, one is stamped at now+TTL; the caller's cookie max-age
// must match the embedded expiry.
func (c *Codec) Issue(principal domainauth.Principal) (string, error) {
	if principal.Subject == "" {
		return "", errors.New("principal subject is required")
	}

	now := c.now()
	expiresAt := principal.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(c.ttl)
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:   principal.Email,
		Name:    principal.Name,
		Picture: principal.Picture,
		Role:    principal.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "sign session credential")
	}

	return signed, nil
}

// Decode validates the credential and returns the embedded principal.
// Expired, tampered, or otherwise unparseable credentials all map to an
// invalid-session error.
func (c *Codec) Decode(token string) (domainauth.Principal, error) {
	if token == "" {
		return domainauth.Principal{}, apperrors.NoSession("no session credential")
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domainauth.Principal{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidSession, "validate session credential")
	}
	if !parsed.Valid {
		return domainauth.Principal{}, apperrors.InvalidSession("session credential is not valid")
	}

	return domainauth.Principal{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
