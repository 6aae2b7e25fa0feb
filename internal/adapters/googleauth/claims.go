package googleauth

// Package googleauth adapts Google-issued ID tokens into domain identities.

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
)

// idTokenClaims is the subset of Google ID token claims the application reads.
type idTokenClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
	Nonce         string `json:"nonce"`
}

// DecodeUnverified decodes the payload segment of a compact JWS without any
// signature check. It exists for optimistic display and for structural
// pre-checks; it is never a trust boundary. Verification is the Verifier's job.
func DecodeUnverified(rawToken string) (domainauth.Identity, error) {
	claims, err := decodePayload(rawToken)
	if err != nil {
		return domainauth.Identity{}, err
	}
	return claims.identity(), nil
}

func decodePayload(rawToken string) (idTokenClaims, error) {
	var claims idTokenClaims

	parts := strings.Split(strings.TrimSpace(rawToken), ".")
	if len(parts) != 3 {
		return claims, apperrors.MalformedToken("token does not have three segments")
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return claims, apperrors.Wrap(err, apperrors.ErrCodeMalformedToken, "decode token payload")
	}

	if unmarshalErr := json.Unmarshal(payload, &claims); unmarshalErr != nil {
		return claims, apperrors.Wrap(unmarshalErr, apperrors.ErrCodeMalformedToken, "parse token payload")
	}

	return claims, nil
}

func (c idTokenClaims) identity() domainauth.Identity {
	return domainauth.Identity{
		Subject:       c.Subject,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
		Name:          c.Name,
		Picture:       c.Picture,
	}
}
