package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/ports"
	"golang.org/x/oauth2"
)

// GoogleIssuer is the issuer URL of Google's OIDC discovery document.
const GoogleIssuer = "https://accounts.google.com"

// Verifier implements the TokenVerifier port against Google's public keys.
// It checks signature, issuer, and expiry via go-oidc, and the audience claim
// against the configured client ID.
type Verifier struct {
	clientID string
	verifier *gooidc.IDTokenVerifier
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// VerifierConfig holds configuration for the Google token verifier.
type VerifierConfig struct {
	// ClientID is the expected audience of inbound ID tokens.
	ClientID string

	// IssuerURL overrides the Google issuer (tests). Defaults to GoogleIssuer.
	IssuerURL string

	// HTTPClient is used for discovery and JWKS fetches.
	// Optional, defaults to a client with a 10s timeout.
	HTTPClient *http.Client
}

// NewVerifier fetches the provider's discovery document and prepares an ID
// token verifier keyed to its JWKS endpoint.
func NewVerifier(ctx context.Context, config VerifierConfig) (*Verifier, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}

	issuer := strings.TrimSuffix(config.IssuerURL, "/")
	if issuer == "" {
		issuer = GoogleIssuer
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	// go-oidc reuses the HTTP client stashed in the context for discovery
	// and later JWKS fetches.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	// Audience is checked separately below so a mismatch is distinguishable
	// from a signature failure.
	verifier := provider.Verifier(&gooidc.Config{SkipClientIDCheck: true})

	return &Verifier{
		clientID: config.ClientID,
		verifier: verifier,
	}, nil
}

// Verify validates the raw ID token and returns the identity it asserts.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	// Structural pre-check so garbage input fails as malformed rather than
	// as a signature problem.
	if _, err := decodePayload(rawToken); err != nil {
		return domainauth.Identity{}, err
	}

	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return domainauth.Identity{}, classifyVerifyError(err)
	}

	if !slices.Contains(idToken.Audience, v.clientID) {
		return domainauth.Identity{}, apperrors.AudienceMismatch("token audience does not match client ID")
	}

	var verified idTokenClaims
	if claimsErr := idToken.Claims(&verified); claimsErr != nil {
		return domainauth.Identity{}, apperrors.Wrap(claimsErr, apperrors.ErrCodeTokenVerification, "parse id_token claims")
	}

	return verified.identity(), nil
}

// classifyVerifyError maps go-oidc verification failures onto the error taxonomy.
func classifyVerifyError(err error) error {
	var expired *gooidc.TokenExpiredError
	if errors.As(err, &expired) {
		return apperrors.Wrap(err, apperrors.ErrCodeTokenVerification, "token expired")
	}
	if strings.Contains(err.Error(), "signature") {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidSignature, "verify token signature")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeTokenVerification, "verify token")
}
