package service

import (
	"context"
	"log/slog"
	"time"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/observability/metrics"
	"github.com/superaisp/acceso-api/internal/observability/statsd"
	"github.com/superaisp/acceso-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier    ports.TokenVerifier
	Allowlist   *AllowlistService
	Sessions    ports.SessionCodec
	SessionTTL  time.Duration
	DefaultRole domainauth.Role
	Metrics     statsd.Sink
	Logger      *slog.Logger
	Now         func() time.Time
}

// AuthService orchestrates the sign-in flow: verify the Google credential,
// check the allow-list, and mint the session credential.
type AuthService struct {
	verifier    ports.TokenVerifier
	allowlist   *AllowlistService
	sessions    ports.SessionCodec
	sessionTTL  time.Duration
	defaultRole domainauth.Role
	metrics     statsd.Sink
	logger      *slog.Logger
	now         func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	defaultRole := opts.DefaultRole
	if defaultRole == "" {
		defaultRole = domainauth.RoleSistematizador
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		verifier:    opts.Verifier,
		allowlist:   opts.Allowlist,
		sessions:    opts.Sessions,
		sessionTTL:  sessionTTL,
		defaultRole: defaultRole,
		metrics:     opts.Metrics,
		logger:      logger,
		now:         now,
	}
}

// LoginResult contains the outcome of a successful sign-in.
type LoginResult struct {
	Principal domainauth.Principal
	Token     string
	TTL       time.Duration
}

// Login verifies a Google ID token, authorizes the holder against the
// allow-list, and issues a session credential. The allow-list record decides
// the role and may override the display name; identity attributes come from
// the verified token.
func (s *AuthService) Login(ctx context.Context, rawToken string) (*LoginResult, error) {
	start := s.now()

	result, err := s.login(ctx, rawToken)
	metrics.EmitLogin(s.metrics, metrics.LoginMetric{
		Result:   metrics.ResultForError(err),
		Duration: s.now().Sub(start),
		Err:      err,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed in",
		"sub", result.Principal.Subject,
		"role", result.Principal.Role,
	)

	return result, nil
}

func (s *AuthService) login(ctx context.Context, rawToken string) (*LoginResult, error) {
	if rawToken == "" {
		return nil, apperrors.Validation("id_token is required")
	}

	identity, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if !identity.EmailVerified {
		return nil, apperrors.EmailNotVerified("email address is not verified")
	}

	record, allowed, err := s.allowlist.Resolve(ctx, identity.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "allow-list lookup failed")
	}
	if !allowed {
		return nil, apperrors.UserNotAuthorized("user is not authorized")
	}

	principal := s.buildPrincipal(identity, record)

	token, err := s.sessions.Issue(principal)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Principal: principal,
		Token:     token,
		TTL:       s.sessionTTL,
	}, nil
}

// buildPrincipal merges the verified identity with the allow-list record.
// The record's name wins over the token's when present; an invalid or empty
// role on the record falls back to the default.
func (s *AuthService) buildPrincipal(identity domainauth.Identity, record domainauth.AllowedUser) domainauth.Principal {
	name := record.Name
	if name == "" {
		name = identity.Name
	}

	role := record.Role
	if !role.IsValid() {
		role = s.defaultRole
	}

	return domainauth.Principal{
		Subject:   identity.Subject,
		Email:     identity.Email,
		Name:      name,
		Picture:   identity.Picture,
		Role:      role,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
}

// CurrentSession decodes and validates a session credential.
func (s *AuthService) CurrentSession(token string) (domainauth.Principal, error) {
	return s.sessions.Decode(token)
}

// Schedule returns the cronograma visible to any authenticated user.
func (s *AuthService) Schedule(ctx context.Context) ([]domainauth.ScheduleEntry, error) {
	entries, err := s.allowlist.Schedule(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "schedule lookup failed")
	}
	return entries, nil
}
