package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
)

// TokenVerifier validates an externally issued identity token and returns the
// claims it asserts. Implementations must check the cryptographic signature
// and the audience; decode-only extractors do not satisfy this port.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (domainauth.Identity, error)
}

// AllowlistSource fetches the full set of authorized users, and the schedule
// records the same directory service publishes. Implementations return the
// complete list on every call; caching and normalization are the resolver's
// concern.
type AllowlistSource interface {
	FetchUsers(ctx context.Context) ([]domainauth.AllowedUser, error)
	FetchSchedule(ctx context.Context) ([]domainauth.ScheduleEntry, error)
}

// SessionCodec issues and decodes signed session credentials.
type SessionCodec interface {
	// Issue signs the principal into an opaque credential. The principal's
	// ExpiresAt is embedded; the credential is invalid after it.
	Issue(principal domainauth.Principal) (string, error)

	// Decode validates the credential signature and expiry and returns the
	// embedded principal.
	Decode(token string) (domainauth.Principal, error)
}
