package httpx

import (
	"context"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
)

// principalKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type principalKey struct{}

// SetPrincipalInContext returns a child context that carries the given principal.
// If principal is nil, the original ctx is returned unchanged.
func SetPrincipalInContext(ctx context.Context, principal *domainauth.Principal) context.Context {
	if principal == nil {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipalFromContext returns the principal from context and a boolean indicating presence.
func GetPrincipalFromContext(ctx context.Context) (*domainauth.Principal, bool) {
	if principal, ok := ctx.Value(principalKey{}).(*domainauth.Principal); ok && principal != nil {
		return principal, true
	}
	return nil, false
}
