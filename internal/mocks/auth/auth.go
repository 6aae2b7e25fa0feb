package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"time"

	domainauth "github.com/superaisp/acceso-api/internal/domain/auth"
	"github.com/superaisp/acceso-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenVerifier   = (*MockVerifier)(nil)
	_ ports.AllowlistSource = (*MemorySource)(nil)
	_ ports.SessionCodec    = (*MockCodec)(nil)
)

// MockVerifier simulates the identity provider for tests.
type MockVerifier struct {
	VerifyFunc func(ctx context.Context, rawToken string) (domainauth.Identity, error)

	// DefaultIdentity is returned when VerifyFunc is nil.
	DefaultIdentity domainauth.Identity
}

// NewMockVerifier creates a MockVerifier with a sensible default identity.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{
		DefaultIdentity: domainauth.Identity{
			Subject:       "mock-sub-1",
			Email:         "mock.user@example.com",
			EmailVerified: true,
			Name:          "Mock User",
			Picture:       "https://example.com/mock.png",
		},
	}
}

func (m *MockVerifier) Verify(ctx context.Context, rawToken string) (domainauth.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, rawToken)
	}
	return m.DefaultIdentity, nil
}

// MemorySource serves allow-list records from in-memory slices.
type MemorySource struct {
	Users    []domainauth.AllowedUser
	Schedule []domainauth.ScheduleEntry

	// Err, when set, is returned by both fetch methods.
	Err error

	// FetchCount tracks how many times users were fetched.
	FetchCount int
}

func (m *MemorySource) FetchUsers(_ context.Context) ([]domainauth.AllowedUser, error) {
	m.FetchCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users, nil
}

func (m *MemorySource) FetchSchedule(_ context.Context) ([]domainauth.ScheduleEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Schedule, nil
}

// MockCodec is a transparent session codec for tests. Issued credentials are
// the principal's subject prefixed with "token-"; Decode reverses it against
// the stored principal.
type MockCodec struct {
	IssueFunc  func(principal domainauth.Principal) (string, error)
	DecodeFunc func(token string) (domainauth.Principal, error)

	issued map[string]domainauth.Principal
}

func (m *MockCodec) Issue(principal domainauth.Principal) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(principal)
	}
	if m.issued == nil {
		m.issued = make(map[string]domainauth.Principal)
	}
	token := "token-" + principal.Subject
	m.issued[token] = principal
	return token, nil
}

func (m *MockCodec) Decode(token string) (domainauth.Principal, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	principal, ok := m.issued[token]
	if !ok {
		return domainauth.Principal{}, fmt.Errorf("unknown session credential %q", token)
	}
	if !principal.ExpiresAt.IsZero() && time.Now().After(principal.ExpiresAt) {
		return domainauth.Principal{}, fmt.Errorf("session credential expired")
	}
	return principal, nil
}
