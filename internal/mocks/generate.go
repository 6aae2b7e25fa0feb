// Package mocks provides mock implementations for testing the auth ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockSource := mocks.NewMockAllowlistSource(ctrl)
//	mockSource.EXPECT().FetchUsers(gomock.Any()).Return(users, nil)
package mocks

// Generate mock for TokenVerifier interface from internal/ports package.
// This creates MockTokenVerifier with methods for all TokenVerifier interface methods:
// Verify
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_verifier_mock.go github.com/superaisp/acceso-api/internal/ports TokenVerifier

// Generate mock for AllowlistSource interface from internal/ports package.
// This creates MockAllowlistSource with methods for all AllowlistSource interface methods:
// FetchUsers, FetchSchedule
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=allowlist_source_mock.go github.com/superaisp/acceso-api/internal/ports AllowlistSource

// Generate mock for SessionCodec interface from internal/ports package.
// This creates MockSessionCodec with methods for all SessionCodec interface methods:
// Issue, Decode
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_codec_mock.go github.com/superaisp/acceso-api/internal/ports SessionCodec
