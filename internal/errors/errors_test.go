package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	t.Parallel()

	plain := New(ErrCodeValidation, "id_token is required")
	assert.Equal(t, "id_token is required", plain.Error())

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, ErrCodeUnavailable, "allow-list lookup failed")
	assert.Equal(t, "allow-list lookup failed: connection refused", wrapped.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "something failed")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrapNilReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}

func TestPredicatesMatchCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err       error
		predicate func(error) bool
	}{
		{MalformedToken("m"), IsMalformedToken},
		{InvalidSignature("m"), IsInvalidSignature},
		{AudienceMismatch("m"), IsAudienceMismatch},
		{TokenVerification("m"), IsTokenVerification},
		{EmailNotVerified("m"), IsEmailNotVerified},
		{UserNotAuthorized("m"), IsUserNotAuthorized},
		{NoSession("m"), IsNoSession},
		{InvalidSession("m"), IsInvalidSession},
		{Forbidden("m"), IsForbidden},
		{NotFound("m"), IsNotFound},
		{Validation("m"), IsValidation},
		{Internal("m"), IsInternal},
	}

	for _, tc := range tests {
		assert.True(t, tc.predicate(tc.err), "predicate for %v", tc.err)
		assert.False(t, tc.predicate(errors.New("other")))
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := UserNotAuthorized("user is not authorized")
	outer := fmt.Errorf("login: %w", inner)

	assert.True(t, IsUserNotAuthorized(outer))
	assert.Equal(t, ErrCodeUserNotAuthorized, GetCode(outer))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrCodeForbidden, GetCode(Forbidden("no")))
	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestIsTokenRejection(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTokenRejection(MalformedToken("m")))
	assert.True(t, IsTokenRejection(InvalidSignature("m")))
	assert.True(t, IsTokenRejection(AudienceMismatch("m")))
	assert.True(t, IsTokenRejection(TokenVerification("m")))

	assert.False(t, IsTokenRejection(EmailNotVerified("m")))
	assert.False(t, IsTokenRejection(NoSession("m")))
	assert.False(t, IsTokenRejection(errors.New("plain")))
	assert.False(t, IsTokenRejection(nil))
}
