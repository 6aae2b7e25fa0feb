package googleauth

import (
	"context"
	"errors"
	"testing"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/superaisp/acceso-api/internal/errors"
)

func TestNewVerifierRequiresClientID(t *testing.T) {
	t.Parallel()

	_, err := NewVerifier(context.Background(), VerifierConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client ID is required")
}

func TestVerifyRejectsMalformedTokenWithoutNetwork(t *testing.T) {
	t.Parallel()

	// The structural pre-check runs before any key fetch, so a verifier with
	// no live provider behind it still classifies garbage input.
	v := &Verifier{clientID: "client-1"}

	_, err := v.Verify(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedToken(err))
}

func TestClassifyVerifyError(t *testing.T) {
	t.Parallel()

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		err := classifyVerifyError(&gooidc.TokenExpiredError{})
		assert.True(t, apperrors.IsTokenVerification(err))
	})

	t.Run("signature", func(t *testing.T) {
		t.Parallel()
		err := classifyVerifyError(errors.New("failed to verify signature: key mismatch"))
		assert.True(t, apperrors.IsInvalidSignature(err))
	})

	t.Run("other", func(t *testing.T) {
		t.Parallel()
		err := classifyVerifyError(errors.New("oidc: id token issued by a different provider"))
		assert.True(t, apperrors.IsTokenVerification(err))
	})
}
