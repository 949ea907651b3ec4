package token_test

import (
	"testing"
	"time"

	"socialite/backend/internal/token"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Generate(7)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, uint(7), userID)
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	signed, err := issuer.Generate(7)
	require.NoError(t, err)

	// Flip a single character in the payload.
	tampered := []byte(signed)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = issuer.Verify(string(tampered))
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", -time.Minute)

	signed, err := issuer.Generate(7)
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	other := token.NewIssuer("other-secret", time.Hour)

	signed, err := issuer.Generate(7)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Verify(garbage)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	}
}
