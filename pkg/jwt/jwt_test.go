package jwt_test

import (
	"testing"

	"socialite/backend/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	signed, err := jwt.GenerateToken(42, "session-secret")
	require.NoError(t, err)

	userID, err := jwt.ParseToken(signed, "session-secret")
	require.NoError(t, err)
	require.Equal(t, uint(42), userID)
}

func TestParseWithWrongSecret(t *testing.T) {
	signed, err := jwt.GenerateToken(42, "session-secret")
	require.NoError(t, err)

	_, err = jwt.ParseToken(signed, "another-secret")
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := jwt.ParseToken("garbage", "session-secret")
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}
