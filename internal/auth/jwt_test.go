package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Adarsha-Hegade/data-entry1/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "u1", "user@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := ValidateToken("secret", token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "u1", "user@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = ValidateToken("other-secret", token)
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("secret", -time.Minute, "u1", "user@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = ValidateToken("secret", token)
	require.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ValidateToken("secret", "not.a.token")
	require.Error(t, err)
}
