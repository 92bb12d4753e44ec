package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "github.com/atlas-commerce/atlas-commerce/testing"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, ok := issuer.Verify(token)
	require.True(t, ok)
	require.Equal(t, int64(42), claims.UserID)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, ok := issuer.Verify(token)
	require.False(t, ok)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(42)
	require.NoError(t, err)

	_, ok := other.Verify(token)
	require.False(t, ok)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, ok := issuer.Verify(raw)
		require.False(t, ok, "token %q must not verify", raw)
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	first, err := issuer.Issue(1)
	require.NoError(t, err)
	second, err := issuer.Issue(1)
	require.NoError(t, err)

	a, ok := issuer.Verify(first)
	require.True(t, ok)
	b, ok := issuer.Verify(second)
	require.True(t, ok)
	require.NotEqual(t, a.ID, b.ID)
}
