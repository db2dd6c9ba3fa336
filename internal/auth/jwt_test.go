package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenMaker("test-secret", time.Hour)

	token, err := tm.New(42, "ada@example.com", "admin", "Ada")
	require.NoError(t, err)

	c, err := tm.Parse(token)
	require.NoError(t, err)
	require.Equal(t, 42, c.UserID)
	require.Equal(t, "ada@example.com", c.Email)
	require.Equal(t, "admin", c.Role)
	require.Equal(t, "Ada", c.Name)
}

func TestExpiredTokenIsClassified(t *testing.T) {
	tm := NewTokenMaker("test-secret", time.Hour)

	token, err := tm.NewWithTTL(1, "a@b.c", "customer", "A", -time.Minute)
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecretIsInvalidNotExpired(t *testing.T) {
	tm := NewTokenMaker("test-secret", time.Hour)
	other := NewTokenMaker("other-secret", time.Hour)

	token, err := other.New(1, "a@b.c", "customer", "A")
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	tm := NewTokenMaker("test-secret", time.Hour)

	_, err := tm.Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
