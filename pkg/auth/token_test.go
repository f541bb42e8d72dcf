package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePairAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 24*time.Hour)

	pair, issued, err := m.GeneratePair(42, "youth")
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	access, err := m.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	id, _ := access.AccountID()
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "youth", access.Role)

	refresh, err := m.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, issued.JTI.String(), refresh.ID)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 24*time.Hour)
	pair, _, err := m.GeneratePair(1, "employer")
	require.NoError(t, err)

	_, err = m.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, 24*time.Hour)
	pair, _, err := m.GeneratePair(1, "youth")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other", time.Hour, 24*time.Hour)
		_, err := other.ParseAccess(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseRefresh("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", time.Minute, time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		old, _, err := past.GeneratePair(1, "youth")
		require.NoError(t, err)

		_, err = m.ParseAccess(old.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
			TokenType:        tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = m.ParseAccess(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Correct-Horse-9")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "Correct-Horse-9"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
