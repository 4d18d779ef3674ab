package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pilot-auth/internal/models"
)

func TestGenerateAndParse(t *testing.T) {
	tm := NewTokenManager("secret", "pilot-auth", time.Hour)
	user := models.User{ID: 42, Account: "alice", TokenVersion: 3}

	raw, err := tm.Generate(user)
	require.NoError(t, err)

	claims, err := tm.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Account)
	assert.Equal(t, int64(3), claims.Version)
	assert.Equal(t, "pilot-auth", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	tm := NewTokenManager("secret", "pilot-auth", time.Hour)
	user := models.User{ID: 1, Account: "a"}

	a, err := tm.Generate(user)
	require.NoError(t, err)
	b, err := tm.Generate(user)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParse_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", "pilot-auth", time.Hour)
	user := models.User{ID: 1, Account: "a"}

	other, err := NewTokenManager("other-secret", "pilot-auth", time.Hour).Generate(user)
	require.NoError(t, err)
	wrongIssuer, err := NewTokenManager("secret", "someone-else", time.Hour).Generate(user)
	require.NoError(t, err)

	expiredTM := NewTokenManager("secret", "pilot-auth", time.Minute)
	expiredTM.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredTM.Generate(user)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": "pilot-auth", "sub": "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": other,
		"wrong issuer": wrongIssuer,
		"expired":      expired,
		"alg none":     unsigned,
	} {
		_, err := tm.Parse(raw)
		assert.True(t, errors.Is(err, ErrInvalidToken), name)
	}
}

func TestClaims_UserID_BadSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
