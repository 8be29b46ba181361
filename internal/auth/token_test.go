package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	tm.now = fixedClock(now)

	token, expiresAt, err := tm.Issue("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, now.Add(DefaultTokenTTL), expiresAt)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestVerifyExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 160)
	issuedAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	tm.now = fixedClock(issuedAt)

	token, _, err := tm.Issue("admin")
	require.NoError(t, err)

	// The instant of expiry already counts as expired.
	tm.now = fixedClock(issuedAt.Add(161 * time.Second))
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 160)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"two segments": "abc.def",
	} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, name)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 160)
	token, _, err := tm.Issue("admin")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tm.Verify(tampered)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 160).Issue("admin")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 160).Verify(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestVerifyRejectsOtherSigningMethods(t *testing.T) {
	claims := &Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("test-secret", 160).Verify(foreign)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestRefreshIssuesLaterExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret", 160)
	issuedAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	tm.now = fixedClock(issuedAt)

	original, originalExp, err := tm.Issue("admin")
	require.NoError(t, err)

	tm.now = fixedClock(issuedAt.Add(30 * time.Second))
	refreshed, refreshedExp, err := tm.Refresh(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, refreshed)
	assert.True(t, refreshedExp.After(originalExp))

	claims, err := tm.Verify(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestRefreshPropagatesVerifyClassification(t *testing.T) {
	tm := NewTokenManager("test-secret", 160)
	issuedAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	tm.now = fixedClock(issuedAt)

	token, _, err := tm.Issue("admin")
	require.NoError(t, err)

	tm.now = fixedClock(issuedAt.Add(time.Hour))
	_, _, err = tm.Refresh(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, _, err = tm.Refresh("garbage")
	assert.ErrorIs(t, err, ErrMalformedToken)
}
