package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSessionSecret = "session-secret-at-least-16"
	testResetSecret   = "reset-secret-at-least-16!!"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(TokenConfig{
		SessionSecret: testSessionSecret,
		SessionTTL:    time.Hour,
		ResetSecret:   testResetSecret,
		ResetTTL:      15 * time.Minute,
	})
	require.NoError(t, err)
	return ts
}

func TestNewTokenService_ShortSecrets(t *testing.T) {
	_, err := NewTokenService(TokenConfig{SessionSecret: "short", ResetSecret: testResetSecret})
	assert.Error(t, err)

	_, err = NewTokenService(TokenConfig{SessionSecret: testSessionSecret, ResetSecret: "short"})
	assert.Error(t, err)
}

func TestSessionToken_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, expiresAt, err := ts.IssueSession("acc-1", "k@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ts.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "k@example.com", claims.Email)
}

func TestSessionToken_Expired(t *testing.T) {
	ts := newTestTokenService(t)
	issued := time.Now().Add(-2 * time.Hour)
	ts.now = func() time.Time { return issued }
	token, _, err := ts.IssueSession("acc-1", "")
	require.NoError(t, err)

	ts.now = time.Now
	_, err = ts.ParseSession(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionToken_TamperedOrForeign(t *testing.T) {
	ts := newTestTokenService(t)
	token, _, err := ts.IssueSession("acc-1", "")
	require.NoError(t, err)

	_, err = ts.ParseSession(token + "x")
	assert.Error(t, err)

	other, err := NewTokenService(TokenConfig{SessionSecret: "another-secret-of-16+", ResetSecret: testResetSecret})
	require.NoError(t, err)
	_, err = other.ParseSession(token)
	assert.Error(t, err)
}

func TestSessionToken_RejectsNoneAlgorithm(t *testing.T) {
	ts := newTestTokenService(t)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   "acc-1",
			Audience:  jwt.ClaimStrings{AudienceSession},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.ParseSession(token)
	assert.Error(t, err)
}

func TestResetToken_CannotBeUsedAsSession(t *testing.T) {
	ts := newTestTokenService(t)

	reset, err := ts.IssueReset("acc-1", "abcd")
	require.NoError(t, err)
	_, err = ts.ParseSession(reset)
	assert.Error(t, err)

	session, _, err := ts.IssueSession("acc-1", "")
	require.NoError(t, err)
	_, _, err = ts.ParseReset(session)
	assert.Error(t, err)

	id, fpr, err := ts.ParseReset(reset)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)
	assert.Equal(t, "abcd", fpr)
}
