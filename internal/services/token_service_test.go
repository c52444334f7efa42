package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/constants"
	"github.com/yukikurage/taskboard-api/internal/testutil"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	tokens := NewTokenService(testutil.Secret("test-secret"), time.Hour)

	token, err := tokens.Issue("user-1")
	require.NoError(t, err)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, constants.RoleUser, identity.Role)
}

func TestTokenService_Verify(t *testing.T) {
	tokens := NewTokenService(testutil.Secret("test-secret"), time.Hour)

	expired := NewTokenService(testutil.Secret("test-secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-1")
	require.NoError(t, err)

	otherKey, err := NewTokenService(testutil.Secret("other-secret"), time.Hour).Issue("user-1")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "not-a-token",
		"expired":         expiredToken,
		"wrong secret":    otherKey,
		"unsigned":        noneToken,
		"missing user id": noSubject,
		"empty":           "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	tokens := NewTokenService(testutil.Secret("s"), 0)
	assert.Equal(t, constants.DefaultTokenTTL, tokens.ttl)
}
