package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessRoundTrip(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.SignAccess(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyAccess(token)
	assert.NoError(t, err)

	subject, err := claims.SubjectID()
	assert.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// Negative TTL produces an already-expired token with a valid signature.
	svc := NewJWTService("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	userID := uuid.New()

	token, err := svc.SignAccess(userID)
	assert.NoError(t, err)

	_, err = svc.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	verifier := NewJWTService("other-access-secret", "other-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := issuer.SignAccess(userID)
	assert.NoError(t, err)

	_, err = verifier.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestJWTService_SecretsAreIndependent(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	access, err := svc.SignAccess(userID)
	assert.NoError(t, err)
	refresh, err := svc.SignRefresh(userID)
	assert.NoError(t, err)

	// An access token must not verify as a refresh token and vice versa.
	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenSignature)
	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyAccess(token)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", token)
	}
}

func TestJWTService_SignPair(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	pair, err := svc.SignPair(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	_, err = svc.VerifyAccess(pair.Access)
	assert.NoError(t, err)
	_, err = svc.VerifyRefresh(pair.Refresh)
	assert.NoError(t, err)
}
