package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestAuthService(repo *memUserRepo) AuthService {
	return NewAuthService(repo, testSecret, time.Hour, "workout-tracker")
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123", "Alice A")
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")

	token, loggedIn, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Empty(t, loggedIn.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, "bob", "alice@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "alice", "wrong-password")
	_, _, unknownUser := svc.Login(ctx, "nobody", "password123")

	assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownUser, ErrAuthenticationFailed)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginTokenClaims(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)

	claims := &AuthClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "workout-tracker", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(newMemUserRepo())

	user, err := svc.Register(ctx, "alice", "alice@example.com", "password123", "Alice A")
	require.NoError(t, err)

	fetched, err := svc.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Username, fetched.Username)
	assert.Empty(t, fetched.PasswordHash)
}
