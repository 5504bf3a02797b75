package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClementJar/IDV-sub000/internal/auth"
	jwttoken "github.com/ClementJar/IDV-sub000/internal/jwt_token"
	dErrors "github.com/ClementJar/IDV-sub000/pkg/domain-errors"
)

func newAuthService() (*auth.Service, *auth.InMemoryUserStore) {
	store := auth.NewInMemoryUserStore()
	store.Add(auth.SeedUsers()...)
	tokens := jwttoken.NewJWTService("test-key", "test-issuer", "test-audience")
	return auth.NewService(store, tokens, time.Hour, slog.New(slog.DiscardHandler)), store
}

func TestLogin_Success(t *testing.T) {
	service, _ := newAuthService()

	result, err := service.Login(context.Background(), "agent", "agent123")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, time.Hour, result.ExpiresIn)
	assert.Equal(t, "agent", result.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _ := newAuthService()

	_, err := service.Login(context.Background(), "agent", "wrong")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	service, _ := newAuthService()

	_, wrongPassword := service.Login(context.Background(), "agent", "wrong")
	_, unknownUser := service.Login(context.Background(), "nobody", "agent123")

	// The two failure modes must be indistinguishable to the caller.
	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestMe(t *testing.T) {
	service, store := newAuthService()
	seeded, err := store.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)

	user, err := service.Me(context.Background(), seeded.ID)

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestMe_UnknownUser(t *testing.T) {
	service, _ := newAuthService()

	_, err := service.Me(context.Background(), "missing-id")

	require.ErrorIs(t, err, dErrors.New(dErrors.CodeNotFound, "user not found"))
}

func TestLoginTokenRoundTrips(t *testing.T) {
	store := auth.NewInMemoryUserStore()
	store.Add(auth.SeedUsers()...)
	tokens := jwttoken.NewJWTService("test-key", "test-issuer", "test-audience")
	service := auth.NewService(store, tokens, time.Hour, slog.New(slog.DiscardHandler))

	result, err := service.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}
