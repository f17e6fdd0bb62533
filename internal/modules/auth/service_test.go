package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenm/MapMe-sub002/internal/models"
	pkgjwt "github.com/xenm/MapMe-sub002/internal/pkg/jwt"
	"github.com/xenm/MapMe-sub002/internal/repository/memory"
)

func newTestAuth() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Users, store.Profiles, time.Hour), store
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	svc, store := newTestAuth()
	ctx := context.Background()

	u, err := svc.Register(ctx, &RegisterDTO{
		Username: "alice",
		Password: "correct horse battery",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "correct horse battery", u.PasswordHash, "password stored in plain text")

	p, err := store.Profiles.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.DisplayName, "display name defaults to username")
	assert.Equal(t, models.VisibilityPublic, p.Visibility)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDTO{Username: "alice", Password: "password-one"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterDTO{Username: "Alice", Password: "password-two"})
	assert.ErrorIs(t, err, errUsernameTaken, "usernames differ only by case")
}

func TestLoginReturnsValidToken(t *testing.T) {
	svc, store := newTestAuth()
	ctx := context.Background()

	u, err := svc.Register(ctx, &RegisterDTO{Username: "alice", Password: "open sesame 123"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, &LoginDTO{Username: "alice", Password: "open sesame 123"}, "203.0.113.7")
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	stored, err := store.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
	assert.Equal(t, "203.0.113.7", stored.LastLoginIP)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuth()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDTO{Username: "alice", Password: "open sesame 123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginDTO{Username: "alice", Password: "wrong"}, "")
	assert.ErrorIs(t, err, errBadCredentials)

	// Unknown users get the same error as wrong passwords.
	_, err = svc.Login(ctx, &LoginDTO{Username: "nobody", Password: "whatever"}, "")
	assert.ErrorIs(t, err, errBadCredentials)
}
