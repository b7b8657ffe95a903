package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roksva123/go-taskboard-backend/internal/testutil"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	hash, err := HashPassword("hashed-pass")
	require.NoError(t, err)
	store.AddUser("alice", hash, "admin")
	store.AddUser("bob", "plain-pass", "employee")

	ti := newIssuer()
	svc := NewAuthService(store, ti, true, zap.NewNop())

	t.Run("bcrypt credential", func(t *testing.T) {
		token, user, err := svc.Login(ctx, "alice", "hashed-pass")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Role)
		p, err := ti.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("legacy plaintext credential", func(t *testing.T) {
		_, user, err := svc.Login(ctx, "bob", "plain-pass")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "mallory", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("plaintext disabled", func(t *testing.T) {
		strict := NewAuthService(store, NewTokenIssuer("k", "i", "a", time.Hour), false, zap.NewNop())
		_, _, err := strict.Login(ctx, "bob", "plain-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemStore()
	store.AddUser("root", "old", "employee")
	svc := NewAuthService(store, newIssuer(), false, zap.NewNop())

	require.NoError(t, svc.SeedAdmin(ctx, "root", "new-pass"))

	u, err := store.GetUserByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	ok, _ := VerifyPassword(u.PasswordHash, "new-pass", false)
	assert.True(t, ok)

	assert.ErrorIs(t, svc.SeedAdmin(ctx, "", "x"), ErrInvalidInput)
}
