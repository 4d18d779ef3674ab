package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/pilot-auth/internal/models"
	"github.com/hongminglow/pilot-auth/internal/storage"
)

func TestStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := New()

	created, err := s.CreateUser(ctx, models.User{Account: "alice", Email: "Alice@Example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byAccount, err := s.FindByAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byAccount.ID)

	byEmail, err := s.FindByAccount(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestStore_Duplicates(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateUser(ctx, models.User{Account: "alice", Email: "a@x.io"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Account: "alice", Email: "other@x.io"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateUser(ctx, models.User{Account: "bob", Email: "A@X.IO"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestStore_AccountEmailCrossCollision(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.CreateUser(ctx, models.User{Account: "carol@x.io", Email: "carol@y.io"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Account: "dave", Email: "Carol@X.io"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.CreateUser(ctx, models.User{Account: "carol@y.io", Email: "dave@x.io"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := s.FindByAccount(ctx, "carol@x.io")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestStore_FindByAccountPrefersAccount(t *testing.T) {
	ctx := context.Background()
	s := New()
	// Seed rows directly: CreateUser would refuse this pair.
	s.users[1] = models.User{ID: 1, Account: "erin", Email: "shared@x.io"}
	s.users[2] = models.User{ID: 2, Account: "shared@x.io", Email: "frank@x.io"}

	for range 20 {
		got, err := s.FindByAccount(ctx, "shared@x.io")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.FindByID(ctx, 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.FindByAccount(ctx, "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.RotateTokenVersion(ctx, 9)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RotateTokenVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	u, err := s.CreateUser(ctx, models.User{Account: "alice", Email: "a@x.io"})
	require.NoError(t, err)

	v, err := s.RotateTokenVersion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = s.RotateTokenVersion(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	got, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.TokenVersion)
}
