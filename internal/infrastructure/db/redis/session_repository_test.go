package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestSessionRepository_CreateFind(t *testing.T) {
	srv, client := newTestClient(t)
	repo := NewSessionRepository(client)
	now := time.Now().UTC().Truncate(time.Second)
	repo.now = func() time.Time { return now }

	err := repo.Create(context.Background(), &domain.Session{
		Token:     "tok-1",
		UserID:    42,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, srv.TTL("session:tok-1"))

	got, err := repo.Find(context.Background(), "tok-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestSessionRepository_FindUnknown(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewSessionRepository(client)

	got, err := repo.Find(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_CreateExpired(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewSessionRepository(client)

	err := repo.Create(context.Background(), &domain.Session{Token: "old", UserID: 1, ExpiresAt: time.Now().Add(-time.Minute)})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSessionRepository_RecordExpires(t *testing.T) {
	srv, client := newTestClient(t)
	repo := NewSessionRepository(client)

	require.NoError(t, repo.Create(context.Background(), &domain.Session{
		Token: "tok", UserID: 7, ExpiresAt: time.Now().Add(time.Minute),
	}))
	srv.FastForward(2 * time.Minute)

	got, err := repo.Find(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_DeleteIsIdempotent(t *testing.T) {
	srv, client := newTestClient(t)
	repo := NewSessionRepository(client)

	require.NoError(t, repo.Create(context.Background(), &domain.Session{
		Token: "tok", UserID: 7, ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.Delete(context.Background(), "tok"))
	require.NoError(t, repo.Delete(context.Background(), "tok"))

	assert.False(t, srv.Exists("session:tok"))
	members, _ := srv.SMembers("user_sessions:7")
	assert.Empty(t, members)
}

func TestSessionRepository_DeleteAllForUser(t *testing.T) {
	srv, client := newTestClient(t)
	repo := NewSessionRepository(client)
	exp := time.Now().Add(time.Hour)

	for _, s := range []*domain.Session{
		{Token: "a", UserID: 7, ExpiresAt: exp},
		{Token: "b", UserID: 7, ExpiresAt: exp},
		{Token: "c", UserID: 8, ExpiresAt: exp},
	} {
		require.NoError(t, repo.Create(context.Background(), s))
	}

	require.NoError(t, repo.DeleteAllForUser(context.Background(), 7))

	assert.False(t, srv.Exists("session:a"))
	assert.False(t, srv.Exists("session:b"))
	assert.False(t, srv.Exists("user_sessions:7"))
	assert.True(t, srv.Exists("session:c"))
}
