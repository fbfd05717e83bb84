package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "refresh:user:42", userKey(42))
	assert.Equal(t, "refresh:token:abc", tokenKey("abc"))
}

func TestRedisStore_RejectsInvalidInputWithoutNetwork(t *testing.T) {
	s := NewRedisStore(nil, time.Hour)
	assert.Error(t, s.Save(context.Background(), Binding{}))

	_, err := s.FindByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)

	assert.Error(t, NewRedisStore(nil, 0).Save(context.Background(), Binding{UserID: 1, RefreshToken: "r"}))
}

func TestRedisStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))

	b, err := s.FindByToken(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, Binding{UserID: 1, RefreshToken: "r1"}, b)

	_, err = s.FindByToken(ctx, "missing")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestRedisStore_SaveReplacesPreviousBinding(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "old"}))
	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "new"}))

	_, err := s.FindByToken(ctx, "old")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
	assert.False(t, mr.Exists(tokenKey("old")), "previous token index must be removed")

	b, err := s.FindByToken(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.UserID)

	got, err := mr.Get(userKey(1))
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestRedisStore_SaveSameTokenTwice(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))
	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))

	b, err := s.FindByToken(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.UserID)
}

func TestRedisStore_DeleteByUserIDIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))
	require.NoError(t, s.DeleteByUserID(ctx, 1))
	require.NoError(t, s.DeleteByUserID(ctx, 1))
	require.NoError(t, s.DeleteByUserID(ctx, 99))

	_, err := s.FindByToken(ctx, "r1")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
	assert.False(t, mr.Exists(userKey(1)))
	assert.False(t, mr.Exists(tokenKey("r1")))
}

func TestRedisStore_DeleteLeavesOtherUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStore(t, time.Hour)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))
	require.NoError(t, s.Save(ctx, Binding{UserID: 2, RefreshToken: "r2"}))
	require.NoError(t, s.DeleteByUserID(ctx, 1))

	b, err := s.FindByToken(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.UserID)
}

func TestRedisStore_BindingsExpireWithTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Minute)

	require.NoError(t, s.Save(ctx, Binding{UserID: 1, RefreshToken: "r1"}))
	assert.Equal(t, time.Minute, mr.TTL(userKey(1)))
	assert.Equal(t, time.Minute, mr.TTL(tokenKey("r1")))

	mr.FastForward(time.Minute + time.Second)
	_, err := s.FindByToken(ctx, "r1")
	assert.ErrorIs(t, err, ErrUnknownRefreshToken)
}

func TestRedisStore_ServerErrorIsNotUnknownToken(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t, time.Hour)
	mr.Close()

	_, err := s.FindByToken(ctx, "r1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownRefreshToken)
}
