package ban

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(t *testing.T, strikes int, duration time.Duration) (*List, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewList(rdb, strikes, duration, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func TestStrikeBansAfterThreshold(t *testing.T) {
	list, mr := newTestList(t, 3, 10*time.Minute)
	ctx := context.Background()

	for i := 1; i < 3; i++ {
		banned, err := list.Strike(ctx, "10.0.0.1", "/api/products")
		require.NoError(t, err)
		assert.False(t, banned, "strike %d should not ban", i)
	}
	banned, _, err := list.IsBanned(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, banned)

	banned, err = list.Strike(ctx, "10.0.0.1", "/api/products")
	require.NoError(t, err)
	assert.True(t, banned)

	banned, ttl, err := list.IsBanned(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, banned)
	assert.Equal(t, 10*time.Minute, ttl)

	assert.False(t, mr.Exists(strikeKeyPrefix+"10.0.0.1"))
	entries, err := mr.List(DailyBanLogKey)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "10.0.0.1 /api/products")
}

func TestBanExpires(t *testing.T) {
	list, mr := newTestList(t, 1, time.Minute)
	ctx := context.Background()

	banned, err := list.Strike(ctx, "10.0.0.2", "/api/restocks")
	require.NoError(t, err)
	require.True(t, banned)

	mr.FastForward(2 * time.Minute)

	banned, _, err = list.IsBanned(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestStrikesOutsideWindowAreForgotten(t *testing.T) {
	list, mr := newTestList(t, 2, time.Minute)
	ctx := context.Background()

	_, err := list.Strike(ctx, "10.0.0.3", "/api/products")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(strikeKeyPrefix+"10.0.0.3"))

	mr.FastForward(90 * time.Second)

	banned, err := list.Strike(ctx, "10.0.0.3", "/api/products")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestTargetsAreIndependent(t *testing.T) {
	list, _ := newTestList(t, 1, time.Minute)
	ctx := context.Background()

	_, err := list.Strike(ctx, "10.0.0.4", "/api/products")
	require.NoError(t, err)

	banned, _, err := list.IsBanned(ctx, "10.0.0.5")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestRedisUnavailable(t *testing.T) {
	list, mr := newTestList(t, 1, time.Minute)
	mr.Close()

	_, _, err := list.IsBanned(context.Background(), "10.0.0.6")
	assert.Error(t, err)
	_, err = list.Strike(context.Background(), "10.0.0.6", "/api/products")
	assert.Error(t, err)
}
