package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisCache, *redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, "test:"), client, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, _, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "op:abc", []byte(`{"team":"x"}`), time.Minute, nil))

	value, found := c.Get(ctx, "op:abc")
	assert.True(t, found)
	assert.Equal(t, []byte(`{"team":"x"}`), value)
}

func TestRedisCache_MissOnUnknownKey(t *testing.T) {
	c, _, _ := setupRedisCache(t)

	value, found := c.Get(context.Background(), "missing")
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, _, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Minute, nil))

	_, found := c.Get(ctx, "short")
	require.True(t, found)

	mr.FastForward(2 * time.Minute)

	_, found = c.Get(ctx, "short")
	assert.False(t, found)
}

func TestRedisCache_InvalidateTag(t *testing.T) {
	c, _, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "roster:1", []byte("a"), time.Minute, []string{"league:nfl.l.1"}))
	require.NoError(t, c.Set(ctx, "standings:1", []byte("b"), time.Minute, []string{"league:nfl.l.1"}))
	require.NoError(t, c.Set(ctx, "roster:2", []byte("c"), time.Minute, []string{"league:nfl.l.2"}))

	removed, err := c.InvalidateTag(ctx, "league:nfl.l.1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, found := c.Get(ctx, "roster:1")
	assert.False(t, found)
	_, found = c.Get(ctx, "standings:1")
	assert.False(t, found)
	_, found = c.Get(ctx, "roster:2")
	assert.True(t, found)

	// The tag set itself is gone, so a second invalidation is a no-op
	removed, err = c.InvalidateTag(ctx, "league:nfl.l.1")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestRedisCache_TagSetOutlivesShorterEntries(t *testing.T) {
	c, client, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "long", []byte("a"), 2*time.Hour, []string{"league:nfl.l.1"}))
	require.NoError(t, c.Set(ctx, "brief", []byte("b"), time.Minute, []string{"league:nfl.l.1"}))

	// The short write must not shrink the tag set's lifetime below the
	// long-lived member's TTL
	ttl, err := client.TTL(ctx, "test:tag:league:nfl.l.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Hour)
}

func TestRedisCache_TagSetGrowsWithLongerEntries(t *testing.T) {
	c, client, _ := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "brief", []byte("b"), time.Minute, []string{"week:4"}))
	require.NoError(t, c.Set(ctx, "long", []byte("a"), 2*time.Hour, []string{"week:4"}))

	ttl, err := client.TTL(ctx, "test:tag:week:4").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Hour)
}

func TestRedisCache_FailsOpenWhenRedisDown(t *testing.T) {
	c, _, mr := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("v"), time.Minute, nil))
	mr.Close()

	value, found := c.Get(ctx, "key")
	assert.False(t, found, "backend errors must read as misses")
	assert.Nil(t, value)

	err := c.Set(ctx, "other", []byte("v"), time.Minute, nil)
	assert.Error(t, err, "write errors are reported for the caller to log")

	_, err = c.InvalidateTag(ctx, "any")
	assert.Error(t, err)
}

func TestRedisCache_Entries(t *testing.T) {
	c, client, _ := setupRedisCache(t)
	ctx := context.Background()

	assert.Equal(t, 0, c.Entries())

	c.Set(ctx, "a", []byte("1"), time.Minute, []string{"t"})
	c.Set(ctx, "b", []byte("2"), time.Minute, nil)

	// Tag sets do not count as entries
	assert.Equal(t, 2, c.Entries())

	// Unrelated keys outside the entry namespace are not counted either
	require.NoError(t, client.Set(ctx, "test:other", "x", 0).Err())
	assert.Equal(t, 2, c.Entries())
}

func TestCacheFactory(t *testing.T) {
	t.Run("memory backend", func(t *testing.T) {
		c, err := New(Config{Backend: BackendMemory})
		require.NoError(t, err)
		require.NotNil(t, c)
		_, ok := c.(*MemoryCache)
		assert.True(t, ok)
	})

	t.Run("redis backend", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		c, err := New(Config{Backend: BackendRedis, KeyPrefix: "x:", RedisClient: client})
		require.NoError(t, err)
		_, ok := c.(*RedisCache)
		assert.True(t, ok)
	})

	t.Run("redis backend requires client", func(t *testing.T) {
		c, err := New(Config{Backend: BackendRedis})
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("unknown backend", func(t *testing.T) {
		c, err := New(Config{Backend: "disk"})
		assert.Error(t, err)
		assert.Nil(t, c)
	})
}
