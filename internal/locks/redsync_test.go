package locks

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedsyncManager(t *testing.T) (*RedsyncManager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	manager, err := NewRedsyncManager(client)
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager, mr
}

func TestNewRedsyncManager_NilClient(t *testing.T) {
	manager, err := NewRedsyncManager(nil)
	assert.Error(t, err)
	assert.Nil(t, manager)
	assert.Contains(t, err.Error(), "redis client is required")
}

func TestRedsyncManager_AcquireAndRelease(t *testing.T) {
	manager, _ := setupRedsyncManager(t)
	ctx := context.Background()

	lock, err := manager.Acquire(ctx, "test-lock", 30*time.Second)
	require.NoError(t, err)
	require.NotNil(t, lock)
	assert.Equal(t, "test-lock", lock.Name())

	require.NoError(t, lock.Release(ctx))

	// Released in Redis, so the same name can be taken again.
	again, err := manager.Acquire(ctx, "test-lock", 30*time.Second)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestRedsyncManager_InvalidTTL(t *testing.T) {
	manager, _ := setupRedsyncManager(t)

	_, err := manager.Acquire(context.Background(), "test-lock", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl must be positive")
}

func TestRedsyncManager_Contention(t *testing.T) {
	manager, mr := setupRedsyncManager(t)
	ctx := context.Background()

	held, err := manager.Acquire(ctx, "contended", 30*time.Second)
	require.NoError(t, err)
	defer held.Release(ctx)

	// A second replica sharing the same Redis cannot take the lock.
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	other, err := NewRedsyncManager(client)
	require.NoError(t, err)
	defer other.Close()

	lock, err := other.Acquire(ctx, "contended", 30*time.Second)
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.Nil(t, lock)
}

func TestRedsyncManager_ReleaseIsIdempotent(t *testing.T) {
	manager, _ := setupRedsyncManager(t)
	ctx := context.Background()

	lock, err := manager.Acquire(ctx, "test-lock", 30*time.Second)
	require.NoError(t, err)

	require.NoError(t, lock.Release(ctx))
	assert.NoError(t, lock.Release(ctx))
}

func TestRedsyncManager_RefreshLock(t *testing.T) {
	manager, mr := setupRedsyncManager(t)
	ctx := context.Background()

	lock, err := manager.AcquireRefreshLock(ctx)
	require.NoError(t, err)
	defer lock.Release(ctx)

	assert.Equal(t, "token-refresh", lock.Name())

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	other, err := NewRedsyncManager(client)
	require.NoError(t, err)
	defer other.Close()

	_, err = other.AcquireRefreshLock(ctx)
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestRedsyncManager_WarmLock(t *testing.T) {
	manager, _ := setupRedsyncManager(t)
	ctx := context.Background()

	lock, err := manager.AcquireWarmLock(ctx, "popular-leagues")
	require.NoError(t, err)
	defer lock.Release(ctx)

	assert.Equal(t, "warm:popular-leagues", lock.Name())
}

func TestRedsyncManager_CloseReleasesHeldLocks(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	manager, err := NewRedsyncManager(client)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = manager.Acquire(ctx, "lock-a", 30*time.Second)
	require.NoError(t, err)
	_, err = manager.Acquire(ctx, "lock-b", 30*time.Second)
	require.NoError(t, err)

	require.NoError(t, manager.Close())

	// Both names are free for the next instance.
	other, err := NewRedsyncManager(client)
	require.NoError(t, err)
	defer other.Close()

	lockA, err := other.Acquire(ctx, "lock-a", 30*time.Second)
	require.NoError(t, err)
	defer lockA.Release(ctx)

	lockB, err := other.Acquire(ctx, "lock-b", 30*time.Second)
	require.NoError(t, err)
	defer lockB.Release(ctx)
}
