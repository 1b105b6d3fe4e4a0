package ratelimit

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisWindowLimiter shares one sliding window across gateway instances
// through a Redis sorted set. Each recorded request becomes a member scored
// by its timestamp in milliseconds; checks trim members older than the
// window before counting.
//
// Redis failures fail open: a gateway that cannot reach Redis admits the
// request rather than stalling all provider traffic.
type RedisWindowLimiter struct {
	rdb      *redis.Client
	capacity int
	window   time.Duration
	key      string

	seq int64
	now func() time.Time
}

// NewRedisWindowLimiter creates a Redis-backed sliding window limiter.
func NewRedisWindowLimiter(config Config, rdb *redis.Client) (*RedisWindowLimiter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = "ratelimit:"
	}

	return &RedisWindowLimiter{
		rdb:      rdb,
		capacity: config.Capacity,
		window:   config.Window,
		key:      prefix + "requests",
		now:      time.Now,
	}, nil
}

// CanAdmit trims entries older than the window and reports whether another
// request fits. Returns true when Redis is unreachable.
func (l *RedisWindowLimiter) CanAdmit(ctx context.Context) bool {
	now := l.now()
	windowStart := now.Add(-l.window).UnixMilli()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, l.key, "0", strconv.FormatInt(windowStart, 10))
	countCmd := pipe.ZCard(ctx, l.key)

	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}

	return int(countCmd.Val()) < l.capacity
}

// Record adds the current request to the shared window. Errors are dropped;
// an unrecorded request only makes the limiter slightly more permissive.
func (l *RedisWindowLimiter) Record(ctx context.Context) {
	now := l.now()

	// Millisecond score plus a sequence suffix keeps members unique when
	// several requests land in the same millisecond.
	member := strconv.FormatInt(now.UnixMilli(), 10) + "-" + strconv.FormatInt(atomic.AddInt64(&l.seq, 1), 10)

	pipe := l.rdb.TxPipeline()
	pipe.ZAdd(ctx, l.key, &redis.Z{Score: float64(now.UnixMilli()), Member: member})
	pipe.Expire(ctx, l.key, l.window*2)
	_, _ = pipe.Exec(ctx)
}

// TimeUntilReset returns how long until the oldest recorded request ages out
// of the window. Zero means a slot is free right now or Redis is unreachable.
func (l *RedisWindowLimiter) TimeUntilReset(ctx context.Context) time.Duration {
	entries, err := l.rdb.ZRangeWithScores(ctx, l.key, 0, 0).Result()
	if err != nil || len(entries) == 0 {
		return 0
	}

	oldest := time.UnixMilli(int64(entries[0].Score))
	remaining := l.window - l.now().Sub(oldest)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stats returns rate limiter statistics
func (l *RedisWindowLimiter) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"backend":  "redis",
		"capacity": l.capacity,
		"window":   l.window.String(),
		"key":      l.key,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	windowStart := l.now().Add(-l.window).UnixMilli()
	count, err := l.rdb.ZCount(ctx, l.key, strconv.FormatInt(windowStart, 10), "+inf").Result()
	if err == nil {
		stats["count"] = int(count)
		remaining := l.capacity - int(count)
		if remaining < 0 {
			remaining = 0
		}
		stats["remaining"] = remaining
	}

	return stats
}

// Health checks Redis connectivity.
func (l *RedisWindowLimiter) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return l.rdb.Ping(ctx).Err()
}

// Ensure RedisWindowLimiter implements Limiter interface
var _ Limiter = (*RedisWindowLimiter)(nil)
