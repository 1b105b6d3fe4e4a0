package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache stores entries in Redis so multiple gateway instances share one
// cache. Entry keys live under "<prefix>entry:", tag sets under "<prefix>tag:".
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache instance
func NewRedisCache(client *redis.Client, keyPrefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisCache) entryKey(key string) string {
	return r.prefix + "entry:" + key
}

func (r *RedisCache) tagKey(tag string) string {
	return r.prefix + "tag:" + tag
}

// Get retrieves a value from Redis. Any backend error reads as a miss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.entryKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value with TTL and registers it in each tag's member set.
// Tag sets keep the longest TTL of their members so invalidation stays
// possible for as long as any member is alive.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	if err := r.client.Set(ctx, r.entryKey(key), value, ttl).Err(); err != nil {
		return err
	}

	for _, tag := range tags {
		tagKey := r.tagKey(tag)
		if err := r.client.SAdd(ctx, tagKey, key).Err(); err != nil {
			return err
		}
		if ttl > 0 {
			// Never shrink a tag set's lifetime below a longer-lived member
			cur, err := r.client.TTL(ctx, tagKey).Result()
			if err == nil && cur < ttl {
				r.client.Expire(ctx, tagKey, ttl)
			}
		}
	}
	return nil
}

// InvalidateTag deletes every entry registered under tag, then the tag set
// itself. Returns the number of entries that actually existed.
func (r *RedisCache) InvalidateTag(ctx context.Context, tag string) (int, error) {
	tagKey := r.tagKey(tag)

	members, err := r.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		r.client.Del(ctx, tagKey)
		return 0, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		keys[i] = r.entryKey(member)
	}

	removed, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, err
	}
	r.client.Del(ctx, tagKey)

	return int(removed), nil
}

// Entries counts entry keys under the prefix. Monitoring only; a scan error
// yields the partial count.
func (r *RedisCache) Entries() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	iter := r.client.Scan(ctx, 0, r.prefix+"entry:*", 0).Iterator()
	n := 0
	for iter.Next(ctx) {
		n++
	}
	return n
}

// Close is a no-op: the Redis client is shared and owned by the application.
func (r *RedisCache) Close() {}

// Ensure RedisCache implements Cache interface
var _ Cache = (*RedisCache)(nil)
