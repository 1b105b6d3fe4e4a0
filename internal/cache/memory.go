package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache wraps patrickmn/go-cache with a tag index for grouped
// invalidation. Returned byte slices alias the stored value; callers must
// not mutate them.
type MemoryCache struct {
	store *gocache.Cache

	mu      sync.Mutex
	tags    map[string]map[string]struct{} // tag → set of keys
	keyTags map[string][]string            // key → tags, for eviction pruning
}

// NewMemoryCache creates an in-memory cache. Expired entries are swept every
// cleanupInterval; the tag index is pruned through the store's eviction hook.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		store:   gocache.New(defaultTTL, cleanupInterval),
		tags:    make(map[string]map[string]struct{}),
		keyTags: make(map[string][]string),
	}
	c.store.OnEvicted(func(key string, _ interface{}) {
		c.removeKey(key)
	})
	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	item, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	value, ok := item.([]byte)
	if !ok {
		return nil, false
	}
	return value, true
}

// Set stores a value with TTL and tags, replacing any previous entry and its
// tag memberships.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error {
	c.mu.Lock()
	c.detachLocked(key)
	if len(tags) > 0 {
		c.keyTags[key] = append([]string(nil), tags...)
		for _, tag := range tags {
			set := c.tags[tag]
			if set == nil {
				set = make(map[string]struct{})
				c.tags[tag] = set
			}
			set[key] = struct{}{}
		}
	}
	c.mu.Unlock()

	c.store.Set(key, value, ttl)
	return nil
}

// InvalidateTag drops every live entry carrying tag.
func (c *MemoryCache) InvalidateTag(ctx context.Context, tag string) (int, error) {
	c.mu.Lock()
	set := c.tags[tag]
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	removed := 0
	for _, key := range keys {
		if _, found := c.store.Get(key); found {
			// Delete fires the eviction hook, which prunes the index
			c.store.Delete(key)
			removed++
		} else {
			// Expired but not yet swept; prune the index directly
			c.removeKey(key)
		}
	}
	return removed, nil
}

// Entries returns the number of items in the store, including expired items
// not yet swept.
func (c *MemoryCache) Entries() int {
	return c.store.ItemCount()
}

// Close flushes the store and drops the tag index.
func (c *MemoryCache) Close() {
	c.store.Flush()

	c.mu.Lock()
	c.tags = make(map[string]map[string]struct{})
	c.keyTags = make(map[string][]string)
	c.mu.Unlock()
}

// removeKey drops key from every tag set it belongs to.
func (c *MemoryCache) removeKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked(key)
}

// detachLocked removes key's tag memberships. Caller must hold mu.
func (c *MemoryCache) detachLocked(key string) {
	for _, tag := range c.keyTags[key] {
		if set := c.tags[tag]; set != nil {
			delete(set, key)
			if len(set) == 0 {
				delete(c.tags, tag)
			}
		}
	}
	delete(c.keyTags, key)
}

// Ensure MemoryCache implements Cache interface
var _ Cache = (*MemoryCache)(nil)
