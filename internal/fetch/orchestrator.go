// Package fetch is the read path of the gateway. The Orchestrator composes
// the response cache, the retry executor and the provider client behind one
// Fetch call: cache hit returns immediately, cache miss takes a slot from a
// bounded gate, runs the provider call through the retry executor and stores
// the result. Concurrent fetches for the same derived key share a single
// underlying call.
package fetch

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"fantasy-gateway/internal/cache"
	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/provider"
	"fantasy-gateway/internal/retry"
)

// Caller is the provider call surface the orchestrator drives on a cache
// miss. *provider.Client implements it.
type Caller interface {
	Call(ctx context.Context, op provider.Operation, params map[string]string) ([]byte, error)
}

// Config holds the orchestrator tunables.
type Config struct {
	// MaxConcurrent bounds simultaneous in-flight provider calls.
	MaxConcurrent int
	// RequestTimeout is the budget for one provider call. Batches without
	// an explicit BatchTimeout get RequestTimeout times the item count.
	RequestTimeout time.Duration
	// BatchTimeout overrides the derived batch deadline when positive.
	BatchTimeout time.Duration
}

// DefaultConfig returns the standard orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:  10,
		RequestTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = defaults.MaxConcurrent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	return c
}

// Stats is a snapshot of orchestrator counters for the status API.
type Stats struct {
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Deduped       int64 `json:"deduped"`
	Invalidations int64 `json:"invalidations"`
	CachedEntries int   `json:"cached_entries"`
}

// Orchestrator serves operation fetches from cache, deduplicates concurrent
// misses and bounds in-flight provider calls.
type Orchestrator struct {
	config   Config
	caller   Caller
	cache    cache.Cache
	executor *retry.Executor
	gate     *semaphore.Weighted
	flights  singleflight.Group
	logger   logging.Logger

	hits          int64
	misses        int64
	deduped       int64
	invalidations int64
}

// NewOrchestrator creates a fetch orchestrator.
func NewOrchestrator(caller Caller, responseCache cache.Cache, executor *retry.Executor, config Config, logger logging.Logger) (*Orchestrator, error) {
	if caller == nil {
		return nil, errors.ConfigError("provider caller is required")
	}
	if responseCache == nil {
		return nil, errors.ConfigError("response cache is required")
	}
	if executor == nil {
		return nil, errors.ConfigError("retry executor is required")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	config = config.withDefaults()

	return &Orchestrator{
		config:   config,
		caller:   caller,
		cache:    responseCache,
		executor: executor,
		gate:     semaphore.NewWeighted(int64(config.MaxConcurrent)),
		logger:   logger,
	}, nil
}

// CacheKey derives the deterministic cache key for an operation and its
// parameters. Parameters are canonicalized by sorted key, so callers need
// not worry about map iteration order.
func CacheKey(op provider.Operation, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := md5.Sum([]byte(string(op) + "?" + strings.Join(pairs, "&")))
	return string(op) + ":" + hex.EncodeToString(sum[:])
}

// Fetch returns the response bytes for op, from cache when possible. A ttl
// of zero and nil tags fall back to the operation registry defaults. The
// returned bytes may be shared with concurrent callers and must be treated
// as read-only.
func (o *Orchestrator) Fetch(ctx context.Context, op provider.Operation, params map[string]string, ttl time.Duration, tags []string) ([]byte, error) {
	if !op.Valid() {
		return nil, errors.ValidationError(fmt.Sprintf("unknown operation: %s", op))
	}
	if ttl <= 0 {
		ttl = op.CacheTTL()
	}
	if tags == nil {
		tags = op.DefaultTags(params)
	}

	key := CacheKey(op, params)
	if value, ok := o.cache.Get(ctx, key); ok {
		atomic.AddInt64(&o.hits, 1)
		return value, nil
	}
	atomic.AddInt64(&o.misses, 1)

	value, err, shared := o.flights.Do(key, func() (interface{}, error) {
		return o.fetchAndStore(ctx, op, params, key, ttl, tags)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		atomic.AddInt64(&o.deduped, 1)
	}
	return value.([]byte), nil
}

// fetchAndStore runs the provider call for one cache miss. It re-checks the
// cache first so a caller that lost the flight race to a just-completed
// leader does not pay for a second provider call.
func (o *Orchestrator) fetchAndStore(ctx context.Context, op provider.Operation, params map[string]string, key string, ttl time.Duration, tags []string) (interface{}, error) {
	if value, ok := o.cache.Get(ctx, key); ok {
		return value, nil
	}

	if err := o.gate.Acquire(ctx, 1); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.TimeoutError(fmt.Sprintf("fetch gate for %s", op))
		}
		return nil, err
	}
	defer o.gate.Release(1)

	result, err := o.executor.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return o.caller.Call(ctx, op, params)
	})
	if err != nil {
		return nil, err
	}

	body := result.([]byte)
	if setErr := o.cache.Set(ctx, key, body, ttl, tags); setErr != nil {
		o.logger.Warn("Failed to cache fetch result",
			logging.Field{Key: "operation", Value: string(op)},
			logging.Field{Key: "error", Value: setErr.Error()},
		)
	}
	return body, nil
}

// InvalidateTag drops every cached entry carrying tag and returns how many
// entries were removed.
func (o *Orchestrator) InvalidateTag(ctx context.Context, tag string) (int, error) {
	removed, err := o.cache.InvalidateTag(ctx, tag)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		atomic.AddInt64(&o.invalidations, int64(removed))
		o.logger.Info("Cache entries invalidated",
			logging.Field{Key: "tag", Value: tag},
			logging.Field{Key: "removed", Value: removed},
		)
	}
	return removed, nil
}

// Stats returns a snapshot of the orchestrator counters.
func (o *Orchestrator) Stats() Stats {
	return Stats{
		Hits:          atomic.LoadInt64(&o.hits),
		Misses:        atomic.LoadInt64(&o.misses),
		Deduped:       atomic.LoadInt64(&o.deduped),
		Invalidations: atomic.LoadInt64(&o.invalidations),
		CachedEntries: o.cache.Entries(),
	}
}
