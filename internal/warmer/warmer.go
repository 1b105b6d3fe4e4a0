// Package warmer pre-fetches high-traffic provider resources on a cron
// schedule so interactive requests land on a warm cache.
package warmer

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/locks"
	"fantasy-gateway/internal/provider"
)

// DefaultSchedule runs a warm cycle every four hours.
const DefaultSchedule = "0 */4 * * *"

// warmConcurrency caps how many provider fetches a cycle keeps in flight.
const warmConcurrency = 3

// Fetcher is the orchestrator surface warm cycles fetch through. Zero TTL
// and nil tags fall back to the per-operation defaults.
type Fetcher interface {
	Fetch(ctx context.Context, op provider.Operation, params map[string]string, ttl time.Duration, tags []string) ([]byte, error)
}

// Config controls what a warm cycle fetches and when.
type Config struct {
	// Schedule is a standard five-field cron expression. Empty selects
	// DefaultSchedule.
	Schedule string
	// GameKey scopes the user leagues fetch.
	GameKey string
	// LeagueKeys lists the leagues whose teams and injury report every
	// cycle keeps warm.
	LeagueKeys []string
}

type warmTask struct {
	op     provider.Operation
	params map[string]string
}

// Warmer periodically fetches the league resources interactive traffic reads
// most, filling the cache through the same orchestrator the API uses.
type Warmer struct {
	fetcher  Fetcher
	schedule cron.Schedule
	config   Config
	locker   locks.Manager
	logger   logging.Logger

	mu      sync.Mutex
	running bool
	nextRun *time.Time
	cycles  int64
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Option customizes optional warmer collaborators.
type Option func(*Warmer)

// WithLockManager guards warm cycles with a distributed lock so only one
// replica warms the shared cache at a time.
func WithLockManager(locker locks.Manager) Option {
	return func(w *Warmer) {
		w.locker = locker
	}
}

// New validates the cron expression and returns a stopped warmer.
func New(fetcher Fetcher, config Config, logger logging.Logger, opts ...Option) (*Warmer, error) {
	if fetcher == nil {
		return nil, errors.ConfigError("warmer requires a fetcher")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	if config.Schedule == "" {
		config.Schedule = DefaultSchedule
	}
	schedule, err := cron.ParseStandard(config.Schedule)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid warmer schedule %q: %v", config.Schedule, err))
	}
	w := &Warmer{
		fetcher:  fetcher,
		schedule: schedule,
		config:   config,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start runs one warm cycle in the background right away, then keeps warming
// on the configured schedule until Stop is called or ctx is canceled. Calling
// Start on a running warmer logs a warning and does nothing.
func (w *Warmer) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.logger.Warn("Cache warmer already running")
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info("Starting cache warmer",
		logging.Field{Key: "schedule", Value: w.config.Schedule},
		logging.Field{Key: "league_keys", Value: len(w.config.LeagueKeys)},
	)

	go w.loop(ctx, stopCh, doneCh)
}

// Stop terminates the schedule loop and waits for it to finish. An in-flight
// warm cycle completes before Stop returns. Stopping a stopped warmer is a
// no-op.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh
	w.logger.Info("Cache warmer stopped")
}

// NextRun reports when the next scheduled cycle fires, nil before the first
// cycle completes.
func (w *Warmer) NextRun() *time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextRun
}

func (w *Warmer) loop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	w.warm(ctx)

	for {
		next := w.schedule.Next(time.Now())
		w.mu.Lock()
		w.nextRun = &next
		w.mu.Unlock()

		timer := time.NewTimer(time.Until(next))
		select {
		case <-stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			w.warm(ctx)
		}
	}
}

// warm runs one cycle. Individual fetch failures are logged and the cycle
// moves on; only context cancellation aborts the remaining tasks.
func (w *Warmer) warm(ctx context.Context) {
	if w.locker != nil {
		lock, err := w.locker.AcquireWarmLock(ctx, "league-resources")
		switch {
		case stderrors.Is(err, locks.ErrNotAcquired):
			w.logger.Debug("Another replica is warming the cache, skipping cycle")
			return
		case err != nil:
			w.logger.Warn("Warm lock unavailable, proceeding without it",
				logging.Field{Key: "error", Value: err.Error()},
			)
		default:
			defer func() {
				if err := lock.Release(context.Background()); err != nil {
					w.logger.Warn("Failed to release warm lock",
						logging.Field{Key: "error", Value: err.Error()},
					)
				}
			}()
		}
	}

	w.mu.Lock()
	w.cycles++
	cycle := w.cycles
	w.mu.Unlock()

	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)

	var failMu sync.Mutex
	failures := 0

	for _, task := range w.tasks() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := w.fetcher.Fetch(gctx, task.op, task.params, 0, nil); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				failMu.Lock()
				failures++
				failMu.Unlock()
				w.logger.Warn("Warm fetch failed",
					logging.Field{Key: "operation", Value: string(task.op)},
					logging.Field{Key: "error", Value: err.Error()},
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		w.logger.Warn("Warm cycle aborted",
			logging.Field{Key: "cycle", Value: cycle},
			logging.Field{Key: "error", Value: err.Error()},
		)
		return
	}

	w.logger.Info("Warm cycle complete",
		logging.Field{Key: "cycle", Value: cycle},
		logging.Field{Key: "failures", Value: failures},
		logging.Field{Key: "duration_ms", Value: time.Since(started).Milliseconds()},
	)
}

// tasks expands the configured leagues into one fetch per warmed resource.
func (w *Warmer) tasks() []warmTask {
	tasks := make([]warmTask, 0, 1+2*len(w.config.LeagueKeys))
	tasks = append(tasks, warmTask{
		op:     provider.OpUserLeagues,
		params: map[string]string{"game_key": w.config.GameKey},
	})
	for _, league := range w.config.LeagueKeys {
		tasks = append(tasks,
			warmTask{op: provider.OpLeagueTeams, params: map[string]string{"league_key": league}},
			warmTask{op: provider.OpInjuryReport, params: map[string]string{"league_key": league}},
		)
	}
	return tasks
}
