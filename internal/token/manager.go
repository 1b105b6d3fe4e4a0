package token

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/common/logging"
	"fantasy-gateway/internal/locks"
)

// Refresher exchanges a refresh token for a new set of credentials. It is
// implemented by the oauth2 client.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)
}

// ManagerConfig tunes the background refresh loop. Zero values fall back to
// the defaults below.
type ManagerConfig struct {
	// CheckInterval is how often the loop re-evaluates token expiry.
	CheckInterval time.Duration
	// RefreshBuffer is the lead time before expiry at which a refresh fires.
	RefreshBuffer time.Duration
	// SleepIncrement bounds how long Stop waits for the loop to notice it.
	SleepIncrement time.Duration
}

// DefaultManagerConfig returns the standard loop settings: check every five
// minutes, refresh ten minutes before expiry, wake every second.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		CheckInterval:  5 * time.Minute,
		RefreshBuffer:  10 * time.Minute,
		SleepIncrement: time.Second,
	}
}

func (c *ManagerConfig) applyDefaults() {
	defaults := DefaultManagerConfig()
	if c.CheckInterval <= 0 {
		c.CheckInterval = defaults.CheckInterval
	}
	if c.RefreshBuffer <= 0 {
		c.RefreshBuffer = defaults.RefreshBuffer
	}
	if c.SleepIncrement <= 0 {
		c.SleepIncrement = defaults.SleepIncrement
	}
}

// Status is a point-in-time snapshot of the manager, recomputed on every
// call. SecondsUntilExpiry and NextRefreshNeeded are nil when no credentials
// are held.
type Status struct {
	Running            bool       `json:"running"`
	AuthState          string     `json:"auth_state"`
	RefreshCount       int64      `json:"refresh_count"`
	LastRefreshTime    *time.Time `json:"last_refresh_time,omitempty"`
	LastError          string     `json:"last_error,omitempty"`
	SecondsUntilExpiry *int64     `json:"seconds_until_expiry,omitempty"`
	NextRefreshNeeded  *bool      `json:"next_refresh_needed,omitempty"`
	CheckInterval      string     `json:"check_interval"`
	RefreshBuffer      string     `json:"refresh_buffer"`
}

// Manager keeps provider credentials fresh. It holds the current Credentials
// in memory, refreshes them ahead of expiry from a background loop, persists
// every rotation to the durable store and fans it out to the configured
// mirrors.
//
// The manager is constructed explicitly and injected where needed; there is
// no package-level instance.
type Manager struct {
	config    ManagerConfig
	store     CredentialStore
	refresher Refresher
	mirrors   []Mirror
	locker    locks.Manager
	logger    logging.Logger
	now       func() time.Time

	// refreshMu serializes check-and-refresh so only one caller at a time
	// owns the decision to rotate.
	refreshMu sync.Mutex

	// credsMu guards the credential swap and the status counters.
	credsMu         sync.RWMutex
	creds           *Credentials
	state           AuthState
	refreshCount    int64
	lastRefreshTime time.Time
	lastError       string
	revokedToken    string

	runMu   sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// ManagerOption customizes optional manager collaborators.
type ManagerOption func(*Manager)

// WithMirrors registers best-effort destinations for rotated credentials.
func WithMirrors(mirrors ...Mirror) ManagerOption {
	return func(m *Manager) {
		m.mirrors = append(m.mirrors, mirrors...)
	}
}

// WithLockManager guards refresh cycles with a distributed lock so only one
// replica rotates a shared credential set at a time.
func WithLockManager(locker locks.Manager) ManagerOption {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a lifecycle manager around the given store and
// refresher. The manager is inert until Start is called.
func NewManager(store CredentialStore, refresher Refresher, config ManagerConfig, logger logging.Logger, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, errors.ConfigError("credential store is required")
	}
	if refresher == nil {
		return nil, errors.ConfigError("token refresher is required")
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	config.applyDefaults()

	m := &Manager{
		config:    config,
		store:     store,
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
		state:     StateUnauthenticated,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Start runs one synchronous check-and-refresh, so the first caller after
// Start never sees a known-stale token, then launches the background loop.
// Calling Start on a running manager logs a warning and returns nil. The
// returned error is the outcome of the initial check; the loop launches and
// retries regardless.
func (m *Manager) Start(ctx context.Context) error {
	m.runMu.Lock()
	if m.running {
		m.runMu.Unlock()
		m.logger.Warn("Token manager already running")
		return nil
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh, doneCh := m.stopCh, m.doneCh
	m.runMu.Unlock()

	m.logger.Info("Starting token manager",
		logging.Field{Key: "check_interval", Value: m.config.CheckInterval.String()},
		logging.Field{Key: "refresh_buffer", Value: m.config.RefreshBuffer.String()},
	)

	err := m.checkAndRefresh(ctx, false)
	if err != nil {
		m.logCheckFailure(err)
	}

	go m.loop(stopCh, doneCh)
	return err
}

// Stop terminates the background loop and waits for it to finish. An
// in-flight refresh completes before Stop returns. Stopping a stopped
// manager is a no-op.
func (m *Manager) Stop() {
	m.runMu.Lock()
	if !m.running {
		m.runMu.Unlock()
		return
	}
	m.running = false
	close(m.stopCh)
	doneCh := m.doneCh
	m.runMu.Unlock()

	<-doneCh
	m.logger.Info("Token manager stopped")
}

func (m *Manager) loop(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	for {
		if !m.sleepInterval(stopCh) {
			return
		}
		if err := m.checkAndRefresh(context.Background(), false); err != nil {
			m.logCheckFailure(err)
		}
	}
}

// sleepInterval sleeps the check interval in small increments so a close of
// stopCh takes effect within roughly one increment. It returns false when
// the loop should exit.
func (m *Manager) sleepInterval(stopCh <-chan struct{}) bool {
	remaining := m.config.CheckInterval
	for remaining > 0 {
		step := m.config.SleepIncrement
		if step > remaining {
			step = remaining
		}
		select {
		case <-stopCh:
			return false
		case <-time.After(step):
		}
		remaining -= step
	}
	return true
}

func (m *Manager) logCheckFailure(err error) {
	if errors.IsType(err, errors.ErrTypeRevoked) {
		m.logger.Debug("Token refresh blocked until manual re-authentication",
			logging.Field{Key: "error", Value: err.Error()},
		)
		return
	}
	m.logger.Error("Token check failed", err)
}

// ForceRefresh runs check-and-refresh immediately with the expiry buffer
// bypassed and reports whether it succeeded.
func (m *Manager) ForceRefresh(ctx context.Context) bool {
	err := m.checkAndRefresh(ctx, true)
	if err != nil {
		m.logCheckFailure(err)
	}
	return err == nil
}

// ValidCredentials returns credentials that are safe to present to the
// provider, refreshing first when the current set is inside the refresh
// buffer. It fails with an authentication error when no usable credentials
// can be produced.
func (m *Manager) ValidCredentials(ctx context.Context) (*Credentials, error) {
	if creds := m.CurrentCredentials(); creds != nil && !creds.NeedsRefresh(m.now(), m.config.RefreshBuffer) {
		return creds, nil
	}

	if err := m.checkAndRefresh(ctx, false); err != nil {
		m.logCheckFailure(err)
	}

	creds := m.CurrentCredentials()
	if creds == nil {
		return nil, errors.AuthError("no credentials available, authentication required")
	}
	// Inside the buffer but not yet expired is still usable; the next cycle
	// retries the refresh.
	if creds.Expired(m.now()) {
		return nil, errors.AuthError("credentials expired and refresh failed")
	}
	return creds, nil
}

// CurrentCredentials returns a copy of the in-memory credentials without
// touching the store or the provider, or nil when none are held.
func (m *Manager) CurrentCredentials() *Credentials {
	m.credsMu.RLock()
	defer m.credsMu.RUnlock()
	if m.creds == nil {
		return nil
	}
	copied := *m.creds
	return &copied
}

// AuthState returns the current lifecycle state.
func (m *Manager) AuthState() AuthState {
	m.credsMu.RLock()
	defer m.credsMu.RUnlock()
	return m.state
}

// Status assembles a fresh snapshot of the manager.
func (m *Manager) Status() Status {
	m.runMu.Lock()
	running := m.running
	m.runMu.Unlock()

	now := m.now()

	m.credsMu.RLock()
	defer m.credsMu.RUnlock()

	status := Status{
		Running:       running,
		AuthState:     m.state.String(),
		RefreshCount:  m.refreshCount,
		LastError:     m.lastError,
		CheckInterval: m.config.CheckInterval.String(),
		RefreshBuffer: m.config.RefreshBuffer.String(),
	}
	if !m.lastRefreshTime.IsZero() {
		t := m.lastRefreshTime
		status.LastRefreshTime = &t
	}
	if m.creds != nil {
		seconds := int64(m.creds.TimeUntilExpiry(now) / time.Second)
		needed := m.creds.NeedsRefresh(now, m.config.RefreshBuffer)
		status.SecondsUntilExpiry = &seconds
		status.NextRefreshNeeded = &needed
	}
	return status
}

// checkAndRefresh is the single rotation decision point. It loads
// credentials when none are in memory, refreshes when the expiry is inside
// the buffer or force is set, and records the outcome. A missing credential
// set is an expected condition, not an error.
func (m *Manager) checkAndRefresh(ctx context.Context, force bool) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	now := m.now()

	creds := m.CurrentCredentials()
	if creds == nil {
		loaded, err := m.store.Load(ctx)
		if err != nil {
			m.setLastError(err)
			return errors.InternalError("failed to load credentials", err)
		}
		if loaded != nil {
			m.adoptCredentials(loaded, now)
			creds = loaded
		}
	}
	if creds == nil {
		m.credsMu.Lock()
		m.state = StateUnauthenticated
		m.lastError = "no credentials available"
		m.credsMu.Unlock()
		m.logger.Warn("No credentials found, manual authentication required")
		return nil
	}

	// After a permanent rejection the same refresh token is never retried.
	// A different token appearing in the store means someone re-authorized
	// externally, so adopt it and carry on.
	if m.AuthState() == StateRefreshFailed {
		stored, err := m.store.Load(ctx)
		if err == nil && stored != nil && stored.RefreshToken != "" && stored.RefreshToken != m.currentRevokedToken() {
			m.adoptCredentials(stored, now)
			m.clearRevokedToken()
			creds = stored
			m.logger.Info("Adopted externally replaced credentials")
		} else {
			return errors.RevokedError("refresh token revoked, manual re-authentication required")
		}
	}

	if !force && !creds.NeedsRefresh(now, m.config.RefreshBuffer) {
		m.logger.Debug("Token still valid",
			logging.Field{Key: "time_until_expiry", Value: creds.TimeUntilExpiry(now).String()},
		)
		return nil
	}

	if m.locker != nil {
		lock, err := m.locker.AcquireRefreshLock(ctx)
		switch {
		case stderrors.Is(err, locks.ErrNotAcquired):
			m.logger.Debug("Another replica holds the refresh lock, skipping cycle")
			return nil
		case err != nil:
			m.logger.Warn("Refresh lock unavailable, proceeding without it",
				logging.Field{Key: "error", Value: err.Error()},
			)
		default:
			defer func() {
				if err := lock.Release(context.Background()); err != nil {
					m.logger.Warn("Failed to release refresh lock",
						logging.Field{Key: "error", Value: err.Error()},
					)
				}
			}()
			// Another replica may have rotated while we waited for a cycle.
			// Adopt its result instead of burning a second refresh.
			if stored, err := m.store.Load(ctx); err == nil && stored != nil &&
				stored.AccessToken != creds.AccessToken && !stored.NeedsRefresh(now, m.config.RefreshBuffer) {
				m.adoptCredentials(stored, now)
				m.logger.Info("Adopted credentials refreshed by another replica")
				return nil
			}
		}
	}

	m.logger.Info("Refreshing credentials",
		logging.Field{Key: "forced", Value: force},
		logging.Field{Key: "expires_at", Value: creds.ExpiresAt},
	)

	refreshed, err := m.refresher.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		m.recordRefreshFailure(creds, err)
		return err
	}
	return m.completeRefresh(ctx, refreshed)
}

// adoptCredentials installs credentials that were produced elsewhere, a
// store load or another replica's refresh, without counting a rotation.
func (m *Manager) adoptCredentials(creds *Credentials, now time.Time) {
	m.credsMu.Lock()
	defer m.credsMu.Unlock()
	m.creds = creds
	if creds.Expired(now) {
		m.state = StateTokenExpired
	} else {
		m.state = StateAuthenticated
	}
}

func (m *Manager) recordRefreshFailure(creds *Credentials, err error) {
	revoked := errors.IsType(err, errors.ErrTypeRevoked)

	m.credsMu.Lock()
	m.lastError = err.Error()
	if revoked {
		m.state = StateRefreshFailed
		m.revokedToken = creds.RefreshToken
	} else {
		m.state = StateTokenExpired
	}
	m.credsMu.Unlock()

	if revoked {
		m.logger.Warn("Refresh token revoked, manual re-authentication required",
			logging.Field{Key: "error", Value: err.Error()},
		)
	} else {
		m.logger.Error("Failed to refresh credentials", err)
	}
}

func (m *Manager) completeRefresh(ctx context.Context, refreshed *Credentials) error {
	now := m.now()

	m.credsMu.Lock()
	m.creds = refreshed
	m.state = StateAuthenticated
	m.revokedToken = ""
	m.credsMu.Unlock()

	if err := m.store.Save(ctx, refreshed); err != nil {
		m.setLastError(err)
		m.logger.Error("Failed to persist refreshed credentials", err)
		return errors.InternalError("failed to persist credentials", err)
	}

	for _, mirror := range m.mirrors {
		if err := mirror.Mirror(ctx, refreshed); err != nil {
			m.logger.Warn("Credential mirror failed",
				logging.Field{Key: "mirror", Value: mirror.Name()},
				logging.Field{Key: "error", Value: err.Error()},
			)
		}
	}

	m.credsMu.Lock()
	m.refreshCount++
	m.lastRefreshTime = now
	m.lastError = ""
	count := m.refreshCount
	m.credsMu.Unlock()

	m.logger.Info("Credentials refreshed",
		logging.Field{Key: "refresh_count", Value: count},
		logging.Field{Key: "expires_at", Value: refreshed.ExpiresAt},
	)
	return nil
}

func (m *Manager) setLastError(err error) {
	m.credsMu.Lock()
	m.lastError = err.Error()
	m.credsMu.Unlock()
}

func (m *Manager) currentRevokedToken() string {
	m.credsMu.RLock()
	defer m.credsMu.RUnlock()
	return m.revokedToken
}

func (m *Manager) clearRevokedToken() {
	m.credsMu.Lock()
	m.revokedToken = ""
	m.credsMu.Unlock()
}
