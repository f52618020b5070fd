package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock is held.
const DefaultLockTTL = 30 * time.Second

// ErrSessionExists is returned by Create when the ID is already taken.
var ErrSessionExists = errors.New("session already exists")

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.StateStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	timersMu sync.Mutex
	timers   map[string]*time.Timer
	pending  sync.WaitGroup
	closed   bool

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger // Logger for internal events (like deferred errors)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		timers:  make(map[string]*time.Timer),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var s *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		s, err = m.store.Load(ctx, sessionID)
		return err
	})
	return s, err
}

// Create persists a new session, refusing to overwrite an existing one.
func (m *Manager) Create(ctx context.Context, s *domain.Session) error {
	return m.WithLock(ctx, s.ID, func(ctx context.Context) error {
		_, err := m.store.Load(ctx, s.ID)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrSessionExists, s.ID)
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}
		return m.store.Save(ctx, s.ID, s)
	})
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, s *domain.Session) error {
	return m.WithLock(ctx, s.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, s.ID, s)
	})
}

// Update loads a session, applies fn and saves the result, all under the
// session lock. When fn returns a session together with an error, the session
// is still saved and the error returned.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(*domain.Session) (*domain.Session, error)) (*domain.Session, error) {
	var out *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		current, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		next, fnErr := fn(current)
		if next != nil {
			if err := m.store.Save(ctx, sessionID, next); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			out = next
		}
		return fnErr
	})
	return out, err
}

// Delete removes the session from the store and cancels its timer.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	m.Cancel(sessionID)
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Schedule runs fn at the given time, replacing any timer already pending
// for the session. A time in the past fires immediately.
func (m *Manager) Schedule(sessionID string, at time.Time, fn func()) {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()
	if m.closed {
		return
	}

	if t, ok := m.timers[sessionID]; ok && t.Stop() {
		m.pending.Done()
	}

	var timer *time.Timer
	m.pending.Add(1)
	timer = time.AfterFunc(time.Until(at), func() {
		defer m.pending.Done()

		m.timersMu.Lock()
		if m.timers[sessionID] == timer {
			delete(m.timers, sessionID)
		}
		m.timersMu.Unlock()

		fn()
	})
	m.timers[sessionID] = timer
}

// Cancel stops the pending timer of a session, if any.
func (m *Manager) Cancel(sessionID string) {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()

	if t, ok := m.timers[sessionID]; ok {
		if t.Stop() {
			m.pending.Done()
		}
		delete(m.timers, sessionID)
	}
}

// Pending reports how many timers are scheduled.
func (m *Manager) Pending() int {
	m.timersMu.Lock()
	defer m.timersMu.Unlock()
	return len(m.timers)
}

// Close stops every pending timer and waits for running ones to return.
// Sessions stay submitted in the store and are reset lazily on next load.
func (m *Manager) Close() {
	m.timersMu.Lock()
	m.closed = true
	for id, t := range m.timers {
		if t.Stop() {
			m.pending.Done()
		}
		delete(m.timers, id)
	}
	m.timersMu.Unlock()

	m.pending.Wait()
}
