package placify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/internal/runtime"
	"github.com/nocap-placify/placify/pkg/adapters/memory"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
	"github.com/nocap-placify/placify/pkg/presentation/view"
	"github.com/nocap-placify/placify/pkg/registry"
	"github.com/nocap-placify/placify/pkg/session"
	"github.com/nocap-placify/placify/pkg/wizards"
)

// Engine is the high-level entry point for the Placify library.
// It wraps the internal runtime with session locking, persistence and the
// submission gateway.
type Engine struct {
	runtime   *runtime.Engine
	registry  *registry.Registry
	sessions  *session.Manager
	loader    ports.DefinitionLoader
	store     ports.StateStore
	locker    ports.DistributedLocker
	gateway   ports.Gateway
	publisher ports.Publisher

	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	clock         func() time.Time
	submitTimeout time.Duration
	resetDelay    time.Duration

	subMu       sync.RWMutex
	subscribers map[int]func(*domain.Session)
	nextSub     int
}

var (
	_ ports.WizardService = (*Engine)(nil)
	_ ports.Observable    = (*Engine)(nil)
)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGateway sets the submission gateway. Required.
func WithGateway(gw ports.Gateway) Option {
	return func(e *Engine) {
		e.gateway = gw
	}
}

// WithStore sets the session store (default: in memory).
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLoader sets where wizard definitions come from (default: the built-in wizards).
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithDefinitions is a shorthand for WithLoader(memory.NewLoader(defs...)).
func WithDefinitions(defs ...*domain.Definition) Option {
	return func(e *Engine) {
		e.loader = memory.NewLoader(defs...)
	}
}

// WithPublisher announces successful submissions.
func WithPublisher(p ports.Publisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSubmitTimeout bounds each gateway call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.submitTimeout = d
	}
}

// WithResetDelay overrides the delay of every wizard that does not set its own.
func WithResetDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.resetDelay = d
	}
}

// WithClock overrides time.Now for the state machine.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes a new Placify Engine and loads its wizard definitions.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		submitTimeout: domain.DefaultSubmitTimeout,
		subscribers:   make(map[int]func(*domain.Session)),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.gateway == nil {
		return nil, fmt.Errorf("a submission gateway is required")
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.loader == nil {
		eng.loader = memory.NewLoader(wizards.All()...)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithClock(eng.clock),
		runtime.WithSubmitTimeout(eng.submitTimeout),
	)

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	eng.registry = registry.NewRegistry()
	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload fetches the definitions again and swaps them in atomically.
// Sessions of a wizard that disappeared fail with domain.ErrWizardNotFound.
func (e *Engine) Reload(ctx context.Context) error {
	defs, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wizard definitions: %w", err)
	}
	if e.resetDelay > 0 {
		for _, def := range defs {
			if def.ResetDelay <= 0 {
				def.ResetDelay = e.resetDelay
			}
		}
	}
	if err := e.registry.Replace(defs); err != nil {
		return fmt.Errorf("invalid wizard definitions: %w", err)
	}
	e.logger.Info("wizards loaded", "count", len(defs))
	return nil
}

// Watch reloads definitions whenever the loader reports a change, until ctx
// is done. Returns an error if the loader does not support watching.
func (e *Engine) Watch(ctx context.Context) error {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return fmt.Errorf("current loader does not support watching")
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range changes {
			if err := e.Reload(ctx); err != nil {
				e.logger.Error("hot reload failed, keeping previous wizards", "err", err)
			}
		}
	}()
	return nil
}

// Wizards lists the registered definitions.
func (e *Engine) Wizards() []*domain.Definition {
	return e.registry.List()
}

// Wizard returns a single definition.
func (e *Engine) Wizard(id string) (*domain.Definition, error) {
	return e.registry.Get(id)
}

// Start opens a new session on the first step of a wizard.
func (e *Engine) Start(ctx context.Context, wizardID string) (*domain.Session, error) {
	def, err := e.registry.Get(wizardID)
	if err != nil {
		return nil, err
	}
	s := e.runtime.Start(ctx, def, uuid.NewString())
	if err := e.sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	e.notify(s)
	return s, nil
}

// Sessions lists the IDs of stored sessions.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Session loads a session, applying a due auto reset.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.update(ctx, sessionID, func(*domain.Definition, *domain.Session) (*domain.Session, error) {
		return nil, nil
	})
}

// Set stores one raw value.
func (e *Engine) Set(ctx context.Context, sessionID, field, raw string) (*domain.Session, error) {
	return e.SetValues(ctx, sessionID, map[string]string{field: raw})
}

// SetValues stores raw values for fields of the current step.
func (e *Engine) SetValues(ctx context.Context, sessionID string, values map[string]string) (*domain.Session, error) {
	return e.update(ctx, sessionID, func(def *domain.Definition, s *domain.Session) (*domain.Session, error) {
		return e.runtime.SetValues(ctx, def, s, values)
	})
}

// Advance validates the current step and moves forward.
// On refusal the returned session carries the updated error flags.
func (e *Engine) Advance(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.update(ctx, sessionID, func(def *domain.Definition, s *domain.Session) (*domain.Session, error) {
		return e.runtime.Advance(ctx, def, s)
	})
}

// Retreat moves one step back without validating.
func (e *Engine) Retreat(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.update(ctx, sessionID, func(def *domain.Definition, s *domain.Session) (*domain.Session, error) {
		return e.runtime.Retreat(ctx, def, s)
	})
}

// Submit sends the collected values through the gateway.
//
// The session is persisted as submitting before the call and the call runs
// outside the session lock, so a concurrent Submit fails fast with
// domain.ErrSubmissionInFlight. A failed submission is not an error: the
// returned session carries the failure notice.
func (e *Engine) Submit(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sub domain.Submission
	pending, err := e.update(ctx, sessionID, func(def *domain.Definition, s *domain.Session) (*domain.Session, error) {
		next, built, err := e.runtime.BeginSubmit(ctx, def, s)
		sub = built
		return next, err
	})
	if err != nil {
		return pending, err
	}

	result, elapsed := e.runtime.Call(ctx, e.gateway, sub)

	// The outcome is recorded even if the caller has gone away.
	ctx = context.WithoutCancel(ctx)
	done, err := e.update(ctx, sessionID, func(def *domain.Definition, s *domain.Session) (*domain.Session, error) {
		return e.runtime.CompleteSubmit(ctx, def, s, result, elapsed)
	})
	if err != nil {
		return done, err
	}

	if result.OK() {
		e.scheduleReset(done)
		e.publish(ctx, sub, result, elapsed)
	}
	return done, nil
}

// Fill starts a session, walks every input step with values and submits.
// It stops at the first refused step and returns the session as it stands.
func (e *Engine) Fill(ctx context.Context, wizardID string, values map[string]string) (*domain.Session, error) {
	def, err := e.registry.Get(wizardID)
	if err != nil {
		return nil, err
	}
	for name := range values {
		if _, ok := def.Field(name); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
		}
	}

	s, err := e.Start(ctx, wizardID)
	if err != nil {
		return nil, err
	}
	// Steps that fail before reaching the session (lock or store errors)
	// return nil; the caller still gets the last known session.
	keep := func(next *domain.Session, err error) (*domain.Session, error) {
		if next != nil {
			s = next
		}
		return s, err
	}
	for _, step := range def.Steps[:def.LastIndex()] {
		stepValues := make(map[string]string, len(step.Fields))
		for _, name := range step.Fields {
			if v, ok := values[name]; ok {
				stepValues[name] = v
			}
		}
		if len(stepValues) > 0 {
			if _, err := keep(e.SetValues(ctx, s.ID, stepValues)); err != nil {
				return s, err
			}
		}
		if _, err := keep(e.Advance(ctx, s.ID)); err != nil {
			return s, err
		}
	}
	return keep(e.Submit(ctx, s.ID))
}

// Abandon discards a session and its pending reset.
func (e *Engine) Abandon(ctx context.Context, sessionID string) error {
	if _, err := e.sessions.Load(ctx, sessionID); err != nil {
		return err
	}
	return e.sessions.Delete(ctx, sessionID)
}

// Render builds the presentation contract for a session.
func (e *Engine) Render(s *domain.Session) (view.View, error) {
	def, err := e.registry.Get(s.WizardID)
	if err != nil {
		return view.View{}, err
	}
	return view.Build(def, s)
}

// View loads a session and renders it.
func (e *Engine) View(ctx context.Context, sessionID string) (view.View, error) {
	s, err := e.Session(ctx, sessionID)
	if err != nil {
		return view.View{}, err
	}
	return e.Render(s)
}

// Subscribe registers fn to receive every persisted session change,
// including auto resets. The returned function unsubscribes.
func (e *Engine) Subscribe(fn func(*domain.Session)) (cancel func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subscribers, id)
	}
}

// Close stops pending reset timers. Submitted sessions are reset lazily
// the next time they are loaded.
func (e *Engine) Close() error {
	e.sessions.Close()
	return nil
}

// update runs fn on the current session under its lock, after applying any
// maintenance the session is due (auto reset, interrupted submission).
// The resulting session is saved and broadcast if anything changed.
func (e *Engine) update(ctx context.Context, sessionID string, fn func(*domain.Definition, *domain.Session) (*domain.Session, error)) (*domain.Session, error) {
	var (
		out   *domain.Session
		dirty bool
	)
	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		s, err := e.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		def, err := e.registry.Get(s.WizardID)
		if err != nil {
			return err
		}

		s, dirty = e.maintain(ctx, def, s)
		next, fnErr := fn(def, s)
		if next != nil {
			s, dirty = next, true
		}
		if dirty {
			if err := e.store.Save(ctx, sessionID, s); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
		}
		out = s
		return fnErr
	})
	if dirty && out != nil {
		e.notify(out)
	}
	return out, err
}

func (e *Engine) maintain(ctx context.Context, def *domain.Definition, s *domain.Session) (*domain.Session, bool) {
	switch {
	case e.runtime.Due(s):
		return e.runtime.Reset(ctx, def, s), true
	case e.runtime.Interrupted(s):
		next, err := e.runtime.CompleteSubmit(ctx, def, s, runtime.Interruption(), 0)
		if err != nil {
			return s, false
		}
		return next, true
	}
	return s, false
}

func (e *Engine) scheduleReset(s *domain.Session) {
	id := s.ID
	e.sessions.Schedule(id, s.ResetAt, func() {
		ctx := context.Background()
		if _, err := e.Session(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			e.logger.Warn("auto reset failed", "session_id", id, "err", err)
		}
	})
}

func (e *Engine) publish(ctx context.Context, sub domain.Submission, result domain.SubmissionResult, elapsed time.Duration) {
	if e.publisher == nil {
		return
	}
	ev := &domain.SubmitEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventSubmitted,
			SessionID: sub.SessionID,
			WizardID:  sub.WizardID,
		},
		Target:       sub.Target,
		Duration:     elapsed,
		Confirmation: result.Confirmation,
	}
	if err := e.publisher.Publish(ctx, ev); err != nil {
		e.logger.Warn("failed to publish submission", "session_id", sub.SessionID, "err", err)
	}
}

func (e *Engine) notify(s *domain.Session) {
	e.subMu.RLock()
	fns := make([]func(*domain.Session), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		fns = append(fns, fn)
	}
	e.subMu.RUnlock()

	for _, fn := range fns {
		fn(s.Snapshot())
	}
}
