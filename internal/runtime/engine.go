package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
)

// Engine is the wizard state machine.
//
// It is stateless: every transition takes a session, clones it, and returns
// the next session. Persistence and locking are the caller's concern.
type Engine struct {
	logger        *slog.Logger
	hooks         domain.LifecycleHooks
	now           func() time.Time
	submitTimeout time.Duration
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSubmitTimeout bounds each gateway call. Zero disables the bound.
func WithSubmitTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.submitTimeout = d
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:        logging.NewNop(),
		now:           time.Now,
		submitTimeout: domain.DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start creates a session on the first step of def.
func (e *Engine) Start(ctx context.Context, def *domain.Definition, sessionID string) *domain.Session {
	s := domain.NewSession(sessionID, def.ID)
	now := e.now()
	s.CreatedAt, s.UpdatedAt = now, now

	e.logger.Debug("session started", "session_id", sessionID, "wizard", def.ID)
	e.emitStep(ctx, domain.EventStepEnter, s, 0, 0, nil)
	return s
}

// check verifies that the session is consistent with the definition.
func (e *Engine) check(def *domain.Definition, s *domain.Session) error {
	if s == nil {
		return fmt.Errorf("nil session")
	}
	if s.WizardID != def.ID {
		return fmt.Errorf("session %s belongs to wizard %s, not %s", s.ID, s.WizardID, def.ID)
	}
	if s.CurrentStep < 0 || s.CurrentStep >= len(def.Steps) {
		return fmt.Errorf("session %s is on step %d, wizard %s has %d steps", s.ID, s.CurrentStep, def.ID, len(def.Steps))
	}
	return nil
}

// next clones s for mutation and stamps the update time.
func (e *Engine) next(s *domain.Session) *domain.Session {
	n := s.Snapshot()
	n.UpdatedAt = e.now()
	return n
}

func (e *Engine) emitStep(ctx context.Context, typ domain.EventType, s *domain.Session, from, to int, invalid []string) {
	var hook func(context.Context, *domain.StepEvent)
	switch typ {
	case domain.EventStepEnter:
		hook = e.hooks.OnStepEnter
	case domain.EventStepRejected:
		hook = e.hooks.OnStepRejected
	case domain.EventReset:
		hook = e.hooks.OnReset
	}
	if hook == nil {
		return
	}
	hook(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: e.now(),
			Type:      typ,
			SessionID: s.ID,
			WizardID:  s.WizardID,
		},
		From:    from,
		To:      to,
		Invalid: invalid,
	})
}

func (e *Engine) emitSubmit(ctx context.Context, typ domain.EventType, s *domain.Session, target string, elapsed time.Duration, result *domain.SubmissionResult) {
	var hook func(context.Context, *domain.SubmitEvent)
	switch typ {
	case domain.EventSubmit:
		hook = e.hooks.OnSubmit
	case domain.EventSubmitted:
		hook = e.hooks.OnSubmitted
	case domain.EventSubmitFailed:
		hook = e.hooks.OnSubmitFailed
	}
	if hook == nil {
		return
	}
	ev := &domain.SubmitEvent{
		EventBase: domain.EventBase{
			Timestamp: e.now(),
			Type:      typ,
			SessionID: s.ID,
			WizardID:  s.WizardID,
		},
		Target:   target,
		Duration: elapsed,
	}
	if result != nil {
		ev.Confirmation = result.Confirmation
		ev.Failure = result.Failure
	}
	hook(ctx, ev)
}

// schemaFor resolves validators for the definition's fields.
func schemaFor(def *domain.Definition) (schema.Schema, error) {
	return schema.ForDefinition(def)
}
