package runtime

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
)

// Set stores a normalized value for one field of the current step.
// Error flags are left alone until the next advance.
func (e *Engine) Set(ctx context.Context, def *domain.Definition, s *domain.Session, field, raw string) (*domain.Session, error) {
	return e.SetValues(ctx, def, s, map[string]string{field: raw})
}

// SetValues stores several values at once. Either all of them are applied or
// none is.
func (e *Engine) SetValues(ctx context.Context, def *domain.Definition, s *domain.Session, values map[string]string) (*domain.Session, error) {
	if err := e.check(def, s); err != nil {
		return nil, err
	}
	if !s.Interactive() {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrNotInteractive, s.ID, s.Status)
	}

	step, _ := def.Step(s.CurrentStep)
	for name := range values {
		if _, ok := def.Field(name); !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
		}
		if !slices.Contains(step.Fields, name) {
			return nil, fmt.Errorf("%w: %s (step %s)", domain.ErrFieldNotOnStep, name, step.ID)
		}
	}

	clean := make(map[string]string, len(values))
	for name, raw := range values {
		v, err := schema.Sanitize(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		f, _ := def.Field(name)
		clean[name] = schema.Normalize(f.Kind, v)
	}

	next := e.next(s)
	for name, v := range clean {
		next.Values[name] = v
	}
	next.Failure = nil
	return next, nil
}

// Advance moves to the next step if every field governed by the current step
// is valid. On refusal the returned session carries the refreshed error flags
// together with a *StepError.
func (e *Engine) Advance(ctx context.Context, def *domain.Definition, s *domain.Session) (*domain.Session, error) {
	if err := e.check(def, s); err != nil {
		return nil, err
	}
	if !s.Interactive() {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrNotInteractive, s.ID, s.Status)
	}
	if s.CurrentStep == def.LastIndex() {
		return nil, domain.ErrLastStep
	}

	sch, err := schemaFor(def)
	if err != nil {
		return nil, err
	}
	step, _ := def.Step(s.CurrentStep)
	verr := schema.ValidateFields(sch, s.Values, step.Fields...)
	invalid := schema.InvalidKeys(verr)

	next := e.next(s)
	next.Failure = nil
	for _, name := range step.Fields {
		delete(next.Errors, name)
	}
	for _, name := range invalid {
		next.Errors[name] = true
	}

	if len(invalid) > 0 {
		e.logger.Debug("advance refused",
			"session_id", s.ID,
			"step", step.ID,
			"invalid", invalid,
		)
		e.emitStep(ctx, domain.EventStepRejected, next, s.CurrentStep, s.CurrentStep, invalid)
		return next, &StepError{StepID: step.ID, Fields: invalid, Cause: verr}
	}

	next.CurrentStep++
	e.logger.Debug("step advanced", "session_id", s.ID, "from", s.CurrentStep, "to", next.CurrentStep)
	e.emitStep(ctx, domain.EventStepEnter, next, s.CurrentStep, next.CurrentStep, nil)
	return next, nil
}

// Retreat moves to the previous step without validating anything.
// On the first step it returns an unchanged copy.
func (e *Engine) Retreat(ctx context.Context, def *domain.Definition, s *domain.Session) (*domain.Session, error) {
	if err := e.check(def, s); err != nil {
		return nil, err
	}
	if !s.Interactive() {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrNotInteractive, s.ID, s.Status)
	}
	if s.CurrentStep == 0 {
		return s.Snapshot(), nil
	}

	next := e.next(s)
	next.Failure = nil
	next.CurrentStep--
	e.emitStep(ctx, domain.EventStepEnter, next, s.CurrentStep, next.CurrentStep, nil)
	return next, nil
}

// Reset returns the session to a clean first step, keeping its identity.
func (e *Engine) Reset(ctx context.Context, def *domain.Definition, s *domain.Session) *domain.Session {
	next := e.next(s)
	next.CurrentStep = 0
	next.Values = make(map[string]string)
	next.Errors = make(map[string]bool)
	next.Status = domain.StatusActive
	next.Submitted = false
	next.Confirmation = ""
	next.Failure = nil
	next.ResetAt = time.Time{}

	e.logger.Debug("session reset", "session_id", s.ID, "wizard", def.ID)
	e.emitStep(ctx, domain.EventReset, next, s.CurrentStep, 0, nil)
	return next
}

// Due reports whether a submitted session has outlived its reset delay.
func (e *Engine) Due(s *domain.Session) bool {
	return s.Status == domain.StatusSubmitted && !s.ResetAt.IsZero() && !e.now().Before(s.ResetAt)
}
