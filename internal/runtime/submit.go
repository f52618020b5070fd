package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
)

// BeginSubmit moves a session on the terminal step into the submitting state
// and builds the outbound submission. Values are copied and keyed by wire name.
func (e *Engine) BeginSubmit(ctx context.Context, def *domain.Definition, s *domain.Session) (*domain.Session, domain.Submission, error) {
	if err := e.check(def, s); err != nil {
		return nil, domain.Submission{}, err
	}
	switch s.Status {
	case domain.StatusSubmitting:
		return nil, domain.Submission{}, domain.ErrSubmissionInFlight
	case domain.StatusSubmitted:
		return nil, domain.Submission{}, domain.ErrAlreadySubmitted
	}
	if s.CurrentStep != def.LastIndex() {
		return nil, domain.Submission{}, domain.ErrNotLastStep
	}

	sub := domain.Submission{
		SessionID: s.ID,
		WizardID:  def.ID,
		Target:    def.Target,
		Values:    make(map[string]string, len(def.Fields)),
	}
	for _, f := range def.Fields {
		sub.Values[f.WireName()] = s.Values[f.Name]
	}

	next := e.next(s)
	next.Status = domain.StatusSubmitting
	next.Failure = nil

	e.logger.Info("submission started", "session_id", s.ID, "wizard", def.ID, "target", def.Target)
	e.emitSubmit(ctx, domain.EventSubmit, next, def.Target, 0, nil)
	return next, sub, nil
}

// Call sends sub through gw, bounded by the submit timeout. The gateway's
// answer is authoritative: a receipt that arrives after the deadline still
// counts as an accepted record.
func (e *Engine) Call(ctx context.Context, gw ports.Gateway, sub domain.Submission) (domain.SubmissionResult, time.Duration) {
	if e.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.submitTimeout)
		defer cancel()
	}
	start := e.now()
	receipt, err := gw.Submit(ctx, sub)
	return domain.ResultOf(receipt, err), e.now().Sub(start)
}

// CompleteSubmit records the gateway outcome on a submitting session.
// Success schedules the reset; failure returns the session to the terminal
// step with a single failure notice.
func (e *Engine) CompleteSubmit(ctx context.Context, def *domain.Definition, s *domain.Session, result domain.SubmissionResult, elapsed time.Duration) (*domain.Session, error) {
	if err := e.check(def, s); err != nil {
		return nil, err
	}
	if s.Status != domain.StatusSubmitting {
		return nil, fmt.Errorf("session %s is %s, not %s", s.ID, s.Status, domain.StatusSubmitting)
	}

	next := e.next(s)
	if result.OK() {
		next.Status = domain.StatusSubmitted
		next.Submitted = true
		next.Confirmation = result.Confirmation
		next.Failure = nil
		next.ResetAt = next.UpdatedAt.Add(def.EffectiveResetDelay())

		e.logger.Info("submission acknowledged",
			"session_id", s.ID,
			"target", def.Target,
			"duration", elapsed,
		)
		e.emitSubmit(ctx, domain.EventSubmitted, next, def.Target, elapsed, &result)
		return next, nil
	}

	f := *result.Failure
	next.Status = domain.StatusActive
	next.Submitted = false
	next.Failure = &f

	e.logger.Warn("submission failed",
		"session_id", s.ID,
		"target", def.Target,
		"reason", f.Reason,
		"error", f.Message,
	)
	e.emitSubmit(ctx, domain.EventSubmitFailed, next, def.Target, elapsed, &result)
	return next, nil
}

// Submit runs the whole submission for a session held by a single owner.
func (e *Engine) Submit(ctx context.Context, def *domain.Definition, s *domain.Session, gw ports.Gateway) (*domain.Session, error) {
	pending, sub, err := e.BeginSubmit(ctx, def, s)
	if err != nil {
		return nil, err
	}
	result, elapsed := e.Call(ctx, gw, sub)
	return e.CompleteSubmit(context.WithoutCancel(ctx), def, pending, result, elapsed)
}

// Interrupted reports whether a submitting session has been waiting longer
// than any gateway call could take, e.g. after a crash.
func (e *Engine) Interrupted(s *domain.Session) bool {
	if s.Status != domain.StatusSubmitting || e.submitTimeout <= 0 {
		return false
	}
	return e.now().Sub(s.UpdatedAt) > 2*e.submitTimeout
}

// Interruption is the result recorded for an interrupted submission.
func Interruption() domain.SubmissionResult {
	return domain.SubmissionResult{Failure: &domain.Failure{
		Reason:  domain.ReasonUnknown,
		Message: "submission interrupted before an answer was received",
	}}
}
