package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter    EventType = "step_enter"
	EventStepRejected EventType = "step_rejected"
	EventSubmit       EventType = "submit"
	EventSubmitted    EventType = "submitted"
	EventSubmitFailed EventType = "submit_failed"
	EventReset        EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	WizardID  string    `json:"wizard_id"`
}

// StepEvent represents movement between steps, or a refused advance.
type StepEvent struct {
	EventBase
	From    int      `json:"from"`
	To      int      `json:"to"`
	Invalid []string `json:"invalid,omitempty"`
}

// SubmitEvent represents a gateway call and its outcome.
type SubmitEvent struct {
	EventBase
	Target       string        `json:"target"`
	Duration     time.Duration `json:"duration,omitempty"`
	Confirmation string        `json:"confirmation,omitempty"`
	Failure      *Failure      `json:"failure,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter    func(context.Context, *StepEvent)
	OnStepRejected func(context.Context, *StepEvent)
	OnSubmit       func(context.Context, *SubmitEvent)
	OnSubmitted    func(context.Context, *SubmitEvent)
	OnSubmitFailed func(context.Context, *SubmitEvent)
	OnReset        func(context.Context, *StepEvent)
}

// Merge chains two hook sets so both receive every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter:    chainStep(h.OnStepEnter, other.OnStepEnter),
		OnStepRejected: chainStep(h.OnStepRejected, other.OnStepRejected),
		OnSubmit:       chainSubmit(h.OnSubmit, other.OnSubmit),
		OnSubmitted:    chainSubmit(h.OnSubmitted, other.OnSubmitted),
		OnSubmitFailed: chainSubmit(h.OnSubmitFailed, other.OnSubmitFailed),
		OnReset:        chainStep(h.OnReset, other.OnReset),
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainSubmit(a, b func(context.Context, *SubmitEvent)) func(context.Context, *SubmitEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SubmitEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
