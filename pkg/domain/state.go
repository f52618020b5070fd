package domain

import (
	"maps"
	"time"
)

// Status defines where a session is in its lifecycle.
type Status string

const (
	StatusActive     Status = "active"     // Accepting edits and navigation
	StatusSubmitting Status = "submitting" // Gateway call in flight
	StatusSubmitted  Status = "submitted"  // Acknowledged, waiting for auto reset
)

// Session is the mutable aggregate of one wizard run.
type Session struct {
	ID       string `json:"id"`
	WizardID string `json:"wizard_id"`

	// CurrentStep is the index of the active step. 0 <= CurrentStep < len(Steps).
	CurrentStep int `json:"current_step"`

	// Values holds normalized raw input keyed by field name.
	Values map[string]string `json:"values"`

	// Errors flags fields that failed validation on the last advance.
	Errors map[string]bool `json:"errors,omitempty"`

	Status Status `json:"status"`

	// Submitted is true only on the terminal step after a successful submission.
	Submitted bool `json:"submitted"`

	// Confirmation is the opaque acknowledgment of the last successful submission.
	Confirmation string `json:"confirmation,omitempty"`

	// Failure is the notice of the last failed submission, if any.
	Failure *Failure `json:"failure,omitempty"`

	// ResetAt is when a submitted session returns to the first step.
	ResetAt time.Time `json:"reset_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a clean session on the first step.
func NewSession(id, wizardID string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		WizardID:  wizardID,
		Values:    make(map[string]string),
		Errors:    make(map[string]bool),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Snapshot returns a deep copy safe for independent mutation.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	next := *s
	next.Values = maps.Clone(s.Values)
	if next.Values == nil {
		next.Values = make(map[string]string)
	}
	next.Errors = maps.Clone(s.Errors)
	if next.Errors == nil {
		next.Errors = make(map[string]bool)
	}
	if s.Failure != nil {
		f := *s.Failure
		next.Failure = &f
	}
	return &next
}

// Interactive reports whether the session accepts edits and navigation.
func (s *Session) Interactive() bool {
	return s.Status == StatusActive
}
