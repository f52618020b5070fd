package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrWizardNotFound is returned when no definition is registered under an ID.
var ErrWizardNotFound = errors.New("wizard not found")

// ErrUnknownField is returned when a value is set for a field the wizard does not define.
var ErrUnknownField = errors.New("unknown field")

// ErrStepInvalid is returned when advance is refused because a governed field failed validation.
var ErrStepInvalid = errors.New("step has invalid fields")

// ErrLastStep is returned when advance is attempted on the terminal step.
var ErrLastStep = errors.New("already on the last step")

// ErrNotLastStep is returned when submit is attempted before the terminal step.
var ErrNotLastStep = errors.New("submit is only available on the last step")

// ErrSubmissionInFlight is returned when submit is attempted while a previous call is pending.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ErrAlreadySubmitted is returned when submit is attempted before the auto reset fires.
var ErrAlreadySubmitted = errors.New("session already submitted")

// ErrNotInteractive is returned when a session is edited while submitting or submitted.
var ErrNotInteractive = errors.New("session is not accepting input")

// ErrFieldNotOnStep is returned when a value is set for a field governed by another step.
var ErrFieldNotOnStep = errors.New("field is not on the current step")
