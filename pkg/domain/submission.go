package domain

import (
	"context"
	"errors"
	"fmt"
)

// Submission is the single outbound request produced by the terminal step.
type Submission struct {
	SessionID string `json:"session_id"`
	WizardID  string `json:"wizard_id"`
	Target    string `json:"target"`

	// Values is keyed by wire name (Field.WireName).
	Values map[string]string `json:"values"`
}

// Receipt is the opaque acknowledgment returned by a gateway.
type Receipt struct {
	Confirmation string `json:"confirmation"`
}

// FailureReason classifies why a submission did not succeed.
type FailureReason string

const (
	ReasonNetwork  FailureReason = "network"
	ReasonRejected FailureReason = "rejected" // Server refused the values
	ReasonTimeout  FailureReason = "timeout"
	ReasonCanceled FailureReason = "canceled"
	ReasonUnknown  FailureReason = "unknown"
)

// Failure is the user-facing notice of a failed submission.
type Failure struct {
	Reason  FailureReason `json:"reason"`
	Message string        `json:"message"`
}

// SubmissionResult is the transient outcome of one gateway call.
type SubmissionResult struct {
	Confirmation string
	Failure      *Failure
}

// OK reports whether the submission was acknowledged.
func (r SubmissionResult) OK() bool {
	return r.Failure == nil
}

// SubmissionError is returned by gateways when a submission fails.
type SubmissionError struct {
	Reason     FailureReason
	StatusCode int // Upstream status, when there was one
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("submission %s (status %d): %v", e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("submission %s: %v", e.Reason, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// ResultOf folds a gateway outcome into a SubmissionResult.
func ResultOf(receipt Receipt, err error) SubmissionResult {
	if err == nil {
		return SubmissionResult{Confirmation: receipt.Confirmation}
	}
	return SubmissionResult{Failure: &Failure{
		Reason:  ClassifyFailure(err),
		Message: err.Error(),
	}}
}

// ClassifyFailure maps a gateway error onto a FailureReason.
func ClassifyFailure(err error) FailureReason {
	var subErr *SubmissionError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.As(err, &subErr):
		return subErr.Reason
	default:
		return ReasonUnknown
	}
}
