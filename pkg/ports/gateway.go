package ports

import (
	"context"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Gateway issues the single outbound request of a completed wizard.
//
// Implementations make exactly one call per Submit, never retry, and must not
// mutate sub.Values. Failures should be returned as *domain.SubmissionError
// so the engine can classify them.
type Gateway interface {
	Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, sub domain.Submission) (domain.Receipt, error)

// Submit calls f(ctx, sub).
func (f GatewayFunc) Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error) {
	return f(ctx, sub)
}

// Publisher announces accepted submissions.
// Publishing is best effort; it never affects the session outcome.
type Publisher interface {
	Publish(ctx context.Context, event *domain.SubmitEvent) error
}
