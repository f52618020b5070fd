package observability

import (
	"context"
	"log/slog"

	"github.com/nocap-placify/placify/pkg/domain"
)

// LoggingHooks logs every lifecycle event. Field values are never logged,
// only field names.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	step := func(level slog.Level) func(context.Context, *domain.StepEvent) {
		return func(ctx context.Context, e *domain.StepEvent) {
			attrs := []any{
				"session_id", e.SessionID,
				"wizard", e.WizardID,
				"from", e.From,
				"to", e.To,
			}
			if len(e.Invalid) > 0 {
				attrs = append(attrs, "invalid", e.Invalid)
			}
			logger.Log(ctx, level, string(e.Type), attrs...)
		}
	}
	submit := func(level slog.Level) func(context.Context, *domain.SubmitEvent) {
		return func(ctx context.Context, e *domain.SubmitEvent) {
			attrs := []any{
				"session_id", e.SessionID,
				"wizard", e.WizardID,
				"target", e.Target,
			}
			if e.Duration > 0 {
				attrs = append(attrs, "duration", e.Duration)
			}
			if e.Confirmation != "" {
				attrs = append(attrs, "confirmation", e.Confirmation)
			}
			if e.Failure != nil {
				attrs = append(attrs, "reason", e.Failure.Reason, "err", e.Failure.Message)
			}
			logger.Log(ctx, level, string(e.Type), attrs...)
		}
	}

	return domain.LifecycleHooks{
		OnStepEnter:    step(slog.LevelDebug),
		OnStepRejected: step(slog.LevelInfo),
		OnReset:        step(slog.LevelInfo),
		OnSubmit:       submit(slog.LevelInfo),
		OnSubmitted:    submit(slog.LevelInfo),
		OnSubmitFailed: submit(slog.LevelWarn),
	}
}
