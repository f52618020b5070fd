package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func jsonLogger(t *testing.T, buf *bytes.Buffer, level slog.Level) *slog.Logger {
	t.Helper()
	logger, err := logging.NewFormat(buf, "json", level)
	require.NoError(t, err)
	return logger
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := observability.LoggingHooks(jsonLogger(t, &buf, slog.LevelInfo))
	ctx := context.Background()
	base := domain.EventBase{SessionID: "s1", WizardID: domain.WizardStudentRegistration}

	b := base
	b.Type = domain.EventStepEnter
	hooks.OnStepEnter(ctx, &domain.StepEvent{EventBase: b, From: 0, To: 1})

	b.Type = domain.EventStepRejected
	hooks.OnStepRejected(ctx, &domain.StepEvent{EventBase: b, Invalid: []string{"cgpa"}})

	b.Type = domain.EventSubmitFailed
	hooks.OnSubmitFailed(ctx, &domain.SubmitEvent{
		EventBase: b,
		Target:    domain.TargetStudents,
		Duration:  time.Second,
		Failure:   &domain.Failure{Reason: domain.ReasonNetwork, Message: "connection refused"},
	})

	recs := records(t, &buf)
	require.Len(t, recs, 2, "step_enter is logged at debug")

	assert.Equal(t, "step_rejected", recs[0]["msg"])
	assert.Equal(t, []any{"cgpa"}, recs[0]["invalid"])

	assert.Equal(t, "submit_failed", recs[1]["msg"])
	assert.Equal(t, "WARN", recs[1]["level"])
	assert.Equal(t, "network", recs[1]["reason"])
	assert.Equal(t, "connection refused", recs[1]["err"])
}

func TestLoggingHooks_MergeWithOthers(t *testing.T) {
	var buf bytes.Buffer
	var count int
	hooks := observability.LoggingHooks(jsonLogger(t, &buf, slog.LevelDebug)).Merge(domain.LifecycleHooks{
		OnReset: func(context.Context, *domain.StepEvent) { count++ },
	})

	hooks.OnReset(context.Background(), &domain.StepEvent{EventBase: domain.EventBase{Type: domain.EventReset}})
	assert.Equal(t, 1, count)
	assert.Len(t, records(t, &buf), 1)
}
