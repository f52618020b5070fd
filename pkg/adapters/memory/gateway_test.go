package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nocap-placify/placify/pkg/adapters/memory"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/wizards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Records(t *testing.T) {
	gw := memory.NewGateway()
	values := map[string]string{"srn": "PES1UG20CS001"}

	receipt, err := gw.Submit(context.Background(), domain.Submission{Target: domain.TargetStudents, Values: values})
	require.NoError(t, err)
	assert.Equal(t, "students #1 recorded", receipt.Confirmation)

	values["srn"] = "changed"
	subs := gw.Submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, "PES1UG20CS001", subs[0].Values["srn"])
}

func TestGateway_FailWith(t *testing.T) {
	gw := memory.NewGateway()
	boom := &domain.SubmissionError{Reason: domain.ReasonRejected, StatusCode: 400, Err: errors.New("bad srn")}
	gw.FailWith(boom)

	_, err := gw.Submit(context.Background(), domain.Submission{})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, gw.Submissions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gw.FailWith(nil)
	_, err = gw.Submit(ctx, domain.Submission{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader(t *testing.T) {
	loader := memory.NewLoader(wizards.All()...)
	defs, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, defs, 2)
}
