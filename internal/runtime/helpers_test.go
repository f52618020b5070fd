package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/nocap-placify/placify/internal/runtime"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/require"
)

var studentValues = []map[string]string{
	{
		"name":   "Ada Lovelace",
		"srn":    "pes1ug20cs001",
		"age":    "21",
		"gender": "F",
		"phone":  "9876543210",
		"email":  "ada@pes.edu",
	},
	{
		"semester": "6",
		"cgpa":     "8.5",
		"degree":   "BTech",
		"stream":   "CSE",
		"mentor":   "Dr. Rao",
	},
	{
		"github":   "https://github.com/ada",
		"leetcode": "https://leetcode.com/ada",
		"linkedin": "https://linkedin.com/in/ada",
		"resume":   "https://drive.example.com/ada.pdf",
	},
}

type fakeClock struct {
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) { c.now = c.now.Add(d) }

// fillToReview walks a fresh session through every input step.
func fillToReview(t *testing.T, e *runtime.Engine, def *domain.Definition, steps []map[string]string) *domain.Session {
	t.Helper()
	ctx := context.Background()
	s := e.Start(ctx, def, "s1")
	for _, values := range steps {
		var err error
		s, err = e.SetValues(ctx, def, s, values)
		require.NoError(t, err)
		s, err = e.Advance(ctx, def, s)
		require.NoError(t, err)
	}
	require.Equal(t, def.LastIndex(), s.CurrentStep)
	return s
}
