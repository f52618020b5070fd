package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nocap-placify/placify/internal/runtime"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
	"github.com/nocap-placify/placify/pkg/wizards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Start(t *testing.T) {
	def := wizards.StudentRegistration()
	e := runtime.NewEngine()

	s := e.Start(context.Background(), def, "abc")
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, def.ID, s.WizardID)
	assert.Equal(t, 0, s.CurrentStep)
	assert.Equal(t, domain.StatusActive, s.Status)
	assert.Empty(t, s.Values)
	assert.False(t, s.Submitted)
}

func TestEngine_Set(t *testing.T) {
	def := wizards.StudentRegistration()
	e := runtime.NewEngine()
	ctx := context.Background()
	s := e.Start(ctx, def, "s1")

	t.Run("Normalizes And Does Not Mutate Input", func(t *testing.T) {
		next, err := e.Set(ctx, def, s, "srn", "  pes1ug20cs001 ")
		require.NoError(t, err)
		assert.Equal(t, "PES1UG20CS001", next.Values["srn"])
		assert.Empty(t, s.Values, "original session must be untouched")
	})

	t.Run("Unknown Field", func(t *testing.T) {
		_, err := e.Set(ctx, def, s, "favourite_colour", "blue")
		assert.ErrorIs(t, err, domain.ErrUnknownField)
	})

	t.Run("Field Of Another Step", func(t *testing.T) {
		_, err := e.Set(ctx, def, s, "cgpa", "9")
		assert.ErrorIs(t, err, domain.ErrFieldNotOnStep)
	})

	t.Run("All Or Nothing", func(t *testing.T) {
		_, err := e.SetValues(ctx, def, s, map[string]string{"name": "Ada", "cgpa": "9"})
		assert.Error(t, err)
	})

	t.Run("Strips Control Characters", func(t *testing.T) {
		next, err := e.Set(ctx, def, s, "name", "Ada\x1b[2J")
		require.NoError(t, err)
		assert.Equal(t, "Ada[2J", next.Values["name"])
	})

	t.Run("Rejects Invalid UTF8", func(t *testing.T) {
		_, err := e.Set(ctx, def, s, "name", "\xff")
		assert.ErrorIs(t, err, schema.ErrInvalidUTF8)
	})

	t.Run("Refused While Submitting", func(t *testing.T) {
		busy := s.Snapshot()
		busy.Status = domain.StatusSubmitting
		_, err := e.Set(ctx, def, busy, "name", "Ada")
		assert.ErrorIs(t, err, domain.ErrNotInteractive)
	})
}

func TestEngine_Advance(t *testing.T) {
	def := wizards.StudentRegistration()
	e := runtime.NewEngine()
	ctx := context.Background()

	t.Run("Valid Step Moves Forward", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		s, err := e.SetValues(ctx, def, s, studentValues[0])
		require.NoError(t, err)

		next, err := e.Advance(ctx, def, s)
		require.NoError(t, err)
		assert.Equal(t, 1, next.CurrentStep)
		assert.Empty(t, next.Errors)
	})

	t.Run("Invalid Step Stays And Flags Fields", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		values := map[string]string{}
		for k, v := range studentValues[0] {
			values[k] = v
		}
		values["phone"] = "12345"
		values["email"] = "not-an-email"
		s, err := e.SetValues(ctx, def, s, values)
		require.NoError(t, err)

		next, err := e.Advance(ctx, def, s)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStepInvalid)

		var stepErr *runtime.StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Equal(t, "personal", stepErr.StepID)
		assert.ElementsMatch(t, []string{"phone", "email"}, stepErr.Fields)

		require.NotNil(t, next)
		assert.Equal(t, 0, next.CurrentStep)
		assert.True(t, next.Errors["phone"])
		assert.True(t, next.Errors["email"])
		assert.False(t, next.Errors["name"])
	})

	t.Run("Empty Step Flags Everything", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		next, err := e.Advance(ctx, def, s)
		require.ErrorIs(t, err, domain.ErrStepInvalid)
		for _, name := range def.Steps[0].Fields {
			assert.True(t, next.Errors[name], name)
		}
	})

	t.Run("Fixing A Field Clears Its Flag", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		s, _ = e.Advance(ctx, def, s)
		require.NotEmpty(t, s.Errors)

		s, err := e.SetValues(ctx, def, s, studentValues[0])
		require.NoError(t, err)
		next, err := e.Advance(ctx, def, s)
		require.NoError(t, err)
		assert.Empty(t, next.Errors)
	})

	t.Run("Boundary Is A No-op", func(t *testing.T) {
		s := fillToReview(t, e, def, studentValues)
		next, err := e.Advance(ctx, def, s)
		assert.ErrorIs(t, err, domain.ErrLastStep)
		assert.Nil(t, next)
		assert.Equal(t, def.LastIndex(), s.CurrentStep)
	})
}

func TestEngine_Retreat(t *testing.T) {
	def := wizards.StudentRegistration()
	e := runtime.NewEngine()
	ctx := context.Background()

	t.Run("First Step Is A No-op", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		next, err := e.Retreat(ctx, def, s)
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStep)
	})

	t.Run("Does Not Validate", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		s, _ = e.SetValues(ctx, def, s, studentValues[0])
		s, err := e.Advance(ctx, def, s)
		require.NoError(t, err)
		require.Empty(t, s.Values["cgpa"])

		next, err := e.Retreat(ctx, def, s)
		require.NoError(t, err)
		assert.Equal(t, 0, next.CurrentStep)
	})

	t.Run("Round Trip Preserves Values", func(t *testing.T) {
		s := e.Start(ctx, def, "s1")
		s, _ = e.SetValues(ctx, def, s, studentValues[0])
		s, err := e.Advance(ctx, def, s)
		require.NoError(t, err)
		s, _ = e.SetValues(ctx, def, s, map[string]string{"cgpa": "9.1"})

		back, err := e.Retreat(ctx, def, s)
		require.NoError(t, err)
		forward, err := e.Advance(ctx, def, back)
		require.NoError(t, err)

		assert.Equal(t, s.CurrentStep, forward.CurrentStep)
		assert.Equal(t, s.Values, forward.Values)
	})
}

func TestEngine_StepIndexStaysInRange(t *testing.T) {
	def := wizards.MentorSession()
	e := runtime.NewEngine()
	ctx := context.Background()
	s := e.Start(ctx, def, "s1")

	moves := []bool{false, true, true, true, false, false, false, true}
	for _, forward := range moves {
		var next *domain.Session
		if forward {
			next, _ = e.Advance(ctx, def, s)
		} else {
			next, _ = e.Retreat(ctx, def, s)
		}
		if next != nil {
			s = next
		}
		assert.GreaterOrEqual(t, s.CurrentStep, 0)
		assert.LessOrEqual(t, s.CurrentStep, def.LastIndex())
	}
}

func TestEngine_RejectsForeignSession(t *testing.T) {
	e := runtime.NewEngine()
	ctx := context.Background()
	s := e.Start(ctx, wizards.MentorSession(), "s1")

	_, err := e.Advance(ctx, wizards.StudentRegistration(), s)
	assert.Error(t, err)
}

func TestEngine_Hooks(t *testing.T) {
	def := wizards.MentorSession()
	var entered, rejected []*domain.StepEvent
	e := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStepEnter:    func(_ context.Context, ev *domain.StepEvent) { entered = append(entered, ev) },
		OnStepRejected: func(_ context.Context, ev *domain.StepEvent) { rejected = append(rejected, ev) },
	}))
	ctx := context.Background()

	s := e.Start(ctx, def, "s1")
	_, _ = e.Advance(ctx, def, s)
	s, _ = e.SetValues(ctx, def, s, map[string]string{"mentor": "Dr. Rao", "srn": "PES2UG21EC123"})
	_, err := e.Advance(ctx, def, s)
	require.NoError(t, err)

	require.Len(t, entered, 2)
	assert.Equal(t, 0, entered[0].To)
	assert.Equal(t, 1, entered[1].To)
	require.Len(t, rejected, 1)
	assert.ElementsMatch(t, []string{"mentor", "srn"}, rejected[0].Invalid)
}
