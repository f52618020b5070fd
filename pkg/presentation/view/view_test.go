package view_test

import (
	"testing"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/presentation/view"
	"github.com/nocap-placify/placify/pkg/wizards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FirstStep(t *testing.T) {
	def := wizards.StudentRegistration()
	s := domain.NewSession("s1", def.ID)
	s.Values["srn"] = "PES1UG20CS001"
	s.Errors["email"] = true

	v, err := view.Build(def, s)
	require.NoError(t, err)

	assert.Equal(t, "personal", v.Step.ID)
	assert.Equal(t, view.Progress{Current: 1, Total: 4, Percent: 25}, v.Progress)
	assert.False(t, v.CanRetreat)
	assert.Equal(t, view.ActionNext, v.Action)
	assert.True(t, v.Interactive)
	assert.Empty(t, v.Review)

	require.Len(t, v.Fields, 6)
	assert.Equal(t, "srn", v.Fields[1].Name)
	assert.Equal(t, "PES1UG20CS001", v.Fields[1].Value)
	assert.Equal(t, "Email", v.Fields[5].Label)
	assert.True(t, v.Fields[5].Error)
}

func TestBuild_ReviewStep(t *testing.T) {
	def := wizards.MentorSession()
	s := domain.NewSession("s1", def.ID)
	s.CurrentStep = def.LastIndex()
	s.Values["notes"] = "Practice graphs."

	v, err := view.Build(def, s)
	require.NoError(t, err)

	assert.True(t, v.Step.Review)
	assert.Empty(t, v.Fields)
	require.Len(t, v.Review, 4)
	assert.Equal(t, "Practice graphs.", v.Review[3].Value)
	assert.True(t, v.Review[3].Multiline)
	assert.Equal(t, view.ActionSubmit, v.Action)
	assert.True(t, v.CanRetreat)
	assert.Equal(t, 100, v.Progress.Percent)
}

func TestBuild_Submitted(t *testing.T) {
	def := wizards.MentorSession()
	s := domain.NewSession("s1", def.ID)
	s.CurrentStep = def.LastIndex()
	s.Status = domain.StatusSubmitted
	s.Submitted = true
	s.Confirmation = "session 7 saved"

	v, err := view.Build(def, s)
	require.NoError(t, err)

	assert.False(t, v.Interactive)
	assert.False(t, v.CanRetreat)
	assert.Equal(t, view.ActionNone, v.Action)
	assert.Equal(t, "Submitted successfully. Confirmation: session 7 saved", v.Message)
}

func TestBuild_FailureNotice(t *testing.T) {
	def := wizards.MentorSession()
	s := domain.NewSession("s1", def.ID)
	s.CurrentStep = def.LastIndex()
	s.Failure = &domain.Failure{Reason: domain.ReasonNetwork, Message: "connection refused"}

	v, err := view.Build(def, s)
	require.NoError(t, err)
	require.NotNil(t, v.Failure)
	assert.Equal(t, domain.ReasonNetwork, v.Failure.Reason)
	assert.Equal(t, view.ActionSubmit, v.Action)
	assert.Empty(t, v.Message)
}

func TestBuild_Mismatch(t *testing.T) {
	s := domain.NewSession("s1", domain.WizardMentorSession)
	_, err := view.Build(wizards.StudentRegistration(), s)
	assert.Error(t, err)

	s = domain.NewSession("s1", domain.WizardMentorSession)
	s.CurrentStep = 9
	_, err = view.Build(wizards.MentorSession(), s)
	assert.Error(t, err)
}
