package registry_test

import (
	"testing"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/registry"
	"github.com/nocap-placify/placify/pkg/wizards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register(wizards.StudentRegistration()))
	require.NoError(t, r.Register(wizards.MentorSession()))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, domain.WizardMentorSession, list[0].ID)

	def, err := r.Get(domain.WizardStudentRegistration)
	require.NoError(t, err)
	assert.Equal(t, domain.TargetStudents, def.Target)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrWizardNotFound)
}

func TestRegistry_RejectsInvalid(t *testing.T) {
	r := registry.NewRegistry()
	err := r.Register(&domain.Definition{ID: "broken"})
	assert.Error(t, err)
	assert.Empty(t, r.List())
}

func TestRegistry_Replace(t *testing.T) {
	r := registry.NewRegistry()
	require.NoError(t, r.Register(wizards.StudentRegistration()))

	require.NoError(t, r.Replace([]*domain.Definition{wizards.MentorSession()}))
	_, err := r.Get(domain.WizardStudentRegistration)
	assert.ErrorIs(t, err, domain.ErrWizardNotFound)

	err = r.Replace([]*domain.Definition{wizards.MentorSession(), wizards.MentorSession()})
	assert.Error(t, err)
	_, err = r.Get(domain.WizardMentorSession)
	assert.NoError(t, err, "failed replace leaves contents untouched")
}
