package tests

import (
	"context"
	"testing"
	"time"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store ports.StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, domain.WizardStudentRegistration)
		session.CurrentStep = 2
		session.Values["srn"] = "PES1UG20CS001"
		session.Errors["cgpa"] = true

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.WizardID, loaded.WizardID)
		assert.Equal(t, 2, loaded.CurrentStep)
		assert.Equal(t, "PES1UG20CS001", loaded.Values["srn"])
		assert.True(t, loaded.Errors["cgpa"])
		assert.Equal(t, domain.StatusActive, loaded.Status)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		session := domain.NewSession(sessionID, domain.WizardStudentRegistration)
		session.Values["name"] = "Ada"
		require.NoError(t, store.Save(ctx, sessionID, session))

		session.Values["name"] = "mutated after save"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", loaded.Values["name"])

		loaded.Values["name"] = "mutated after load"
		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", again.Values["name"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, domain.WizardMentorSession))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1, domain.WizardMentorSession))
		_ = store.Save(ctx, id2, domain.NewSession(id2, domain.WizardMentorSession))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
