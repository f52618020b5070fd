package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/stretchr/testify/assert"
)

// discardStore accepts every write and holds nothing.
type discardStore struct{}

func (discardStore) Save(context.Context, string, *domain.Session) error { return nil }
func (discardStore) Load(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (discardStore) Delete(context.Context, string) error      { return nil }
func (discardStore) List(context.Context) ([]string, error) { return nil, nil }

func TestManager_LocksReleasedAfterDelete(t *testing.T) {
	mgr := NewManager(discardStore{})
	ctx := context.Background()

	for i := range 5000 {
		id := fmt.Sprintf("kiosk-%d", i)
		_ = mgr.Save(ctx, domain.NewSession(id, domain.WizardMentorSession))
		_ = mgr.Delete(ctx, id)
	}

	assert.Empty(t, mgr.locks, "per-session locks must not outlive their sessions")
}
