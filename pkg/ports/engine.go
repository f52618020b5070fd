package ports

import (
	"context"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/presentation/view"
)

// WizardService is the session-oriented API exposed to inbound adapters
// (HTTP, MCP, terminal). Sessions are owned by the service; adapters refer to
// them by ID.
type WizardService interface {
	// Wizards lists the registered definitions.
	Wizards() []*domain.Definition

	// Wizard returns a single definition or domain.ErrWizardNotFound.
	Wizard(id string) (*domain.Definition, error)

	// Start opens a new session on the first step of a wizard.
	Start(ctx context.Context, wizardID string) (*domain.Session, error)

	// Session loads a session, applying a due auto reset.
	Session(ctx context.Context, sessionID string) (*domain.Session, error)

	// SetValues stores raw values for fields of the wizard.
	SetValues(ctx context.Context, sessionID string, values map[string]string) (*domain.Session, error)

	// Advance validates the current step and moves forward.
	// On refusal the returned session carries the updated error flags.
	Advance(ctx context.Context, sessionID string) (*domain.Session, error)

	// Retreat moves one step back without validating.
	Retreat(ctx context.Context, sessionID string) (*domain.Session, error)

	// Submit sends the collected values through the gateway.
	// On failure the returned session carries the failure notice.
	Submit(ctx context.Context, sessionID string) (*domain.Session, error)

	// Abandon discards a session.
	Abandon(ctx context.Context, sessionID string) error

	// Render builds the presentation contract for a session.
	Render(session *domain.Session) (view.View, error)
}

// Observable is implemented by services that notify about session changes,
// including changes not triggered by a caller such as the auto reset.
type Observable interface {
	Subscribe(fn func(*domain.Session)) (cancel func())
}
