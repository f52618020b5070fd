/*
Package placify runs guided session wizards: linear, step-gated forms that
validate each step before advancing, keep every value when the user goes
back, and end in a single submission to an external endpoint.

# Concept

A wizard is an immutable table of steps and fields (see pkg/wizards for the
built-in student registration and mentor session tables). A session is one
run of a wizard. The Engine owns sessions: it serializes access to each of
them, persists them through a ports.StateStore, sends the final submission
through a ports.Gateway and returns submitted sessions to their first step
after a short delay.

# Usage

	eng, err := placify.New(
		placify.WithGateway(httpgw.NewGateway("http://localhost:8000")),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	s, _ := eng.Start(ctx, wizards.StudentRegistration().ID)
	s, _ = eng.SetValues(ctx, s.ID, map[string]string{"name": "Ada", "srn": "PES1UG20CS001"})
	s, err = eng.Advance(ctx, s.ID)
	if errors.Is(err, domain.ErrStepInvalid) {
		// s.Errors flags the fields to fix
	}

Inbound adapters (HTTP, MCP, the terminal form) talk to the Engine through
ports.WizardService and render sessions with pkg/presentation/view.
*/
package placify
