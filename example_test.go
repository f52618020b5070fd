package placify_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nocap-placify/placify"
	"github.com/nocap-placify/placify/pkg/adapters/memory"
	"github.com/nocap-placify/placify/pkg/domain"
)

// ExampleEngine_Advance walks the mentor session wizard by hand, including a
// refused step.
func ExampleEngine_Advance() {
	eng, err := placify.New(placify.WithGateway(memory.NewGateway()))
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()
	ctx := context.Background()

	s, _ := eng.Start(ctx, domain.WizardMentorSession)
	s, _ = eng.SetValues(ctx, s.ID, map[string]string{"mentor": "Dr. Rao", "srn": "PES1UG20XX001"})

	s, err = eng.Advance(ctx, s.ID)
	fmt.Println(errors.Is(err, domain.ErrStepInvalid), s.Errors["srn"], s.CurrentStep)

	s, _ = eng.SetValues(ctx, s.ID, map[string]string{"srn": "pes1ug20cs001"})
	s, _ = eng.Advance(ctx, s.ID)
	fmt.Println(s.CurrentStep, s.Values["srn"])
	// Output:
	// true true 0
	// 1 PES1UG20CS001
}

// ExampleEngine_Fill submits a whole wizard in one call.
func ExampleEngine_Fill() {
	gw := memory.NewGateway()
	eng, err := placify.New(placify.WithGateway(gw))
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	s, err := eng.Fill(context.Background(), domain.WizardMentorSession, map[string]string{
		"mentor": "Dr. Rao",
		"srn":    "pes1ug20cs001",
		"date":   "2024-03-01",
		"notes":  "Practice graphs.",
	})
	if err != nil {
		log.Fatal(err)
	}

	sub := gw.Submissions()[0]
	fmt.Println(s.Submitted, sub.Target, sub.Values["mentor_name"], sub.Values["advice"])
	// Output: true mentor_sessions Dr. Rao Practice graphs.
}
