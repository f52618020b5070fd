// Package view builds the presentation contract of a wizard session.
//
// A View carries everything a front end needs to draw the current screen:
// the step header, its fields with values and error flags, a progress
// indicator, which controls are enabled and, on the review step, the
// read-only summary of every value entered so far. It is deliberately free of
// styling; renderers (terminal, HTML, chat) decide how it looks.
package view

import (
	"fmt"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Action is the primary control offered on the current screen.
type Action string

const (
	ActionNext   Action = "next"
	ActionSubmit Action = "submit"
	ActionNone   Action = "none" // Submitting or submitted
)

// SuccessMessage is shown while a submitted session waits for its reset.
const SuccessMessage = "Submitted successfully."

// View is the renderable snapshot of a session.
type View struct {
	SessionID   string `json:"session_id"`
	WizardID    string `json:"wizard_id"`
	WizardTitle string `json:"wizard_title"`

	Step     StepHeader  `json:"step"`
	Fields   []FieldView `json:"fields"`
	Review   []FieldView `json:"review,omitempty"`
	Progress Progress    `json:"progress"`

	CanRetreat  bool   `json:"can_retreat"`
	Action      Action `json:"action"`
	Interactive bool   `json:"interactive"`
	Submitting  bool   `json:"submitting"`
	Submitted   bool   `json:"submitted"`

	Message string          `json:"message,omitempty"`
	Failure *domain.Failure `json:"failure,omitempty"`
}

// StepHeader is the title block of the current step.
type StepHeader struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Review   bool   `json:"review,omitempty"`
}

// FieldView is one input with its current value and error flag.
type FieldView struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Kind        domain.FieldKind `json:"kind"`
	Value       string           `json:"value"`
	Error       bool             `json:"error"`
	Placeholder string           `json:"placeholder,omitempty"`
	Multiline   bool             `json:"multiline,omitempty"`
}

// Progress reflects CurrentStep out of the step count.
type Progress struct {
	Current int `json:"current"` // 1-based
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// Build renders a session against its definition.
func Build(def *domain.Definition, s *domain.Session) (View, error) {
	if s.WizardID != def.ID {
		return View{}, fmt.Errorf("session %s belongs to wizard %s, not %s", s.ID, s.WizardID, def.ID)
	}
	step, ok := def.Step(s.CurrentStep)
	if !ok {
		return View{}, fmt.Errorf("session %s is on step %d of %d", s.ID, s.CurrentStep, len(def.Steps))
	}

	total := len(def.Steps)
	v := View{
		SessionID:   s.ID,
		WizardID:    def.ID,
		WizardTitle: def.Title,
		Step: StepHeader{
			Index:    step.Index,
			ID:       step.ID,
			Title:    step.Title,
			Subtitle: step.Subtitle,
			Review:   step.Review,
		},
		Fields: make([]FieldView, 0, len(step.Fields)),
		Progress: Progress{
			Current: s.CurrentStep + 1,
			Total:   total,
			Percent: (s.CurrentStep + 1) * 100 / total,
		},
		Interactive: s.Interactive(),
		Submitting:  s.Status == domain.StatusSubmitting,
		Submitted:   s.Submitted,
		Failure:     s.Failure,
	}

	for _, name := range step.Fields {
		if f, ok := def.Field(name); ok {
			v.Fields = append(v.Fields, fieldView(f, s))
		}
	}

	if step.Review {
		v.Review = make([]FieldView, 0, len(def.Fields))
		for _, st := range def.Steps {
			for _, name := range st.Fields {
				if f, ok := def.Field(name); ok {
					v.Review = append(v.Review, fieldView(f, s))
				}
			}
		}
	}

	switch {
	case !v.Interactive:
		v.Action = ActionNone
	case s.CurrentStep == def.LastIndex():
		v.Action = ActionSubmit
	default:
		v.Action = ActionNext
	}
	v.CanRetreat = v.Interactive && s.CurrentStep > 0

	if s.Submitted {
		v.Message = SuccessMessage
		if s.Confirmation != "" {
			v.Message = fmt.Sprintf("%s Confirmation: %s", SuccessMessage, s.Confirmation)
		}
	}

	return v, nil
}

func fieldView(f domain.Field, s *domain.Session) FieldView {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	return FieldView{
		Name:        f.Name,
		Label:       label,
		Kind:        f.Kind,
		Value:       s.Values[f.Name],
		Error:       s.Errors[f.Name],
		Placeholder: f.Placeholder,
		Multiline:   f.Multiline,
	}
}
