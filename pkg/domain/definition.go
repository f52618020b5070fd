package domain

import (
	"fmt"
	"time"
)

// FieldKind names the validator applied to a field value.
type FieldKind string

const (
	KindText     FieldKind = "text"     // Required free text
	KindURL      FieldKind = "url"      // Profile or resume link
	KindSRN      FieldKind = "srn"      // Student Registration Number
	KindEmail    FieldKind = "email"
	KindCGPA     FieldKind = "cgpa"     // Float in [1, 10]
	KindSemester FieldKind = "semester" // Integer in [1, 8]
	KindPhone    FieldKind = "phone"    // Exactly 10 digits
	KindAge      FieldKind = "age"      // Positive integer
	KindDate     FieldKind = "date"     // YYYY-MM-DD
)

// Field describes a single input collected by a wizard.
type Field struct {
	Name  string    `json:"name" yaml:"name"`
	Label string    `json:"label" yaml:"label"`
	Kind  FieldKind `json:"kind" yaml:"kind"`

	// Param is the name used on the wire when the field is submitted.
	// Defaults to Name.
	Param string `json:"param,omitempty" yaml:"param,omitempty"`

	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Multiline   bool   `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// WireName returns the submission key for the field.
func (f Field) WireName() string {
	if f.Param != "" {
		return f.Param
	}
	return f.Name
}

// Step is one screen of the wizard.
type Step struct {
	Index    int      `json:"index"`
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Fields   []string `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Review marks the read-only confirmation step. It governs no fields.
	Review bool `json:"review,omitempty" yaml:"review,omitempty"`
}

// Definition is the immutable step-field table of a wizard.
type Definition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Target names the external endpoint the gateway submits to.
	Target string `json:"target"`

	Fields []Field `json:"fields"`
	Steps  []Step  `json:"steps"`

	// ResetDelay overrides DefaultResetDelay when positive.
	ResetDelay time.Duration `json:"reset_delay,omitempty"`

	fieldIndex map[string]int
}

// Field looks up a field by name.
func (d *Definition) Field(name string) (Field, bool) {
	if d.fieldIndex == nil {
		for _, f := range d.Fields {
			if f.Name == name {
				return f, true
			}
		}
		return Field{}, false
	}
	i, ok := d.fieldIndex[name]
	if !ok {
		return Field{}, false
	}
	return d.Fields[i], true
}

// Step returns the step at index i.
func (d *Definition) Step(i int) (Step, bool) {
	if i < 0 || i >= len(d.Steps) {
		return Step{}, false
	}
	return d.Steps[i], true
}

// LastIndex is the index of the terminal (submit) step.
func (d *Definition) LastIndex() int {
	return len(d.Steps) - 1
}

// EffectiveResetDelay returns the delay before a submitted session resets.
func (d *Definition) EffectiveResetDelay() time.Duration {
	if d.ResetDelay > 0 {
		return d.ResetDelay
	}
	return DefaultResetDelay
}

// Validate checks that the definition is structurally sound and indexes it.
// Every field must be governed by exactly one non-review step and the last
// step must be the review step.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("wizard definition missing id")
	}
	if len(d.Steps) < 2 {
		return fmt.Errorf("wizard %s: needs at least one input step and a review step", d.ID)
	}

	index := make(map[string]int, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			return fmt.Errorf("wizard %s: field %d missing name", d.ID, i)
		}
		if _, dup := index[f.Name]; dup {
			return fmt.Errorf("wizard %s: duplicate field %q", d.ID, f.Name)
		}
		index[f.Name] = i
	}

	owner := make(map[string]string, len(d.Fields))
	for i := range d.Steps {
		s := &d.Steps[i]
		s.Index = i
		if s.ID == "" {
			return fmt.Errorf("wizard %s: step %d missing id", d.ID, i)
		}
		if s.Review {
			if len(s.Fields) > 0 {
				return fmt.Errorf("wizard %s: review step %s cannot govern fields", d.ID, s.ID)
			}
			if i != len(d.Steps)-1 {
				return fmt.Errorf("wizard %s: review step %s must be last", d.ID, s.ID)
			}
			continue
		}
		if len(s.Fields) == 0 {
			return fmt.Errorf("wizard %s: step %s governs no fields", d.ID, s.ID)
		}
		for _, name := range s.Fields {
			if _, ok := index[name]; !ok {
				return fmt.Errorf("wizard %s: step %s references unknown field %q", d.ID, s.ID, name)
			}
			if prev, taken := owner[name]; taken {
				return fmt.Errorf("wizard %s: field %q governed by both %s and %s", d.ID, name, prev, s.ID)
			}
			owner[name] = s.ID
		}
	}

	if !d.Steps[len(d.Steps)-1].Review {
		return fmt.Errorf("wizard %s: last step must be a review step", d.ID)
	}
	for _, f := range d.Fields {
		if _, ok := owner[f.Name]; !ok {
			return fmt.Errorf("wizard %s: field %q is not governed by any step", d.ID, f.Name)
		}
	}

	d.fieldIndex = index
	return nil
}
