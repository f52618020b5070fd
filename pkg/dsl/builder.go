package dsl

import (
	"fmt"
	"time"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
)

// Builder manages the wizard construction.
type Builder struct {
	def   domain.Definition
	steps []*StepBuilder
	errs  []error
}

// New creates a new wizard builder.
func New(id string) *Builder {
	return &Builder{
		def: domain.Definition{ID: id, Title: id},
	}
}

// Title sets the display title of the wizard.
func (b *Builder) Title(title string) *Builder {
	b.def.Title = title
	return b
}

// Description sets the optional long description.
func (b *Builder) Description(desc string) *Builder {
	b.def.Description = desc
	return b
}

// Target names the endpoint the gateway submits to.
func (b *Builder) Target(target string) *Builder {
	b.def.Target = target
	return b
}

// ResetDelay overrides how long a submitted session stays acknowledged.
func (b *Builder) ResetDelay(d time.Duration) *Builder {
	b.def.ResetDelay = d
	return b
}

// Step appends an input step.
func (b *Builder) Step(id, title string) *StepBuilder {
	sb := &StepBuilder{
		step:    domain.Step{ID: id, Title: title},
		builder: b,
	}
	b.steps = append(b.steps, sb)
	return sb
}

// Review appends the read-only review step. It must be the last step.
func (b *Builder) Review(id, title string) *StepBuilder {
	sb := b.Step(id, title)
	sb.step.Review = true
	return sb
}

// Build compiles the wizard into a validated definition.
func (b *Builder) Build() (*domain.Definition, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("wizard %s: %w", b.def.ID, b.errs[0])
	}

	def := b.def
	def.Fields = nil
	def.Steps = make([]domain.Step, 0, len(b.steps))
	for _, sb := range b.steps {
		step := sb.step
		step.Fields = nil
		for _, f := range sb.fields {
			def.Fields = append(def.Fields, f)
			step.Fields = append(step.Fields, f.Name)
		}
		def.Steps = append(def.Steps, step)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	if _, err := schema.ForDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// MustBuild is like Build but panics on error.
// It is intended for package-level tables whose shape is fixed at compile time.
func (b *Builder) MustBuild() *domain.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step    domain.Step
	fields  []domain.Field
	builder *Builder
}

// Subtitle sets the secondary heading of the step.
func (s *StepBuilder) Subtitle(subtitle string) *StepBuilder {
	s.step.Subtitle = subtitle
	return s
}

// FieldOption customizes a field.
type FieldOption func(*domain.Field)

// Param sets the wire name of the field.
func Param(name string) FieldOption {
	return func(f *domain.Field) { f.Param = name }
}

// Placeholder sets the hint shown in an empty input.
func Placeholder(text string) FieldOption {
	return func(f *domain.Field) { f.Placeholder = text }
}

// Multiline marks the field as a text area.
func Multiline() FieldOption {
	return func(f *domain.Field) { f.Multiline = true }
}

// Field adds a field governed by this step.
func (s *StepBuilder) Field(name, label string, kind domain.FieldKind, opts ...FieldOption) *StepBuilder {
	if s.step.Review {
		s.builder.errs = append(s.builder.errs, fmt.Errorf("review step %s cannot govern field %s", s.step.ID, name))
		return s
	}
	f := domain.Field{Name: name, Label: label, Kind: kind}
	for _, opt := range opts {
		opt(&f)
	}
	s.fields = append(s.fields, f)
	return s
}
