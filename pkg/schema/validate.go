package schema

import (
	"fmt"
	"sort"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

var builtins = map[domain.FieldKind]func() Type{
	domain.KindText:     Text,
	domain.KindURL:      URL,
	domain.KindSRN:      SRN,
	domain.KindEmail:    Email,
	domain.KindCGPA:     CGPA,
	domain.KindSemester: Semester,
	domain.KindPhone:    Phone,
	domain.KindAge:      Age,
	domain.KindDate:     Date,
}

// Lookup returns the validator for a field kind.
// An empty kind resolves to Text.
func Lookup(kind domain.FieldKind) (Type, error) {
	if kind == "" {
		return Text(), nil
	}
	ctor, ok := builtins[kind]
	if !ok {
		return nil, fmt.Errorf("unknown field kind: %q", kind)
	}
	return ctor(), nil
}

// Kinds lists the supported field kinds in sorted order.
func Kinds() []domain.FieldKind {
	kinds := make([]domain.FieldKind, 0, len(builtins))
	for k := range builtins {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Valid reports whether raw satisfies the validator of the given kind.
// Unknown kinds never validate.
func Valid(kind domain.FieldKind, raw string) bool {
	t, err := Lookup(kind)
	if err != nil {
		return false
	}
	return t.Validate(t.Normalize(raw)) == nil
}

// Normalize canonicalizes raw input for the given kind.
func Normalize(kind domain.FieldKind, raw string) string {
	t, err := Lookup(kind)
	if err != nil {
		return raw
	}
	return t.Normalize(raw)
}

// ForDefinition builds the schema of every field in a wizard definition.
func ForDefinition(def *domain.Definition) (Schema, error) {
	s := make(Schema, len(def.Fields))
	for _, f := range def.Fields {
		t, err := Lookup(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("wizard %s field %s: %w", def.ID, f.Name, err)
		}
		s[f.Name] = t
	}
	return s, nil
}

// Validate checks if data conforms to the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]string) error {
	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return ValidateFields(schema, data, fields...)
}

// ValidateFields validates only specific fields from data against the schema,
// in the order given. Missing fields are treated as empty.
func ValidateFields(schema Schema, data map[string]string, fields ...string) error {
	var errs []error
	for _, name := range fields {
		t, ok := schema[name]
		if !ok {
			errs = append(errs, &ValidationError{Key: name, Reason: "not defined in schema"})
			continue
		}
		value := data[name]
		if err := t.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    name,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
