package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Type defines the contract for field validation.
// Implementations determine how raw input is normalized and validated.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "srn", "cgpa").
	Name() string
	// Normalize canonicalizes raw input before it is stored.
	Normalize(raw string) string
	// Validate checks if a stored value conforms to this type.
	Validate(raw string) error
}

var errEmpty = errors.New("required")

var (
	srnPattern   = regexp.MustCompile(`(?i)^PES[1-2]UG[0-9]{2}(CS|EC)[0-9]{3}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// --- Built-in Type Implementations ---

// TextType accepts any value that is non-empty after trimming whitespace.
type TextType struct {
	name string
}

func (t *TextType) Name() string { return t.name }

func (t *TextType) Normalize(raw string) string { return strings.TrimSpace(raw) }

func (t *TextType) Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errEmpty
	}
	return nil
}

// PatternType validates against a regular expression.
type PatternType struct {
	name    string
	pattern *regexp.Regexp
	upper   bool
}

func (t *PatternType) Name() string { return t.name }

func (t *PatternType) Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if t.upper {
		return strings.ToUpper(raw)
	}
	return raw
}

func (t *PatternType) Validate(raw string) error {
	if raw == "" {
		return errEmpty
	}
	if !t.pattern.MatchString(raw) {
		return fmt.Errorf("does not match %s format", t.name)
	}
	return nil
}

// FloatRangeType validates a decimal number in an inclusive range.
type FloatRangeType struct {
	name     string
	min, max float64
}

func (t *FloatRangeType) Name() string { return t.name }

func (t *FloatRangeType) Normalize(raw string) string { return strings.TrimSpace(raw) }

func (t *FloatRangeType) Validate(raw string) error {
	if raw == "" {
		return errEmpty
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("expected a number")
	}
	// NaN fails both comparisons.
	if !(v >= t.min && v <= t.max) {
		return fmt.Errorf("must be between %g and %g", t.min, t.max)
	}
	return nil
}

// IntRangeType validates an integer in an inclusive range.
// A max of zero means unbounded.
type IntRangeType struct {
	name     string
	min, max int
}

func (t *IntRangeType) Name() string { return t.name }

func (t *IntRangeType) Normalize(raw string) string { return strings.TrimSpace(raw) }

func (t *IntRangeType) Validate(raw string) error {
	if raw == "" {
		return errEmpty
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("expected a whole number")
	}
	if v < t.min {
		return fmt.Errorf("must be at least %d", t.min)
	}
	if t.max != 0 && v > t.max {
		return fmt.Errorf("must be at most %d", t.max)
	}
	return nil
}

// DateType validates a calendar date in YYYY-MM-DD form.
type DateType struct{}

func (t *DateType) Name() string { return "date" }

func (t *DateType) Normalize(raw string) string { return strings.TrimSpace(raw) }

func (t *DateType) Validate(raw string) error {
	if raw == "" {
		return errEmpty
	}
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return fmt.Errorf("expected a date as YYYY-MM-DD")
	}
	return nil
}

// CustomType wraps a user-defined validation function.
type CustomType struct {
	name string
	fn   func(string) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Normalize(raw string) string { return strings.TrimSpace(raw) }

func (t *CustomType) Validate(raw string) error {
	if raw == "" {
		return errEmpty
	}
	return t.fn(raw)
}

// --- Constructors ---

// Text returns a required free-text type.
func Text() Type { return &TextType{name: "text"} }

// URL returns a required link type. Links are kept as free text.
func URL() Type { return &TextType{name: "url"} }

// SRN returns the Student Registration Number type. Values are upper-cased.
func SRN() Type { return &PatternType{name: "srn", pattern: srnPattern, upper: true} }

// Email returns a local@domain.tld type.
func Email() Type { return &PatternType{name: "email", pattern: emailPattern} }

// Phone returns a type accepting exactly 10 decimal digits.
func Phone() Type { return &PatternType{name: "phone", pattern: phonePattern} }

// CGPA returns a decimal type in [1, 10].
func CGPA() Type { return &FloatRangeType{name: "cgpa", min: 1, max: 10} }

// Semester returns an integer type in [1, 8].
func Semester() Type { return &IntRangeType{name: "semester", min: 1, max: 8} }

// Age returns a positive integer type.
func Age() Type { return &IntRangeType{name: "age", min: 1} }

// Date returns a YYYY-MM-DD type.
func Date() Type { return &DateType{} }

// Custom creates a custom type with a validation function.
func Custom(name string, fn func(string) error) Type {
	return &CustomType{name: name, fn: fn}
}
