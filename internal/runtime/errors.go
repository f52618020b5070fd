package runtime

import (
	"fmt"
	"strings"

	"github.com/nocap-placify/placify/pkg/domain"
)

// StepError reports the fields that blocked an advance.
type StepError struct {
	StepID string
	Fields []string
	Cause  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s has invalid fields: %s", e.StepID, strings.Join(e.Fields, ", "))
}

// Unwrap lets callers match domain.ErrStepInvalid with errors.Is.
func (e *StepError) Unwrap() error {
	return domain.ErrStepInvalid
}
