package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nocap-placify/placify/internal/runtime"
	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
	"github.com/nocap-placify/placify/pkg/session"
)

// StatusFor maps engine errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrWizardNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStepInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrFieldNotOnStep),
		errors.Is(err, schema.ErrInputTooLarge),
		errors.Is(err, schema.ErrInvalidUTF8):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLastStep),
		errors.Is(err, domain.ErrNotLastStep),
		errors.Is(err, domain.ErrAlreadySubmitted),
		errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrNotInteractive),
		errors.Is(err, session.ErrSessionExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func invalidFields(err error) *[]string {
	var stepErr *runtime.StepError
	if errors.As(err, &stepErr) && len(stepErr.Fields) > 0 {
		return &stepErr.Fields
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Warn("request refused", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, s.logger, status, Error{Error: err.Error(), Invalid: invalidFields(err)})
}
