package middleware

import (
	"context"
	"maps"
	"regexp"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/ports"
)

// Mask replaces masked values at rest.
const Mask = "***"

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of fields whose
// names match any pattern once a session is submitted. Sessions still being
// filled in are stored as is, since their values are needed for submission.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, session *domain.Session) error {
	if session.Status != domain.StatusSubmitted {
		return m.next.Save(ctx, sessionID, session)
	}

	cloned := *session
	cloned.Values = maps.Clone(session.Values)
	for k := range cloned.Values {
		for _, p := range m.patterns {
			if p.MatchString(k) {
				cloned.Values[k] = Mask
				break
			}
		}
	}

	return m.next.Save(ctx, sessionID, &cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
