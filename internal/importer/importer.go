// Package importer registers batches of records from CSV exports by driving
// them through the same wizards the interactive surfaces use, so every row is
// normalized and validated exactly like a hand-filled session.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/jszwec/csvutil"
	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of rows submitted at once.
const DefaultConcurrency = 4

// Filler completes a whole wizard from a value map and discards sessions.
type Filler interface {
	Fill(ctx context.Context, wizardID string, values map[string]string) (*domain.Session, error)
	Abandon(ctx context.Context, sessionID string) error
}

// StudentRow is one line of a student export.
type StudentRow struct {
	SRN      string `csv:"srn"`
	Name     string `csv:"name"`
	Phone    string `csv:"ph_no"`
	Gender   string `csv:"gender"`
	Age      string `csv:"age"`
	Email    string `csv:"email"`
	Semester string `csv:"sem"`
	CGPA     string `csv:"cgpa"`
	Degree   string `csv:"degree"`
	Stream   string `csv:"stream"`
	Mentor   string `csv:"mentor_name"`
	GitHub   string `csv:"github_profile"`
	LeetCode string `csv:"leetcode_profile"`
	LinkedIn string `csv:"linkedin_link"`
	Resume   string `csv:"resume"`
}

// Values maps the row onto the student registration fields.
func (r StudentRow) Values() map[string]string {
	return map[string]string{
		"name":     r.Name,
		"srn":      r.SRN,
		"age":      r.Age,
		"gender":   r.Gender,
		"phone":    r.Phone,
		"email":    r.Email,
		"semester": r.Semester,
		"cgpa":     r.CGPA,
		"degree":   r.Degree,
		"stream":   r.Stream,
		"mentor":   r.Mentor,
		"github":   r.GitHub,
		"leetcode": r.LeetCode,
		"linkedin": r.LinkedIn,
		"resume":   r.Resume,
	}
}

// MentorSessionRow is one line of a mentor session export.
type MentorSessionRow struct {
	Mentor string `csv:"mentor_name"`
	SRN    string `csv:"srn"`
	Date   string `csv:"date"`
	Advice string `csv:"advice"`
}

// Values maps the row onto the mentor session fields.
func (r MentorSessionRow) Values() map[string]string {
	return map[string]string{
		"mentor": r.Mentor,
		"srn":    r.SRN,
		"date":   r.Date,
		"notes":  r.Advice,
	}
}

// Row is the outcome of one imported line. Line counts data rows from 1.
type Row struct {
	Line         int                  `json:"line"`
	SessionID    string               `json:"session_id,omitempty"`
	Confirmation string               `json:"confirmation,omitempty"`
	Invalid      []string             `json:"invalid,omitempty"`
	Reason       domain.FailureReason `json:"reason,omitempty"`
	Error        string               `json:"error,omitempty"`
}

// OK reports whether the row was submitted.
func (r Row) OK() bool {
	return r.Error == ""
}

// Report summarizes a batch.
type Report struct {
	Rows      []Row `json:"rows"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
}

// Importer feeds decoded rows to a Filler.
type Importer struct {
	filler      Filler
	concurrency int
	logger      *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithConcurrency sets how many rows are submitted in parallel.
func WithConcurrency(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// New creates an Importer.
func New(filler Filler, opts ...Option) *Importer {
	i := &Importer{
		filler:      filler,
		concurrency: DefaultConcurrency,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Students imports a student export into the registration wizard.
func (i *Importer) Students(ctx context.Context, r io.Reader) (Report, error) {
	rows, err := decode[StudentRow](r)
	if err != nil {
		return Report{}, err
	}
	return run(ctx, i, domain.WizardStudentRegistration, rows)
}

// MentorSessions imports a mentor session export.
func (i *Importer) MentorSessions(ctx context.Context, r io.Reader) (Report, error) {
	rows, err := decode[MentorSessionRow](r)
	if err != nil {
		return Report{}, err
	}
	return run(ctx, i, domain.WizardMentorSession, rows)
}

// Import dispatches on the wizard ID.
func (i *Importer) Import(ctx context.Context, wizardID string, r io.Reader) (Report, error) {
	switch wizardID {
	case domain.WizardStudentRegistration:
		return i.Students(ctx, r)
	case domain.WizardMentorSession:
		return i.MentorSessions(ctx, r)
	default:
		return Report{}, fmt.Errorf("%w: %s", domain.ErrWizardNotFound, wizardID)
	}
}

type valuer interface {
	Values() map[string]string
}

func decode[T valuer](r io.Reader) ([]T, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows []T
	for {
		var row T
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func run[T valuer](ctx context.Context, i *Importer, wizardID string, rows []T) (Report, error) {
	report := Report{Rows: make([]Row, len(rows))}

	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for n, row := range rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Rows[n] = i.fill(ctx, wizardID, n+1, row.Values())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for _, row := range report.Rows {
		if row.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	i.logger.Info("import finished", "wizard", wizardID, "succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}

func (i *Importer) fill(ctx context.Context, wizardID string, line int, values map[string]string) Row {
	row := Row{Line: line}
	s, err := i.filler.Fill(ctx, wizardID, values)
	if s != nil {
		row.SessionID = s.ID
		// Batch sessions are never revisited.
		defer func() {
			if err := i.filler.Abandon(ctx, s.ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				i.logger.Warn("failed to discard import session", "session_id", s.ID, "err", err)
			}
		}()
	}

	switch {
	case err != nil:
		row.Error = err.Error()
		if errors.Is(err, domain.ErrStepInvalid) && s != nil {
			row.Invalid = invalid(s)
		}
	case s.Failure != nil:
		row.Reason = s.Failure.Reason
		row.Error = s.Failure.Message
	default:
		row.Confirmation = s.Confirmation
	}

	if !row.OK() {
		i.logger.Warn("import row failed", "wizard", wizardID, "line", line, "reason", row.Reason, "err", row.Error)
	}
	return row
}

func invalid(s *domain.Session) []string {
	var names []string
	for name, bad := range s.Errors {
		if bad {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
