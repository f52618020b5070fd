// Package postgres submits completed wizards straight into the Placify
// database with GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gateway implements ports.Gateway on top of a GORM connection.
type Gateway struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// Open connects to dsn and migrates the tables.
func Open(ctx context.Context, dsn string, opts ...Option) (*Gateway, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	g := New(db, opts...)
	if err := g.Migrate(ctx); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

// New wraps an existing connection.
func New(db *gorm.DB, opts ...Option) *Gateway {
	g := &Gateway{db: db, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Migrate creates or updates the tables.
func (g *Gateway) Migrate(ctx context.Context) error {
	if err := g.db.WithContext(ctx).AutoMigrate(&Mentor{}, &Student{}, &MentorSession{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Submit writes one submission in a single transaction.
func (g *Gateway) Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error) {
	var (
		receipt domain.Receipt
		err     error
	)
	switch sub.Target {
	case domain.TargetStudents:
		receipt, err = g.insertStudent(ctx, sub.Values)
	case domain.TargetMentorSessions:
		receipt, err = g.insertMentorSession(ctx, sub.Values)
	default:
		err = rejected(fmt.Errorf("no table for target %q", sub.Target))
	}
	if err != nil {
		err = classify(ctx, err)
		g.logger.Warn("postgres submission failed", "session_id", sub.SessionID, "target", sub.Target, "err", err)
		return domain.Receipt{}, err
	}
	return receipt, nil
}

func (g *Gateway) insertStudent(ctx context.Context, values map[string]string) (domain.Receipt, error) {
	student, err := StudentFrom(values)
	if err != nil {
		return domain.Receipt{}, rejected(err)
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mentor := Mentor{Name: values["men_name"]}
		if err := tx.Where(Mentor{Name: mentor.Name}).FirstOrCreate(&mentor).Error; err != nil {
			return fmt.Errorf("could not resolve mentor: %w", err)
		}
		student.MentorID = mentor.MentorID
		if err := tx.Omit("Mentor").Create(&student).Error; err != nil {
			return fmt.Errorf("could not insert student: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{Confirmation: fmt.Sprintf("student %s registered", student.StudentID)}, nil
}

func (g *Gateway) insertMentorSession(ctx context.Context, values map[string]string) (domain.Receipt, error) {
	session, err := MentorSessionFrom(values)
	if err != nil {
		return domain.Receipt{}, rejected(err)
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mentor Mentor
		if err := tx.Where("mentor_name = ?", values["mentor_name"]).First(&mentor).Error; err != nil {
			return fmt.Errorf("unknown mentor %q: %w", values["mentor_name"], err)
		}
		var student Student
		if err := tx.Select("student_id").Where("student_id = ?", session.StudentID).First(&student).Error; err != nil {
			return fmt.Errorf("unknown student %q: %w", session.StudentID, err)
		}
		session.MentorID = mentor.MentorID
		if err := tx.Omit("Mentor", "Student").Create(&session).Error; err != nil {
			return fmt.Errorf("couldn't insert into mentor_sessions: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	return domain.Receipt{Confirmation: fmt.Sprintf("mentor session #%d recorded", session.ID)}, nil
}

// StudentFrom maps registration wire values onto a Student row.
// MentorID is resolved at insert time.
func StudentFrom(values map[string]string) (Student, error) {
	age, err := strconv.Atoi(values["age"])
	if err != nil {
		return Student{}, fmt.Errorf("age: %w", err)
	}
	sem, err := strconv.Atoi(values["sem"])
	if err != nil {
		return Student{}, fmt.Errorf("sem: %w", err)
	}
	cgpa, err := strconv.ParseFloat(values["cgpa"], 64)
	if err != nil {
		return Student{}, fmt.Errorf("cgpa: %w", err)
	}
	if values["srn"] == "" {
		return Student{}, errors.New("srn is required")
	}
	return Student{
		StudentID:    values["srn"],
		Name:         values["name"],
		PhoneNo:      values["phone_num"],
		Gender:       values["gender"],
		Age:          age,
		Email:        values["email"],
		Sem:          sem,
		CGPA:         cgpa,
		Degree:       values["degree"],
		Stream:       values["stream"],
		GithubLink:   values["git_link"],
		LeetcodeLink: values["leet_link"],
		Linkedin:     values["linkedin_link"],
		Resume:       values["resume"],
	}, nil
}

// MentorSessionFrom maps mentor-session wire values onto a row.
// MentorID is resolved at insert time.
func MentorSessionFrom(values map[string]string) (MentorSession, error) {
	date, err := time.Parse(time.DateOnly, values["date"])
	if err != nil {
		return MentorSession{}, fmt.Errorf("date: %w", err)
	}
	if values["srn"] == "" {
		return MentorSession{}, errors.New("srn is required")
	}
	return MentorSession{
		StudentID: values["srn"],
		Date:      date,
		Advice:    values["advice"],
	}, nil
}

func rejected(err error) error {
	return &domain.SubmissionError{Reason: domain.ReasonRejected, Err: err}
}

func classify(ctx context.Context, err error) error {
	var subErr *domain.SubmissionError
	var netErr net.Error
	switch {
	case errors.As(err, &subErr):
		return err
	case errors.Is(ctx.Err(), context.Canceled):
		return &domain.SubmissionError{Reason: domain.ReasonCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.SubmissionError{Reason: domain.ReasonTimeout, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return rejected(err)
	case errors.As(err, &netErr):
		return &domain.SubmissionError{Reason: domain.ReasonNetwork, Err: err}
	default:
		return &domain.SubmissionError{Reason: domain.ReasonUnknown, Err: err}
	}
}
