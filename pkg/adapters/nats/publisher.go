// Package nats announces accepted submissions on a NATS subject so other
// Placify services (leaderboard refresh, profile scraping) can react.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nocap-placify/placify/pkg/domain"
)

// DefaultSubjectPrefix is followed by the wizard ID.
const DefaultSubjectPrefix = "placify.submissions"

// DefaultFlushTimeout bounds the flush when the caller's context has no deadline.
const DefaultFlushTimeout = 2 * time.Second

// EventAccepted is the type of every published message.
const EventAccepted = "submission.accepted"

// Message is the JSON payload published per submission.
type Message struct {
	Type         string    `json:"type"`
	SessionID    string    `json:"session_id"`
	WizardID     string    `json:"wizard_id"`
	Target       string    `json:"target"`
	Confirmation string    `json:"confirmation"`
	DurationMS   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher implements ports.Publisher.
type Publisher struct {
	conn         *nats.Conn
	prefix       string
	flushTimeout time.Duration
	owned        bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithSubjectPrefix overrides DefaultSubjectPrefix.
func WithSubjectPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithFlushTimeout overrides DefaultFlushTimeout.
func WithFlushTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.flushTimeout = d
	}
}

// Connect dials url and owns the connection.
func Connect(url string, opts ...Option) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("placify"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	p := New(conn, opts...)
	p.owned = true
	return p, nil
}

// New wraps an existing connection; Close leaves it open.
func New(conn *nats.Conn, opts ...Option) *Publisher {
	p := &Publisher{conn: conn, prefix: DefaultSubjectPrefix, flushTimeout: DefaultFlushTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subject returns the subject used for a wizard.
func (p *Publisher) Subject(wizardID string) string {
	return p.prefix + "." + wizardID
}

// Publish sends one message and flushes it. NATS Publish does not take a
// context, so ctx is checked before sending and bounds the flush. FlushWithContext
// rejects contexts without a deadline, so one is added from the flush timeout.
func (p *Publisher) Publish(ctx context.Context, ev *domain.SubmitEvent) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	data, err := json.Marshal(Message{
		Type:         EventAccepted,
		SessionID:    ev.SessionID,
		WizardID:     ev.WizardID,
		Target:       ev.Target,
		Confirmation: ev.Confirmation,
		DurationMS:   ev.Duration.Milliseconds(),
		Timestamp:    ev.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal submission event: %w", err)
	}
	if err := p.conn.Publish(p.Subject(ev.WizardID), data); err != nil {
		return fmt.Errorf("publish submission event: %w", err)
	}
	if _, ok := ctx.Deadline(); !ok && p.flushTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush submission event: %w", err)
	}
	return nil
}

// Ping reports whether the connection is up.
func (p *Publisher) Ping(context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats: %s", p.conn.Status())
	}
	return nil
}

// Close drains an owned connection.
func (p *Publisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.conn.Drain()
}
