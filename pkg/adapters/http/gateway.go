package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nocap-placify/placify/internal/logging"
	"github.com/nocap-placify/placify/pkg/domain"
)

// DefaultPaths maps submission targets to the endpoints of the Placify backend.
// The backend only serves /insertStudent; mentor sessions assume a sibling
// route and can be remapped with WithPath.
var DefaultPaths = map[string]string{
	domain.TargetStudents:       "/insertStudent",
	domain.TargetMentorSessions: "/insertMentorSession",
}

// maxReceiptBytes bounds how much of a response body becomes the confirmation.
const maxReceiptBytes = 512

// Gateway submits completed wizards as a single GET request whose query
// string carries the field values, the way the Placify backend expects them.
type Gateway struct {
	base   *url.URL
	client *http.Client
	paths  map[string]string
	logger *slog.Logger
}

// GatewayOption configures the Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

// WithTimeout bounds each request, including reading the response. Callers
// pass the wizard submit timeout so the client never cuts a call shorter.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			c := *g.client
			c.Timeout = d
			g.client = &c
		}
	}
}

// WithPath maps a submission target to an endpoint path.
func WithPath(target, path string) GatewayOption {
	return func(g *Gateway) {
		g.paths[target] = path
	}
}

// WithGatewayLogger sets the logger.
func WithGatewayLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a gateway for the backend at baseURL.
func NewGateway(baseURL string, opts ...GatewayOption) (*Gateway, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid gateway url %q: scheme must be http or https", baseURL)
	}

	g := &Gateway{
		base:   base,
		client: &http.Client{Timeout: domain.DefaultSubmitTimeout},
		paths:  make(map[string]string, len(DefaultPaths)),
		logger: logging.NewNop(),
	}
	for target, path := range DefaultPaths {
		g.paths[target] = path
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// URL builds the request URL for sub. Parameters are sorted by name.
func (g *Gateway) URL(sub domain.Submission) (string, error) {
	path, ok := g.paths[sub.Target]
	if !ok {
		return "", &domain.SubmissionError{
			Reason: domain.ReasonRejected,
			Err:    fmt.Errorf("no endpoint for target %q", sub.Target),
		}
	}

	keys := make([]string, 0, len(sub.Values))
	for k := range sub.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var q strings.Builder
	for i, k := range keys {
		if i > 0 {
			q.WriteByte('&')
		}
		q.WriteString(url.QueryEscape(k))
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(sub.Values[k]))
	}

	u := *g.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = q.String()
	return u.String(), nil
}

// Submit issues exactly one request. It never retries.
func (g *Gateway) Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error) {
	target, err := g.URL(sub)
	if err != nil {
		return domain.Receipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.Receipt{}, &domain.SubmissionError{Reason: domain.ReasonUnknown, Err: err}
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		reason := transportReason(ctx, err)
		g.logger.Warn("gateway request failed", "session_id", sub.SessionID, "target", sub.Target, "reason", reason, "err", err)
		return domain.Receipt{}, &domain.SubmissionError{Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxReceiptBytes))
	text := strings.TrimSpace(string(body))
	g.logger.Debug("gateway responded", "session_id", sub.SessionID, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if text == "" {
			text = resp.Status
		}
		return domain.Receipt{Confirmation: text}, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return domain.Receipt{}, &domain.SubmissionError{
			Reason:     domain.ReasonRejected,
			StatusCode: resp.StatusCode,
			Err:        statusErr(resp.Status, text),
		}
	default:
		return domain.Receipt{}, &domain.SubmissionError{
			Reason:     domain.ReasonUnknown,
			StatusCode: resp.StatusCode,
			Err:        statusErr(resp.Status, text),
		}
	}
}

func statusErr(status, body string) error {
	if body == "" {
		return errors.New(status)
	}
	return fmt.Errorf("%s: %s", status, body)
}

func transportReason(ctx context.Context, err error) domain.FailureReason {
	if errors.Is(ctx.Err(), context.Canceled) {
		return domain.ReasonCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ReasonTimeout
	}
	return domain.ReasonNetwork
}
