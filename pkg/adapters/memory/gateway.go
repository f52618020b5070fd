package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Gateway implements ports.Gateway by recording submissions in memory.
// It is the gateway used by tests and by dry runs of the CLI.
type Gateway struct {
	mu          sync.Mutex
	submissions []domain.Submission
	fail        error
}

// NewGateway creates a recording gateway that acknowledges every submission.
func NewGateway() *Gateway {
	return &Gateway{}
}

// FailWith makes subsequent submissions return err. A nil err restores success.
func (g *Gateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = err
}

// Submit records a copy of sub.
func (g *Gateway) Submit(ctx context.Context, sub domain.Submission) (domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return domain.Receipt{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail != nil {
		return domain.Receipt{}, g.fail
	}

	sub.Values = maps.Clone(sub.Values)
	g.submissions = append(g.submissions, sub)
	return domain.Receipt{
		Confirmation: fmt.Sprintf("%s #%d recorded", sub.Target, len(g.submissions)),
	}, nil
}

// Submissions returns everything recorded so far.
func (g *Gateway) Submissions() []domain.Submission {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]domain.Submission, len(g.submissions))
	copy(out, g.submissions)
	return out
}
