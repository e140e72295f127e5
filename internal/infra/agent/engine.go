package agent

import (
	"context"
	"fmt"
	"time"

	domain "github.com/leaselightning/lease-lightning/internal/domain/applicants"
)

// Engine is the mocked decision agent. It simulates the latency of the
// external checks an LLM-backed engine would make, then produces a
// deterministic risk from the applicant id.
type Engine struct {
	delay time.Duration
}

func New(delay time.Duration) *Engine {
	return &Engine{delay: delay}
}

// Evaluate waits the configured delay and returns Decision Ready with
// risk Low for even ids and Medium for odd ids.
func (e *Engine) Evaluate(ctx context.Context, a *domain.Applicant) (domain.Decision, error) {
	timer := time.NewTimer(e.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return domain.Decision{}, ctx.Err()
	case <-timer.C:
	}

	risk := domain.RiskMedium
	if a.ID%2 == 0 {
		risk = domain.RiskLow
	}

	return domain.Decision{
		Status: domain.StatusDecisionReady,
		Risk:   risk,
		Note:   fmt.Sprintf("processed at %s", time.Now().UTC().Format(time.RFC3339)),
	}, nil
}
