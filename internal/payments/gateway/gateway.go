package gateway

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DeclineReason is the reason attached to payments the reference gateway
// turns down.
const DeclineReason = "Payment gateway declined the transaction"

// Outcome is a gateway authorization result. A declined authorization is a
// normal outcome, not an error; errors are reserved for the gateway itself
// being unreachable.
type Outcome struct {
	Accepted bool
	Reason   string
}

// Gateway authorizes charges. Implementations must be safe for concurrent
// use.
type Gateway interface {
	Authorize(ctx context.Context, amountCents int64, method string) (Outcome, error)
}

type simulator struct {
	successRate float64
	rng         *rand.Rand
	mu          sync.Mutex
}

// NewSimulator returns the reference gateway: it accepts the given fraction
// of authorizations at random and declines the rest.
func NewSimulator(successRate float64) Gateway {
	return &simulator{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *simulator) Authorize(_ context.Context, _ int64, _ string) (Outcome, error) {
	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll < s.successRate {
		return Outcome{Accepted: true}, nil
	}
	return Outcome{Accepted: false, Reason: DeclineReason}, nil
}

// Stub is a deterministic Gateway for tests.
type Stub struct {
	Outcome Outcome
	Err     error
	Calls   int
}

func (s *Stub) Authorize(_ context.Context, _ int64, _ string) (Outcome, error) {
	s.Calls++
	return s.Outcome, s.Err
}
