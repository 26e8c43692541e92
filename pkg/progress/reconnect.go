package progress

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes how an observer client should reconnect after losing its
// connection: exponential delays with jitter, capped, with bounded attempts.
type Policy struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	MaxAttempts  uint64
	Jitter       float64
}

// DefaultPolicy matches the behavior expected by the bundled web client
func DefaultPolicy() Policy {
	return Policy{
		InitialDelay: time.Second,
		Multiplier:   2,
		MaxDelay:     30 * time.Second,
		MaxAttempts:  10,
		Jitter:       0.5,
	}
}

// Backoff builds the backoff schedule for one reconnect cycle
func (p Policy) Backoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = p.Multiplier
	b.MaxInterval = p.MaxDelay
	b.RandomizationFactor = p.Jitter
	b.MaxElapsedTime = 0
	b.Reset()

	var bo backoff.BackOff = b
	if p.MaxAttempts > 0 {
		bo = backoff.WithMaxRetries(bo, p.MaxAttempts)
	}

	return bo
}

// Retry runs connect until it succeeds, the attempts are exhausted, or the
// context is cancelled
func (p Policy) Retry(ctx context.Context, connect func() error) error {
	return backoff.Retry(connect, backoff.WithContext(p.Backoff(), ctx))
}
