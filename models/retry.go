package models

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rickchristie/reagent"
)

// RetryConfig controls exponential backoff retry for failed completions.
type RetryConfig struct {
	MaxRetries int           // max retry attempts after the first call (0 = no retry)
	BaseDelay  time.Duration // initial backoff delay
	MaxDelay   time.Duration // maximum backoff delay
}

// DefaultRetryConfig returns the retry policy used by the CLI.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

// Retrying wraps a reagent.Model and retries completion errors with exponential backoff and
// jitter. Errors that are not a *reagent.CompletionError are returned immediately, and nothing
// is retried once ctx is done.
type Retrying struct {
	next reagent.Model
	cfg  RetryConfig
}

// NewRetrying wraps next with cfg.
func NewRetrying(next reagent.Model, cfg RetryConfig) *Retrying {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Retrying{next: next, cfg: cfg}
}

// Complete implements reagent.Model.
func (r *Retrying) Complete(ctx context.Context, prompt string) (string, error) {
	var err error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		var response string
		response, err = r.next.Complete(ctx, prompt)
		if err == nil {
			return response, nil
		}
		if attempt == r.cfg.MaxRetries || !shouldRetry(ctx, err) {
			break
		}

		timer := time.NewTimer(backoffWithJitter(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return "", err
		}
	}
	return "", err
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, reagent.ErrCompletion)
}

// backoffWithJitter computes delay = min(base * 2^attempt, max) + jitter(±25%).
func backoffWithJitter(base, max time.Duration, attempt int) time.Duration {
	delay := base << uint(attempt)
	if max > 0 && (delay > max || delay <= 0) {
		delay = max
	}

	quarter := delay / 4
	if quarter > 0 {
		jitter := time.Duration(rand.Int64N(int64(quarter*2))) - quarter
		delay += jitter
	}
	return delay
}

// Compile-time check that Retrying implements reagent.Model.
var _ reagent.Model = (*Retrying)(nil)
