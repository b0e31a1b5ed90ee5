package reagent

import (
	"time"
)

// TimeProvider supplies the current time for traces and durations.
// Inject a fixed or stepping provider in tests to get deterministic traces.
type TimeProvider interface {
	// Now returns the current time.
	Now() time.Time
}

// DefaultTimeProvider is the standard TimeProvider using the system clock.
type DefaultTimeProvider struct{}

// NewDefaultTimeProvider creates a new DefaultTimeProvider.
func NewDefaultTimeProvider() *DefaultTimeProvider {
	return &DefaultTimeProvider{}
}

// Now returns the current system time.
func (p *DefaultTimeProvider) Now() time.Time {
	return time.Now()
}

// Compile-time check that DefaultTimeProvider implements TimeProvider.
var _ TimeProvider = (*DefaultTimeProvider)(nil)
