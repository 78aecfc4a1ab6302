package resilience

import (
	"sync"
	"time"
)

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// TripThreshold is the number of recorded failures that arms the
	// cool-down gate.
	// Default: 3
	TripThreshold int

	// CoolDown is how long the breaker reports unavailable after tripping.
	// Default: 5 minutes
	CoolDown time.Duration

	// Availability reports whether the guarded service is currently
	// reachable. The breaker defers to it whenever no cool-down is in
	// effect; it does not declare availability on its own.
	// Default: always true
	Availability func() bool

	// OnFailure is called after every recorded failure with the running
	// failure count.
	OnFailure func(kind FailureKind, operation string, failures int)

	// OnTrip is called when a failure arms the cool-down gate.
	OnTrip func(until time.Time)
}

// Breaker gates calls to a failing service behind a failure counter and a
// time-bounded cool-down. Unlike a full closed/open/half-open breaker it
// never probes: once the cool-down elapses it defers entirely to the
// externally observed Availability callback.
type Breaker struct {
	config BreakerConfig

	mu            sync.Mutex
	failures      int
	disabledUntil time.Time
}

// NewBreaker creates a new breaker.
func NewBreaker(config BreakerConfig) *Breaker {
	// Apply defaults
	if config.TripThreshold <= 0 {
		config.TripThreshold = 3
	}
	if config.CoolDown <= 0 {
		config.CoolDown = 5 * time.Minute
	}
	if config.Availability == nil {
		config.Availability = func() bool { return true }
	}

	return &Breaker{config: config}
}

// RecordFailure counts one failure against the breaker. The count is never
// capped; every failure at or past the trip threshold re-arms the
// cool-down gate. Never panics and never returns an error.
func (b *Breaker) RecordFailure(kind FailureKind, operation string) {
	b.mu.Lock()
	b.failures++
	failures := b.failures

	tripped := false
	// >= rather than ==: only RecordSuccess resets the count, so a failure
	// past the threshold (a straggling in-flight timeout, say) re-arms the
	// gate. An exact match would let an elevated count outlive an expired
	// cool-down without re-tripping.
	if b.failures >= b.config.TripThreshold {
		b.disabledUntil = time.Now().Add(b.config.CoolDown)
		tripped = true
	}
	until := b.disabledUntil
	b.mu.Unlock()

	// Callbacks run outside the lock; they may call back into the breaker.
	if b.config.OnFailure != nil {
		b.config.OnFailure(kind, operation, failures)
	}
	if tripped && b.config.OnTrip != nil {
		b.config.OnTrip(until)
	}
}

// RecordSuccess clears the failure count. It does not cancel an in-progress
// cool-down: an unrelated success must not shortcut the recovery window.
// A success with zero recorded failures is a no-op.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	if b.failures > 0 {
		b.failures = 0
	}
	b.mu.Unlock()
}

// Available reports whether calls may be issued. It is false for the
// whole cool-down window regardless of the Availability callback; once
// the window elapses it returns whatever the callback observes.
func (b *Breaker) Available() bool {
	b.mu.Lock()
	disabled := time.Now().Before(b.disabledUntil)
	b.mu.Unlock()

	if disabled {
		return false
	}
	return b.config.Availability()
}

// Reset force-clears both the failure count and any cool-down. Used for
// manual recovery, e.g. a user-triggered retry command.
func (b *Breaker) Reset() {
	b.mu.Lock()
	b.failures = 0
	b.disabledUntil = time.Time{}
	b.mu.Unlock()
}

// Snapshot returns the current breaker state for diagnostics.
func (b *Breaker) Snapshot() BreakerMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BreakerMetrics{
		Failures:      b.failures,
		DisabledUntil: b.disabledUntil,
		Tripped:       time.Now().Before(b.disabledUntil),
	}
}

// BreakerMetrics contains breaker statistics.
type BreakerMetrics struct {
	Failures      int
	DisabledUntil time.Time
	Tripped       bool
}
