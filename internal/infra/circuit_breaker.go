package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the current position of a CircuitBreaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // calls flow through
	BreakerOpen                         // calls fail fast
	BreakerHalfOpen                     // limited probes allowed
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrBreakerOpen is returned by Execute while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker open")

// BreakerConfig tunes a CircuitBreaker. Zero values fall back to the
// defaults used for the SMTP relay.
type BreakerConfig struct {
	TripAfter   int           // consecutive failures before opening
	RecoverWith int           // consecutive probe successes before closing
	Cooldown    time.Duration // open duration before half-open probing
}

// SMTPBreakerConfig is suitable for guarding an outbound mail relay:
// trip quickly, probe after a minute.
func SMTPBreakerConfig() BreakerConfig {
	return BreakerConfig{TripAfter: 5, RecoverWith: 2, Cooldown: time.Minute}
}

// CircuitBreaker stops a flaky downstream from being hammered. After
// TripAfter consecutive failures calls fail fast with ErrBreakerOpen;
// after Cooldown a probe call is let through, and RecoverWith probe
// successes close the breaker again.
type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      BreakerConfig
	state    BreakerState
	fails    int
	probes   int
	openedAt time.Time
}

func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := SMTPBreakerConfig()
	if cfg.TripAfter <= 0 {
		cfg.TripAfter = def.TripAfter
	}
	if cfg.RecoverWith <= 0 {
		cfg.RecoverWith = def.RecoverWith
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &CircuitBreaker{cfg: cfg, state: BreakerClosed}
}

// State reports the breaker position, moving open breakers to half-open
// once the cooldown has elapsed.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// Execute runs fn unless the breaker is open, and feeds the outcome back
// into the state machine.
func (b *CircuitBreaker) Execute(fn func() error) error {
	b.mu.Lock()
	if b.currentState() == BreakerOpen {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

// currentState must be called under mu.
func (b *CircuitBreaker) currentState() BreakerState {
	if b.state == BreakerOpen && time.Since(b.openedAt) >= b.cfg.Cooldown {
		b.state = BreakerHalfOpen
		b.probes = 0
	}
	return b.state
}

func (b *CircuitBreaker) recordFailure() {
	switch b.state {
	case BreakerClosed:
		b.fails++
		if b.fails >= b.cfg.TripAfter {
			b.trip()
		}
	case BreakerHalfOpen:
		b.trip()
	}
}

func (b *CircuitBreaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.fails = 0
	case BreakerHalfOpen:
		b.probes++
		if b.probes >= b.cfg.RecoverWith {
			b.state = BreakerClosed
			b.fails = 0
			b.probes = 0
		}
	}
}

func (b *CircuitBreaker) trip() {
	b.state = BreakerOpen
	b.openedAt = time.Now()
	b.fails = 0
	b.probes = 0
}
