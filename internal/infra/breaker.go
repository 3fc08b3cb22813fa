// Package infra provides resilience primitives for the Feedly client.
package infra

import (
	"fmt"
	"sync"
	"time"
)

// CircuitState represents the current state of the circuit breaker
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Normal operation
	CircuitOpen                         // Failing fast, rejecting requests
	CircuitHalfOpen                     // Probing whether Feedly recovered
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig tunes a CircuitBreaker.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit.
	FailureThreshold int
	// ResetTimeout is how long the circuit stays open before probing.
	ResetTimeout time.Duration
	// HalfOpenMax caps concurrent probe requests while half-open.
	HalfOpenMax int
}

// DefaultBreakerConfig returns the thresholds used when none are given.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMax:      1,
	}
}

// CircuitBreaker fails fast once Feedly has failed FailureThreshold times in a row.
// Only transport errors and 5xx responses count as failures.
type CircuitBreaker struct {
	mu sync.Mutex

	cfg      BreakerConfig
	onChange func(from, to CircuitState)
	now      func() time.Time

	state            CircuitState
	consecutiveFails int
	openedAt         time.Time
	probes           int
}

// NewCircuitBreaker creates a breaker; zero fields in cfg take their defaults.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = def.ResetTimeout
	}
	if cfg.HalfOpenMax <= 0 {
		cfg.HalfOpenMax = def.HalfOpenMax
	}
	return &CircuitBreaker{
		cfg:   cfg,
		now:   time.Now,
		state: CircuitClosed,
	}
}

// OnStateChange registers fn to be called on every state transition.
// fn runs with the breaker lock held and must not call back into the breaker.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onChange = fn
}

// Allow returns nil if a request may proceed, or *ErrCircuitOpen otherwise.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return nil
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) < cb.cfg.ResetTimeout {
			return cb.openErr()
		}
		cb.transition(CircuitHalfOpen)
		cb.probes = 1
		return nil
	case CircuitHalfOpen:
		if cb.probes < cb.cfg.HalfOpenMax {
			cb.probes++
			return nil
		}
		return cb.openErr()
	default:
		return cb.openErr()
	}
}

// RecordSuccess resets the failure count and closes a half-open circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == CircuitHalfOpen {
		cb.probes = 0
		cb.transition(CircuitClosed)
	}
}

// RecordFailure counts a failure and opens the circuit once the threshold is hit.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++

	switch cb.state {
	case CircuitClosed:
		if cb.consecutiveFails >= cb.cfg.FailureThreshold {
			cb.open()
		}
	case CircuitHalfOpen:
		cb.open()
	}
}

// RecordAbort releases a request that ended without an answer from Feedly,
// e.g. one canceled by its caller. It neither counts as a failure nor closes the circuit.
func (cb *CircuitBreaker) RecordAbort() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitHalfOpen && cb.probes > 0 {
		cb.probes--
	}
}

// State returns the current circuit state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() CircuitBreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return CircuitBreakerStats{
		State:            cb.state.String(),
		ConsecutiveFails: cb.consecutiveFails,
		OpenedAt:         cb.openedAt,
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.now()
	cb.probes = 0
	cb.transition(CircuitOpen)
}

func (cb *CircuitBreaker) transition(to CircuitState) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	if cb.onChange != nil {
		cb.onChange(from, to)
	}
}

func (cb *CircuitBreaker) openErr() *ErrCircuitOpen {
	return &ErrCircuitOpen{
		State:    cb.state.String(),
		RetryAt:  cb.openedAt.Add(cb.cfg.ResetTimeout),
		Failures: cb.consecutiveFails,
	}
}

// CircuitBreakerStats contains circuit breaker statistics
type CircuitBreakerStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	OpenedAt         time.Time `json:"opened_at,omitempty"`
}

// ErrCircuitOpen is returned while the circuit breaker rejects requests.
type ErrCircuitOpen struct {
	State    string
	RetryAt  time.Time
	Failures int
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker is %s after %d failures: Feedly API unavailable, retry after %s",
		e.State, e.Failures, e.RetryAt.Format(time.RFC3339))
}
