package infra

import (
	"errors"
	"testing"
	"time"
)

// fakeClock lets tests move past ResetTimeout without sleeping.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time         { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(threshold int, reset time.Duration, halfOpenMax int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(BreakerConfig{
		FailureThreshold: threshold,
		ResetTimeout:     reset,
		HalfOpenMax:      halfOpenMax,
	})
	cb.now = clock.now
	return cb, clock
}

func TestNewCircuitBreaker_Defaults(t *testing.T) {
	cb := NewCircuitBreaker(BreakerConfig{})

	def := DefaultBreakerConfig()
	if cb.cfg != def {
		t.Errorf("cfg = %+v, want %+v", cb.cfg, def)
	}
	if cb.State() != CircuitClosed {
		t.Errorf("expected state=closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Allow_ClosedState(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second, 1)

	for range 100 {
		if err := cb.Allow(); err != nil {
			t.Fatalf("closed circuit should allow requests: %v", err)
		}
	}
}

func TestCircuitBreaker_TransitionToOpen(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	if cb.State() != CircuitClosed {
		t.Error("circuit should still be closed after 2 failures")
	}

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Fatalf("circuit should be open after 3 failures, got %v", cb.State())
	}

	err := cb.Allow()
	var openErr *ErrCircuitOpen
	if !errors.As(err, &openErr) {
		t.Fatalf("expected *ErrCircuitOpen, got %v", err)
	}
	if openErr.Failures != 3 {
		t.Errorf("Failures = %d, want 3", openErr.Failures)
	}
}

func TestCircuitBreaker_HalfOpenToClosed(t *testing.T) {
	cb, clock := newTestBreaker(2, time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	clock.advance(2 * time.Second)

	if err := cb.Allow(); err != nil {
		t.Fatalf("circuit should allow a probe after reset timeout: %v", err)
	}
	if cb.State() != CircuitHalfOpen {
		t.Fatalf("circuit should be half-open, got %v", cb.State())
	}

	cb.RecordSuccess()
	if cb.State() != CircuitClosed {
		t.Errorf("circuit should close after a successful probe, got %v", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb, clock := newTestBreaker(2, time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	clock.advance(2 * time.Second)
	_ = cb.Allow()

	cb.RecordFailure()
	if cb.State() != CircuitOpen {
		t.Errorf("circuit should re-open after a failed probe, got %v", cb.State())
	}
	if err := cb.Allow(); err == nil {
		t.Error("re-opened circuit should reject until the reset timeout passes again")
	}
}

func TestCircuitBreaker_HalfOpenMaxProbes(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Second, 2)

	cb.RecordFailure()
	clock.advance(2 * time.Second)

	if err := cb.Allow(); err != nil {
		t.Fatalf("first probe should be allowed: %v", err)
	}
	if err := cb.Allow(); err != nil {
		t.Fatalf("second probe should be allowed: %v", err)
	}
	if err := cb.Allow(); err == nil {
		t.Error("third probe should be rejected with HalfOpenMax=2")
	}
}

func TestCircuitBreaker_RecordAbort(t *testing.T) {
	t.Run("closed circuit ignores aborts", func(t *testing.T) {
		cb, _ := newTestBreaker(2, time.Second, 1)

		for range 5 {
			if err := cb.Allow(); err != nil {
				t.Fatalf("Allow failed: %v", err)
			}
			cb.RecordAbort()
		}
		if cb.State() != CircuitClosed {
			t.Errorf("state = %v, want closed", cb.State())
		}
		if got := cb.Stats().ConsecutiveFails; got != 0 {
			t.Errorf("consecutive fails = %d, want 0", got)
		}
	})

	t.Run("aborted probe frees its slot", func(t *testing.T) {
		cb, clock := newTestBreaker(1, time.Second, 1)
		cb.RecordFailure()
		clock.advance(2 * time.Second)

		if err := cb.Allow(); err != nil {
			t.Fatalf("probe should be allowed: %v", err)
		}
		cb.RecordAbort()

		if cb.State() != CircuitHalfOpen {
			t.Fatalf("state = %v, want half-open", cb.State())
		}
		if err := cb.Allow(); err != nil {
			t.Errorf("next probe should be allowed after an abort: %v", err)
		}
	})
}

func TestCircuitBreaker_RecordSuccessResetsFails(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Second, 1)

	cb.RecordFailure()
	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	cb.RecordFailure()

	if cb.State() != CircuitClosed {
		t.Error("success should reset the consecutive failure count")
	}
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	cb, clock := newTestBreaker(1, time.Second, 1)

	var transitions []string
	cb.OnStateChange(func(from, to CircuitState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	cb.RecordFailure()
	clock.advance(2 * time.Second)
	_ = cb.Allow()
	cb.RecordSuccess()

	want := []string{"closed->open", "open->half-open", "half-open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition[%d] = %q, want %q", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb, clock := newTestBreaker(2, time.Second, 1)

	stats := cb.Stats()
	if stats.State != "closed" || stats.ConsecutiveFails != 0 {
		t.Errorf("unexpected initial stats: %+v", stats)
	}

	cb.RecordFailure()
	cb.RecordFailure()

	stats = cb.Stats()
	if stats.State != "open" {
		t.Errorf("State = %q, want open", stats.State)
	}
	if stats.ConsecutiveFails != 2 {
		t.Errorf("ConsecutiveFails = %d, want 2", stats.ConsecutiveFails)
	}
	if !stats.OpenedAt.Equal(clock.t) {
		t.Errorf("OpenedAt = %v, want %v", stats.OpenedAt, clock.t)
	}
}

func TestCircuitState_String(t *testing.T) {
	tests := []struct {
		state CircuitState
		want  string
	}{
		{CircuitClosed, "closed"},
		{CircuitOpen, "open"},
		{CircuitHalfOpen, "half-open"},
		{CircuitState(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("CircuitState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
