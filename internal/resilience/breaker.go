// Package resilience guards calls to optional external dependencies such as
// the event bus.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Breaker trips after a run of consecutive failures and rejects calls until
// the cool-down elapses. After that a single probe is let through; its
// outcome closes or re-opens the circuit.
type Breaker struct {
	name        string
	maxFailures int
	timeout     time.Duration
	onChange    func(name string, from, to State)
	now         func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithStateChange registers a callback invoked on every transition. It runs
// outside the breaker lock.
func WithStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

// NewBreaker creates a breaker named name that opens after maxFailures
// consecutive failures and stays open for timeout.
func NewBreaker(name string, maxFailures int, timeout time.Duration, opts ...Option) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	b := &Breaker{
		name:        name,
		maxFailures: maxFailures,
		timeout:     timeout,
		now:         time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Name returns the label given at construction.
func (b *Breaker) Name() string { return b.name }

// State returns the current position, promoting open to half-open once the
// cool-down has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.timeout {
		return StateHalfOpen
	}
	return b.state
}

// Execute runs fn unless the circuit is open. A cancelled ctx is not counted
// as a failure of the dependency.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from, ok := b.acquire()
	if !ok {
		return ErrCircuitOpen
	}

	err := fn(ctx)

	b.mu.Lock()
	b.probing = false
	switch {
	case err == nil:
		b.failures = 0
		b.state = StateClosed
	case errors.Is(err, context.Canceled):
		// caller went away; leave the counters alone
	default:
		b.failures++
		if b.state == StateHalfOpen || b.failures >= b.maxFailures {
			b.state = StateOpen
			b.openedAt = b.now()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return err
}

// acquire decides whether a call may proceed and returns the state observed
// before any transition it made.
func (b *Breaker) acquire() (State, bool) {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case StateClosed:
		b.mu.Unlock()
		return from, true
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.timeout {
			b.mu.Unlock()
			return from, false
		}
		b.state = StateHalfOpen
		b.probing = true
		b.mu.Unlock()
		b.notify(from, StateHalfOpen)
		return StateHalfOpen, true
	default:
		if b.probing {
			b.mu.Unlock()
			return from, false
		}
		b.probing = true
		b.mu.Unlock()
		return from, true
	}
}

func (b *Breaker) notify(from, to State) {
	if b.onChange != nil && from != to {
		b.onChange(b.name, from, to)
	}
}
