package explain

import (
	"context"
	"time"
)

// State is the per-request state of the retry machine.
type State int

// Machine states. Success and PermanentFailure are terminal.
const (
	// StatePending means no call has been made yet.
	StatePending State = iota

	// StateCalling means a call is in flight.
	StateCalling

	// StateRetrying means the last call failed transiently and another
	// attempt is allowed after backoff.
	StateRetrying

	// StateSuccess is the terminal success state.
	StateSuccess

	// StatePermanentFailure is the terminal failure state: either a
	// non-retryable error occurred or the attempt ceiling was reached.
	StatePermanentFailure
)

// String returns a human-readable state name for logging.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCalling:
		return "calling"
	case StateRetrying:
		return "retrying"
	case StateSuccess:
		return "success"
	case StatePermanentFailure:
		return "permanent_failure"
	default:
		return "unknown"
	}
}

// Machine is the bounded retry state machine for one explanation request.
// The attempt count is owned state here, not a loop variable buried in the
// client, which makes the retry ceiling a directly testable contract.
//
// Design decision: The machine knows nothing about HTTP. The client makes
// the call, classifies the outcome, and reports it via RecordSuccess or
// RecordFailure; the machine only decides whether another attempt happens
// and how long to wait first. This keeps the transition rules testable
// without a network.
type Machine struct {
	// maxAttempts is the attempt ceiling, including the first call.
	maxAttempts int

	// initialBackoff is the delay before the first retry; each further
	// retry doubles it.
	initialBackoff time.Duration

	// state is the current machine state.
	state State

	// attempts counts calls started so far.
	attempts int

	// lastErr is the error from the most recent failed call.
	lastErr error
}

// NewMachine creates a Machine with the given attempt ceiling and initial
// backoff. Non-positive arguments fall back to one attempt and no backoff.
func NewMachine(maxAttempts int, initialBackoff time.Duration) *Machine {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if initialBackoff < 0 {
		initialBackoff = 0
	}
	return &Machine{
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		state:          StatePending,
	}
}

// Next reports whether another call should be made, transitioning the
// machine into StateCalling when it returns true. Before a retry it sleeps
// the exponential backoff; if the context is cancelled during the wait the
// machine moves to StatePermanentFailure and Next returns false.
func (m *Machine) Next(ctx context.Context) bool {
	switch m.state {
	case StatePending:
		m.attempts++
		m.state = StateCalling
		return true

	case StateRetrying:
		if !m.wait(ctx) {
			m.lastErr = ctx.Err()
			m.state = StatePermanentFailure
			return false
		}
		m.attempts++
		m.state = StateCalling
		return true

	default:
		// Terminal, or Next called while a call is in flight.
		return false
	}
}

// wait sleeps the backoff for the upcoming retry, doubling per retry.
// Returns false if the context was cancelled first.
func (m *Machine) wait(ctx context.Context) bool {
	backoff := m.initialBackoff << (m.attempts - 1)
	if backoff <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// RecordSuccess moves the machine to its terminal success state.
func (m *Machine) RecordSuccess() {
	m.state = StateSuccess
}

// RecordFailure records a failed call. Transient failures below the
// attempt ceiling move to StateRetrying; everything else is terminal.
func (m *Machine) RecordFailure(err error, transient bool) {
	m.lastErr = err
	if transient && m.attempts < m.maxAttempts {
		m.state = StateRetrying
		return
	}
	m.state = StatePermanentFailure
}

// State returns the current machine state.
func (m *Machine) State() State {
	return m.state
}

// Attempts returns the number of calls started so far.
func (m *Machine) Attempts() int {
	return m.attempts
}

// Err returns the error from the most recent failed call, if any.
func (m *Machine) Err() error {
	return m.lastErr
}
