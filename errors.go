// Package procore error taxonomy: plain
// sentinel errors for the common cases, plus a wrapper type that preserves
// a cause chain for [errors.Is]/[errors.As].
package procore

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrOutOfMemory is returned when heap expansion fails (component A,
	// ensure_free). Builtins convert this into the atom out_of_memory
	// placed in x[0] where applicable.
	ErrOutOfMemory = errors.New("procore: out of memory")

	// ErrBadArg is returned for an unrecognized process-info key.
	ErrBadArg = errors.New("procore: badarg")

	// ErrDeadTarget is returned when a signal or monitor target is absent
	// from the registry. Callers generally treat this as benign.
	ErrDeadTarget = errors.New("procore: dead target")

	// ErrProcessTerminated denotes a process that has already run Teardown.
	// No function in this package returns it: a torn-down process makes
	// [GlobalContext.GetProcessLock] report ok=false, and [Monitor] report
	// [ErrDeadTarget].
	ErrProcessTerminated = errors.New("procore: process terminated")
)

// ProcessError wraps one of the sentinel errors above with process/signal
// context, so logs can carry detail without losing errors.Is matching.
type ProcessError struct {
	PID     PID
	Op      string
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("procore: %s (pid=%d): %s: %v", e.Op, e.PID, e.Message, e.Cause)
	}
	return fmt.Sprintf("procore: %s (pid=%d): %v", e.Op, e.PID, e.Cause)
}

// Unwrap returns the underlying sentinel error for use with [errors.Is] and
// [errors.As].
func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// wrapErr attaches process/operation context to one of the sentinel errors.
func wrapErr(pid PID, op string, cause error) error {
	if cause == nil {
		return nil
	}
	return &ProcessError{PID: pid, Op: op, Cause: cause}
}
