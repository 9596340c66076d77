// Package apperr defines the sentinel error kinds shared across hpfold.
//
// Errors:
//
//	ErrInvalidArgument      - bad CLI/config input (non-positive iterations, bad temperature, ...).
//	ErrIOFailure            - FASTA read or results-directory write failed.
//	ErrInitializationFailed - random self-avoiding walk exhausted its retry budget.
//	ErrIllegalMove          - a move library delta violated self-avoidance when applied; bug-class.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap with fmt.Errorf("...: %w", ErrX) to attach context;
// callers identify the kind with errors.Is, never by string comparison.
var (
	// ErrInvalidArgument indicates a bad CLI or config input.
	ErrInvalidArgument = errors.New("hpfold: invalid argument")

	// ErrIOFailure indicates a FASTA read or results write failed.
	ErrIOFailure = errors.New("hpfold: io failure")

	// ErrInitializationFailed indicates random initialization exhausted its retry budget.
	ErrInitializationFailed = errors.New("hpfold: initialization failed")

	// ErrIllegalMove indicates an internal invariant violation in the move library.
	ErrIllegalMove = errors.New("hpfold: illegal move")
)

// IllegalMove builds a diagnostic ErrIllegalMove wrapping the residue index,
// move kind, and a human-readable chain snapshot, per the fatal diagnostic
// the Monte Carlo driver must surface when a non-admissible delta slips
// through the move library.
func IllegalMove(residueIndex int, kind string, snapshot string) error {
	return fmt.Errorf("%w: residue %d, move %q, chain %s", ErrIllegalMove, residueIndex, kind, snapshot)
}

// Invalid wraps ErrInvalidArgument with a message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// IO wraps ErrIOFailure with context about the failing operation.
func IO(context string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrIOFailure, context, err)
}

// InitFailed wraps ErrInitializationFailed with a suggestion to use linear mode.
func InitFailed(attempts int) error {
	return fmt.Errorf("%w: exhausted %d restart attempts; try init_method=linear", ErrInitializationFailed, attempts)
}

// ExitCode maps an error kind to the process exit code cmd/hpfold should use.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidArgument):
		return 2
	case errors.Is(err, ErrIOFailure):
		return 3
	case errors.Is(err, ErrInitializationFailed):
		return 4
	case errors.Is(err, ErrIllegalMove):
		return 5
	default:
		return 1
	}
}
