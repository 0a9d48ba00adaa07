package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// ErrPrecondition is the root of every input/state violation. Callers fix the
	// input and re-invoke; nothing is retried.
	ErrPrecondition = errors.New("precondition failed")

	// Dataset errors
	ErrNoData        = fmt.Errorf("%w: no data loaded", ErrPrecondition)
	ErrUnknownColumn = fmt.Errorf("%w: unknown column", ErrPrecondition)
	ErrNonNumeric    = fmt.Errorf("%w: non-numeric value", ErrPrecondition)
	ErrGroupCount    = fmt.Errorf("%w: grouping column must have exactly 2 groups", ErrPrecondition)

	// Sample errors
	ErrEmptySample      = fmt.Errorf("%w: empty sample", ErrPrecondition)
	ErrSampleTooSmall   = fmt.Errorf("%w: sample too small", ErrPrecondition)
	ErrDegenerateSample = fmt.Errorf("%w: degenerate sample", ErrPrecondition)

	// Report errors
	ErrUnsupportedResult = fmt.Errorf("%w: unsupported test kind", ErrPrecondition)
	ErrMissingResource   = fmt.Errorf("%w: missing resource", ErrPrecondition)

	// ErrMalformedInput marks source data that cannot be read as a table. It is
	// an I/O failure, not a precondition.
	ErrMalformedInput = errors.New("malformed input")
)

// PreconditionError names the violated check so callers can self-correct.
type PreconditionError struct {
	Kind   error  // one of the sentinels above
	Detail string // what exactly was wrong
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Kind
}

func newPrecondition(kind error, format string, args ...interface{}) error {
	return &PreconditionError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Error constructors with context
func NewNoDataError() error {
	return &PreconditionError{Kind: ErrNoData}
}

func NewUnknownColumnError(column string, available []string) error {
	return newPrecondition(ErrUnknownColumn, "%q (available: %s)", column, strings.Join(available, ", "))
}

func NewNonNumericError(column string, row int, raw string) error {
	return newPrecondition(ErrNonNumeric, "column %q row %d has value %q", column, row, raw)
}

func NewGroupCountError(column string, groups []string) error {
	if len(groups) > 2 {
		return newPrecondition(ErrGroupCount, "too many groups in %q: found %d (%s)", column, len(groups), strings.Join(groups, ", "))
	}
	return newPrecondition(ErrGroupCount, "not enough groups in %q: found %d (%s)", column, len(groups), strings.Join(groups, ", "))
}

func NewNoNumericColumnsError(columns []string) error {
	return newPrecondition(ErrNonNumeric, "no numeric column among %s", strings.Join(columns, ", "))
}

func NewEmptySampleError(sample string) error {
	return newPrecondition(ErrEmptySample, "%s has no observations", sample)
}

func NewSampleTooSmallError(test, column string, n, min int) error {
	return newPrecondition(ErrSampleTooSmall, "%s needs at least %d observations, column %q has %d", test, min, column, n)
}

func NewDegenerateSampleError(test, column, reason string) error {
	return newPrecondition(ErrDegenerateSample, "%s is undefined for column %q: %s", test, column, reason)
}

func NewUnsupportedResultError(testName string) error {
	return newPrecondition(ErrUnsupportedResult, "no report layout for test %q", testName)
}

func NewMissingResourceError(resource, path string, cause error) error {
	if cause != nil {
		return newPrecondition(ErrMissingResource, "%s %s: %v", resource, path, cause)
	}
	return newPrecondition(ErrMissingResource, "%s %s", resource, path)
}

func NewUnknownTokenError(token string) error {
	return newPrecondition(ErrMissingResource, "template token %s has no value", token)
}

// Error checking helpers
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
