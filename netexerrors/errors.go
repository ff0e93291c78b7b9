package netexerrors

import (
	"errors"
	"fmt"
)

// Kind distinguishes the two error variants.
type Kind int

const (
	// KindFatal marks an error the caller cannot recover from by retrying.
	KindFatal Kind = iota
	// KindRetryable marks a transient error.
	KindRetryable
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindRetryable:
		return "retryable"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is().
var (
	// ErrFatal matches every Error of kind KindFatal.
	ErrFatal = errors.New("fatal error")

	// ErrRetryable matches every Error of kind KindRetryable.
	ErrRetryable = errors.New("retryable error")

	// ErrUnknownReport indicates a query against a report id that was never
	// initialized or was already cleaned up.
	ErrUnknownReport = errors.New("unknown report id")

	// ErrConfig indicates missing or invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrInput indicates an unreadable input stream.
	ErrInput = errors.New("input error")
)

// Error is the single error type of the library, tagged with its Kind.
type Error struct {
	// Kind is the error variant
	Kind Kind
	// Op names the operation that failed (e.g. "idregistry.Lookup")
	Op string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's kind sentinel.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFatal:
		return e.Kind == KindFatal
	case ErrRetryable:
		return e.Kind == KindRetryable
	}
	return false
}

// Fatal returns a fatal error for op wrapping cause.
func Fatal(op string, cause error) *Error {
	return &Error{Kind: KindFatal, Op: op, Cause: cause}
}

// Fatalf returns a fatal error for op with a formatted message.
// The cause is typically one of the package sentinels.
func Fatalf(op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindFatal, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Retryable returns a retryable error for op wrapping cause.
func Retryable(op string, cause error) *Error {
	return &Error{Kind: KindRetryable, Op: op, Cause: cause}
}

// Retryablef returns a retryable error for op with a formatted message.
func Retryablef(op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindRetryable, Op: op, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// UnknownReport returns the fatal error raised when reportID has no state.
func UnknownReport(op, reportID string) *Error {
	return Fatalf(op, ErrUnknownReport, "report id %q was never initialized or was already cleaned up", reportID)
}

// IsFatal reports whether err is, or wraps, a fatal Error.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// IsRetryable reports whether err is, or wraps, a retryable Error.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRetryable)
}
