package analysis

import "errors"

// ErrorKind classifies analysis errors so callers can distinguish
// bad input from thin data from a failed fetch.
type ErrorKind string

const (
	// ErrInvalidParameter marks a request that fails validation before
	// any series is fetched. Always fatal to the call.
	ErrInvalidParameter ErrorKind = "invalid_parameter"

	// ErrInsufficientData marks a series too thin to analyze (empty
	// baseline or analysis window, fewer than 2 points for a rate).
	// Non-fatal: callers return an empty result plus a diagnostic.
	ErrInsufficientData ErrorKind = "insufficient_data"

	// ErrSourceUnavailable marks a failed fetch from the series source.
	// Propagated to the caller as fatal; the core never retries.
	ErrSourceUnavailable ErrorKind = "source_unavailable"
)

// Error is the typed error returned by all analysis operations
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidParameter creates an InvalidParameter error
func NewInvalidParameter(message string) *Error {
	return &Error{Kind: ErrInvalidParameter, Message: message}
}

// NewInsufficientData creates an InsufficientData error
func NewInsufficientData(message string) *Error {
	return &Error{Kind: ErrInsufficientData, Message: message}
}

// NewSourceUnavailable creates a SourceUnavailable error wrapping the
// underlying fetch failure
func NewSourceUnavailable(message string, cause error) *Error {
	return &Error{Kind: ErrSourceUnavailable, Message: message, Cause: cause}
}

// KindOf returns the ErrorKind of err, or "" when err is not an
// analysis error
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsInsufficientData reports whether err is an InsufficientData error
func IsInsufficientData(err error) bool {
	return KindOf(err) == ErrInsufficientData
}

// IsInvalidParameter reports whether err is an InvalidParameter error
func IsInvalidParameter(err error) bool {
	return KindOf(err) == ErrInvalidParameter
}
