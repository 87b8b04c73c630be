// Package errors provides the typed error kinds of the pricing engine.
// Errors are values returned to the caller; the engine never aborts the
// process.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies the category of error.
type Kind string

const (
	// KindInvalidInput indicates a malformed CDR or tariff: out-of-order
	// periods, negative volumes, missing currency.
	KindInvalidInput Kind = "INVALID_INPUT"

	// KindUnknownZone indicates an unresolvable IANA zone identifier.
	KindUnknownZone Kind = "UNKNOWN_ZONE"

	// KindOverflow indicates decimal arithmetic saturated on a
	// non-dividing operation.
	KindOverflow Kind = "OVERFLOW"

	// KindNoMatchingTariff indicates no tariff applies to the session.
	KindNoMatchingTariff Kind = "NO_MATCHING_TARIFF"

	// KindInternalInconsistency indicates a ledger invariant was violated;
	// this is a bug, not an input problem.
	KindInternalInconsistency Kind = "INTERNAL_INCONSISTENCY"

	// KindParsing indicates a document failed to decode.
	KindParsing Kind = "PARSING_ERROR"

	// KindConfig indicates a configuration problem.
	KindConfig Kind = "CONFIG_ERROR"
)

// Error is a domain error with a kind and an optional cause.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a formatted error of the given kind.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new error of the given kind.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsKind reports whether err (or anything it wraps) is of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// InvalidInput creates an INVALID_INPUT error.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// UnknownZone creates an UNKNOWN_ZONE error.
func UnknownZone(zone string, cause error) *Error {
	return Wrap(KindUnknownZone, fmt.Sprintf("unresolvable time zone %q", zone), cause)
}

// Overflow creates an OVERFLOW error.
func Overflow(context string) *Error {
	return Newf(KindOverflow, "decimal arithmetic saturated while computing %s", context)
}

// NoMatchingTariff creates a NO_MATCHING_TARIFF error.
func NoMatchingTariff() *Error {
	return New(KindNoMatchingTariff, "no tariff is active at the start of the session")
}

// Inconsistency creates an INTERNAL_INCONSISTENCY error.
func Inconsistency(message string) *Error {
	return New(KindInternalInconsistency, message)
}
