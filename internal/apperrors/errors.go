package apperrors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Kind classifies a failure so the HTTP boundary can map it to a status code.
type Kind int

const (
	Validation Kind = iota + 1 // client sent missing or malformed input
	NotFound                   // requested record does not exist
	Conflict                   // storage key already occupied
	Storage                    // blob backend fault
	Store                      // metadata backend fault
	Upstream                   // third-party AI service fault
)

// Error carries a classification, a user-facing summary and the wrapped cause.
type Error struct {
	Kind    Kind
	Summary string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Summary
	}
	return e.Summary + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with no underlying cause.
func New(kind Kind, summary string) *Error {
	return &Error{Kind: kind, Summary: summary}
}

// Wrap classifies an underlying failure. Returns nil if err is nil.
func Wrap(kind Kind, summary string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Summary: summary, Err: errors.WithStack(err)}
}

// KindOf extracts the classification from an error chain; zero when unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if stderrors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// SummaryOf returns the user-facing summary, or a generic fallback.
func SummaryOf(err error) string {
	var ae *Error
	if stderrors.As(err, &ae) {
		return ae.Summary
	}
	return "erro interno"
}
