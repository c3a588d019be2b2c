package errors

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the payment core can produce. Handlers map
// kinds to transport status codes; the core never does.
type Kind string

const (
	KindInvalidInput Kind = "INVALID_INPUT"
	KindNotFound     Kind = "NOT_FOUND"
	KindNoAccount    Kind = "NO_ACCOUNT"
	KindConflict     Kind = "CONFLICT"
	KindPrecondition Kind = "PRECONDITION_FAILED"
	KindUpstream     Kind = "UPSTREAM_ERROR"
)

// Error carries the kind, a human-readable message and the offending
// resource id, plus the underlying cause when one exists.
type Error struct {
	Kind     Kind
	Message  string
	Resource string
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Resource != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Message, e.Resource, e.Cause)
	case e.Resource != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Resource)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidInput reports a missing or malformed required field.
func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewNotFound reports an absent profile, account, customer, booking,
// listing or location.
func NewNotFound(message, resource string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Resource: resource}
}

// NewNoAccount reports a user whose profile carries no provider account id.
func NewNoAccount(userID string) *Error {
	return &Error{Kind: KindNoAccount, Message: "user has no payment account", Resource: userID}
}

// NewConflict reports an account that already exists for the user.
func NewConflict(message, resource string) *Error {
	return &Error{Kind: KindConflict, Message: message, Resource: resource}
}

// NewPrecondition reports an operation that requires state which does not
// exist yet, such as a card operation without a customer.
func NewPrecondition(message, resource string) *Error {
	return &Error{Kind: KindPrecondition, Message: message, Resource: resource}
}

// NewUpstream reports a failed provider or booking-gateway call.
func NewUpstream(message, resource string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Resource: resource, Cause: cause}
}

// KindOf returns the kind of err, or the empty Kind for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
