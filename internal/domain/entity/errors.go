package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures so outer layers can map them without string matching.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
)

// Sentinels for errors.Is. Any *Error of the same kind matches its sentinel.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error is the domain failure type.
// Field is set for single-field validation failures; Details collects per-field messages
// when a whole inbound shape is checked at once.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) and friends match by kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	}
	return false
}

func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NewValidationDetails builds a validation error from a field -> message map.
func NewValidationDetails(details map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Details: details}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// IsKind reports whether err is (or wraps) a domain *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}
