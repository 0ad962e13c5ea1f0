// Package apperror defines the error kinds services return so the HTTP layer
// can map them to status codes without inspecting messages.
package apperror

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindPermission
	KindIntegrity
	KindNotFound
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermission:
		return "permission"
	case KindIntegrity:
		return "integrity"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// FieldErrors maps a field path to its messages, e.g. "questions[0].text".
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && len(e.Fields) > 0 {
		msg = fmt.Sprintf("invalid fields: %v", e.Fields)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// ValidationField is shorthand for a single-field validation error.
func ValidationField(field, msg string) *Error {
	return Validation(FieldErrors{field: {msg}})
}

func Permission(msg string) *Error {
	return &Error{Kind: KindPermission, Message: msg}
}

func Integrity(msg string) *Error {
	return &Error{Kind: KindIntegrity, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// FromLookup turns gorm.ErrRecordNotFound into a NotFound error and wraps
// anything else with context.
func FromLookup(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Message: what + " not found", Err: err}
	}
	return fmt.Errorf("error fetching %s: %w", what, err)
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
