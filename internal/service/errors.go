package service

import (
	"errors"

	"github.com/workflow-hub-api/internal/validation"
)

// Error kinds returned by every service operation. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// genericInternalMessage is the only detail callers ever see for internal failures
const genericInternalMessage = "Internal server error, please try again later"

// Error is a typed failure carrying a caller-safe message
type Error struct {
	Kind    error
	Message string
	Fields  []validation.ValidationError
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) and friends match on the kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func newValidationError(errs []validation.ValidationError) *Error {
	return &Error{Kind: ErrValidation, Message: validation.Summary(errs), Fields: errs}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func internalError() *Error {
	return &Error{Kind: ErrInternal, Message: genericInternalMessage}
}
