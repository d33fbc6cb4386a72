package model

import (
	"errors"
	"strings"
)

// Code is the stable, machine-readable error code surfaced to clients.
type Code string

// Error codes.
const (
	CodeTeamNotFound      Code = "TEAM_NOT_FOUND"
	CodeDuplicateTeamName Code = "DUPLICATE_TEAM_NAME"
	CodeInvalidRequest    Code = "INVALID_REQUEST"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a classified roster failure. Two errors match under errors.Is
// when their codes are equal, so the sentinels below can be compared
// against errors that carry details or a cause.
type Error struct {
	Code    Code
	Message string
	Details []string
	cause   error
}

var (
	// ErrTeamNotFound indicates that no team has the requested id.
	ErrTeamNotFound = &Error{Code: CodeTeamNotFound, Message: "team not found"}
	// ErrDuplicateTeamName indicates that another team already uses the name.
	ErrDuplicateTeamName = &Error{Code: CodeDuplicateTeamName, Message: "team name is already in use"}
	// ErrInvalidRequest indicates that the request failed validation.
	ErrInvalidRequest = &Error{Code: CodeInvalidRequest, Message: "invalid request"}
	// ErrInternal indicates an unclassified failure.
	ErrInternal = &Error{Code: CodeInternal, Message: "internal server error"}
)

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Unwrap returns the underlying cause of an internal error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError returns an INVALID_REQUEST error with one detail per offending field.
func NewValidationError(details ...string) *Error {
	return &Error{
		Code:    CodeInvalidRequest,
		Message: ErrInvalidRequest.Message,
		Details: details,
	}
}

// Internal wraps cause as INTERNAL_ERROR. The cause stays reachable through
// errors.Unwrap for logging but never appears in Message or Details.
func Internal(cause error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: ErrInternal.Message,
		cause:   cause,
	}
}

// AsError classifies err. Nil stays nil, an *Error anywhere in the chain is
// returned as is, anything else becomes INTERNAL_ERROR.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
