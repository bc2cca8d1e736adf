package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes carried by every error the services return. The HTTP layer maps
// these to status codes; the mapping is a fixed contract.
const (
	CodeNotFound         = "not_found"
	CodeParentNotFound   = "parent_not_found"
	CodeForbidden        = "forbidden"
	CodeUnauthorized     = "unauthorized"
	CodeInvalidInput     = "invalid_input"
	CodeDuplicateEmail   = "duplicate_email"
	CodeRoleNotPermitted = "role_not_permitted"
	CodeStorageFailure   = "upstream_storage_failure"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func ParentNotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeParentNotFound, fmt.Errorf(format, args...))
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, CodeForbidden, fmt.Errorf(format, args...))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, fmt.Errorf(format, args...))
}

func DuplicateEmail(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeDuplicateEmail, fmt.Errorf(format, args...))
}

func RoleNotPermitted(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeRoleNotPermitted, fmt.Errorf(format, args...))
}

func StorageFailure(err error) *Error {
	return New(http.StatusInternalServerError, CodeStorageFailure, err)
}

// Status resolves the HTTP status for any error. Non-apierr errors map
// to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// Code resolves the wire code for any error, empty for plain errors.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return Code(err) == code
}
