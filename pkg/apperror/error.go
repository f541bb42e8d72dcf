package apperror

import (
	"errors"
	"net/http"
)

// ErrorType classifies an AppError independently of its HTTP status.
type ErrorType string

const (
	TypeValidation     ErrorType = "VALIDATION_ERROR"
	TypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	TypeAuthorization  ErrorType = "AUTHORIZATION_ERROR"
	TypeNotFound       ErrorType = "NOT_FOUND"
	TypeConflict       ErrorType = "CONFLICT"
	TypeRateLimited    ErrorType = "RATE_LIMITED"
	TypeInternal       ErrorType = "INTERNAL"
)

type AppError struct {
	Code    int                 `json:"code"`
	Type    ErrorType           `json:"type"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, TypeValidation, message, nil)
}

// Validation builds a 400 error carrying field-keyed messages.
func Validation(message string, fields map[string][]string) *AppError {
	e := New(http.StatusBadRequest, TypeValidation, message, nil)
	e.Fields = fields
	return e
}

// FieldError is a shorthand for a validation error on a single field.
func FieldError(field, message string) *AppError {
	return Validation(message, map[string][]string{field: {message}})
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, TypeAuthentication, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, TypeAuthorization, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, TypeNotFound, message, nil)
}

// Conflict reports a duplicate. It is rendered as 400 like other client errors.
func Conflict(message string) *AppError {
	return New(http.StatusBadRequest, TypeConflict, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, TypeRateLimited, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, TypeInternal, "Internal Server Error", err)
}

// Is reports whether err is an AppError of the given type.
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
