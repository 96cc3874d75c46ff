package internal

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeConflict    ErrorType = "CONFLICT"
	ErrorTypeExternal    ErrorType = "EXTERNAL_ERROR"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
	ErrorTypeUnavailable ErrorType = "STORE_UNAVAILABLE"
)

// AppError is the structured result services return for expected failure
// conditions. Code carries the opaque NNxNN diagnostic code surfaced to
// support; it is not part of the business contract.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Envelope renders the error the way every endpoint reports failures: the
// uniform {result, errors[]} shape with the diagnostic code prefixed.
func (e *AppError) Envelope() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s - %s", e.Code, e.Message)
}

func NewValidationError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(code, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewExternalError carries an upstream provider's status code and message
// through untouched.
func NewExternalError(statusCode int, message string) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewInternalError(code string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       code,
		Message:    "Erro interno de servidor",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewUnavailableError marks store connectivity faults; it maps to 500 like
// internal errors but keeps a distinct diagnostic code for triage.
func NewUnavailableError(code string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Code:       code,
		Message:    "Erro ao tentar se conectar ao banco de dados",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}
