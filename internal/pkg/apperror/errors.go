package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation builds a VALIDATION_ERROR with a formatted message.
func Validation(format string, args ...interface{}) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsConflict(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeConflict
}

var (
	ErrUserNotFound       = New(ErrCodeNotFound, "user not found")
	ErrDepositNotFound    = New(ErrCodeNotFound, "deposit not found")
	ErrWithdrawalNotFound = New(ErrCodeNotFound, "withdrawal not found")
	ErrAccountNotFound    = New(ErrCodeNotFound, "ledger account not found")
	ErrUnauthorized       = New(ErrCodeUnauthorized, "authorization required")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "invalid credentials")
	ErrForbidden          = New(ErrCodeForbidden, "insufficient permissions")
	ErrAccountDeactivated = New(ErrCodeForbidden, "account is deactivated")

	// Expected race outcome when two decisions target the same request:
	// only the first observes pending, the rest get this.
	ErrAlreadyProcessed = New(ErrCodeConflict, "request already processed")

	ErrInsufficientBalance = New(ErrCodeConflict, "insufficient balance")
	ErrInvalidAmount       = New(ErrCodeValidation, "amount must be positive with at most two decimal places")
	ErrReasonRequired      = New(ErrCodeValidation, "admin notes required for rejection")
)
