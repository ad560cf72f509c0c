package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrorCode identifies an error class on the wire.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists   ErrorCode = "USER_EXISTS"

	// Draw errors. Pairing errors mean the draw itself was refused;
	// storage errors mean a computed draw could not be saved and can be retried.
	ErrCodeNotEnoughParticipants ErrorCode = "NOT_ENOUGH_PARTICIPANTS"
	ErrCodeDuplicateParticipant  ErrorCode = "DUPLICATE_PARTICIPANT"
	ErrCodePairingFailed         ErrorCode = "PAIRING_FAILED"
	ErrCodeDrawSaveFailed        ErrorCode = "DRAW_SAVE_FAILED"
	ErrCodeAssignmentNotFound    ErrorCode = "ASSIGNMENT_NOT_FOUND"
	ErrCodeInvalidExchange       ErrorCode = "INVALID_EXCHANGE"

	ErrCodeStorageError ErrorCode = "STORAGE_ERROR"
	ErrCodeCacheError   ErrorCode = "CACHE_ERROR"
)

// AppError is a typed application error rendered by the error middleware.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Context   map[string]string      `json:"context,omitempty"`
	Stack     []string               `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	UserID    int64                  `json:"user_id,omitempty"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsNotFound() bool {
	return e.Code == ErrCodeNotFound ||
		e.Code == ErrCodeUserNotFound ||
		e.Code == ErrCodeAssignmentNotFound
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation ||
		e.Code == ErrCodeBadRequest ||
		e.Code == ErrCodeInvalidExchange ||
		e.Code == ErrCodeNotEnoughParticipants ||
		e.Code == ErrCodeDuplicateParticipant
}

func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeForbidden
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal ||
		e.Code == ErrCodeStorageError ||
		e.Code == ErrCodeDrawSaveFailed ||
		e.Code == ErrCodePairingFailed ||
		e.Code == ErrCodeCacheError
}

// IsRetryable reports whether repeating the same request may succeed.
func (e *AppError) IsRetryable() bool {
	return e.Code == ErrCodeDrawSaveFailed || e.Code == ErrCodeStorageError || e.Code == ErrCodeCacheError
}

func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *AppError) WithRequestID(requestID string) *AppError {
	e.RequestID = requestID
	return e
}

func (e *AppError) WithUserID(userID int64) *AppError {
	e.UserID = userID
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Stack:     getStackTrace(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func getStackTrace() []string {
	var stack []string
	for i := 2; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		if strings.Contains(fn.Name(), "internal/common/errors") {
			continue
		}
		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, fn.Name()))
		if len(stack) >= 10 {
			break
		}
	}
	return stack
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

func NewNotFoundError(resource, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

func NewStorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageError, fmt.Sprintf("Storage operation failed: %s", operation)).
		WithDetail("operation", operation)
}

func NewNotEnoughParticipantsError(exchangeID string, count, min int) *AppError {
	return New(ErrCodeNotEnoughParticipants, "not enough participants").
		WithDetail("exchange_id", exchangeID).
		WithDetail("participants", count).
		WithDetail("required", min)
}

// NewDrawSaveError reports a draw that was computed but not persisted.
func NewDrawSaveError(exchangeID string, err error) *AppError {
	return Wrap(err, ErrCodeDrawSaveFailed, "draw computed but could not be saved; retry the draw").
		WithDetail("exchange_id", exchangeID)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
