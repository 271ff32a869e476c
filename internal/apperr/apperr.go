package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an operation failure for HTTP mapping.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeDuplicate    Code = "DUPLICATE_ENTRY"
	CodeNotFound     Code = "NOT_FOUND"
	CodeStorage      Code = "STORAGE"
	CodeNotification Code = "NOTIFICATION_CHANNEL"
)

// Error carries a code and a caller-facing message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Duplicate(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicate, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func Storage(err error) *Error {
	return &Error{Code: CodeStorage, Message: err.Error()}
}

func Notification(format string, args ...any) *Error {
	return &Error{Code: CodeNotification, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to a response status. Unknown errors are 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeValidation, CodeDuplicate, CodeNotification:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
