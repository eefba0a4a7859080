package errors

import (
	stderrors "errors"
	"fmt"
)

// Category groups error codes.
type Category string

const (
	CategoryRouting Category = "routing"
	CategoryConfig  Category = "config"
	CategoryServer  Category = "server"
)

// AppError is a structured error with a code and a hint.
type AppError struct {
	// Code is the registered identifier (e.g., "V001").
	Code string

	// Category is the error group.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *AppError) WithSuggestion(s string) *AppError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *AppError) WithDetail(d string) *AppError {
	e.Detail = d
	return e
}

// Wrap sets the underlying error.
func (e *AppError) Wrap(err error) *AppError {
	e.Wrapped = err
	return e
}

// New creates an AppError from a registered code.
func New(code string) *AppError {
	template, ok := registry[code]
	if !ok {
		return &AppError{Code: code, Message: "Unknown error"}
	}
	return &AppError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates an uncoded AppError with a formatted message.
func Newf(category Category, format string, args ...any) *AppError {
	return &AppError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps err under code. An error that already carries an
// *AppError in its chain is returned as that AppError.
func FromError(err error, code string) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first AppError in err's chain, or "".
func Code(err error) string {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
