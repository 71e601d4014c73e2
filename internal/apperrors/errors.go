package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrNotImplemented indicates that a supported request names a combination the service does not serve yet.
var ErrNotImplemented = errors.New("feature not implemented")

// ErrInvalidIdentifier indicates that an identifier token is malformed and was rejected before any lookup.
var ErrInvalidIdentifier = errors.New("invalid identifier format")

// ErrInvalidTransition indicates that a status change is not allowed from the current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrProcessorStopped indicates that work was submitted after the background processor shut down.
var ErrProcessorStopped = errors.New("processor stopped")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ParseError reports a CSV field that could not be converted to its typed value.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Violation describes a single failed validation rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// InvalidRowError reports a CSV row that parsed but failed validation.
// The message carries the row content; the violations travel alongside for logging.
type InvalidRowError struct {
	Line       int
	Row        string
	Violations []Violation
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("invalid transaction row at line %d: {%s}", e.Line, e.Row)
}

// Unwrap lets callers match invalid rows with errors.Is(err, ErrValidation).
func (e *InvalidRowError) Unwrap() error {
	return ErrValidation
}

// ViolationSummary joins the violation messages for log output.
func (e *InvalidRowError) ViolationSummary() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Field + ": " + v.Message
	}
	return strings.Join(msgs, "; ")
}

// ImportFailedError is the single failure surfaced by a transaction import run.
type ImportFailedError struct {
	Err error
}

func (e *ImportFailedError) Error() string {
	return "transaction import failed"
}

func (e *ImportFailedError) Unwrap() error {
	return e.Err
}
