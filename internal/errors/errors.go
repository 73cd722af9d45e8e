// Package errors provides error types with actionable suggestions for the
// pubsweep application. Errors include contextual information to help users
// resolve issues quickly.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrManifest indicates a pubspec.yaml related error.
	ErrManifest = errors.New("manifest error")
	// ErrScan indicates a source scan failure.
	ErrScan = errors.New("scan error")
	// ErrEdit indicates a manifest edit failure.
	ErrEdit = errors.New("edit error")
	// ErrBackup indicates a backup or restore failure.
	ErrBackup = errors.New("backup error")
	// ErrNetwork indicates a network-related error.
	ErrNetwork = errors.New("network error")
	// ErrTimeout indicates a timeout occurred.
	ErrTimeout = errors.New("timeout error")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// SweepError is the base error type for pubsweep errors.
// It wraps an underlying error and provides additional context.
type SweepError struct {
	// Kind is the category of error (e.g., ErrManifest, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., file path, line number).
	Details map[string]string
}

// Error implements the error interface.
func (e *SweepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *SweepError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether any error in err's chain matches the target.
func (e *SweepError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with any details and suggestion.
func (e *SweepError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		sb.WriteString("\nDetails:\n")
		for k, v := range e.Details {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, v))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *SweepError) WithDetails(key, value string) *SweepError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *SweepError) WithCause(cause error) *SweepError {
	e.Cause = cause
	return e
}

// New creates a new SweepError with the given kind and message.
func New(kind error, message string) *SweepError {
	return &SweepError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *SweepError {
	return &SweepError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *SweepError {
	return &SweepError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}
