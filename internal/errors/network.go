// Package errors provides error types for pubsweep.
// This file contains network and timeout-related errors.
package errors

import (
	"fmt"
	"time"
)

// Network-related error constructors.

// NetworkUnavailable creates an error for network connectivity issues.
func NetworkUnavailable(host string, cause error) *SweepError {
	err := &SweepError{
		Kind:    ErrNetwork,
		Message: "network unavailable",
		Cause:   cause,
		Suggestion: `Check your network connection:

  1. Verify internet connectivity
  2. Check if VPN or firewall is blocking access

If you're behind a proxy:
  export HTTP_PROXY=http://proxy:port
  export HTTPS_PROXY=http://proxy:port

Note: category lookups and update checks are optional; analysis and
cleaning work fully offline.`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// OperationTimeout creates a generic timeout error.
func OperationTimeout(operation string, elapsed time.Duration) *SweepError {
	return &SweepError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, elapsed.Round(time.Second)),
		Details: map[string]string{
			"operation": operation,
			"elapsed":   elapsed.Round(time.Second).String(),
		},
		Suggestion: "The operation took too long. Check your connection or try again later.",
	}
}

// IsRetryable returns true if the error is likely transient and retrying may succeed.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if se, ok := err.(*SweepError); ok {
		switch se.Kind {
		case ErrNetwork, ErrTimeout:
			return true
		default:
			return false
		}
	}

	return false
}

// IsUserError returns true if the error is due to user misconfiguration.
func IsUserError(err error) bool {
	if se, ok := err.(*SweepError); ok {
		return se.Kind == ErrConfig
	}
	return false
}
