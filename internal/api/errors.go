package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransientNetwork covers any rejected or failed network call. It is
	// recoverable by user-initiated retry, never by assuming success.
	ErrTransientNetwork = errors.New("transient network failure")

	// ErrAuthenticationRequired maps 401/403 responses. Fatal to the current
	// attempt; the caller redirects to login.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrVerificationRejected means the server refused the signed payment
	// reference. No order submission may follow it.
	ErrVerificationRejected = errors.New("payment signature verification rejected")
)

// ValidationError carries a server-side rejection message that must be
// surfaced to the user verbatim. The attempt stays retryable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rejected by server: %s", e.Message)
}
