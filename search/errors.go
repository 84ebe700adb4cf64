package search

import (
	"fmt"
)

// ValidationError rejects a request before any provider call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid search request: " + e.Reason
}

// CancellationError is returned when the caller's context was canceled
// before any provider call completed.
type CancellationError struct {
	Err error
}

func (e *CancellationError) Error() string {
	return "search canceled: " + e.Err.Error()
}

func (e *CancellationError) Unwrap() error {
	return e.Err
}

// TimeoutError marks a provider call that exceeded the per-call ceiling.
type TimeoutError struct {
	Provider string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request timed out", e.Provider)
}

// HTTPError marks a non-2xx provider response.
type HTTPError struct {
	Provider string
	Status   int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: API returned status %d", e.Provider, e.Status)
}

// NetworkError marks a connection-level provider failure.
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnsupportedProviderError marks a registered provider that has no
// normalizer. Distinct from network or API failures so callers can tell
// "provider misbehaved" from "provider unimplemented".
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("no parser available for provider %s", e.Provider)
}
