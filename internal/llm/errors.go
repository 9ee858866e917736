package llm

import (
	"errors"
	"fmt"
)

// ErrNoProvider is matched by every ConfigurationError.
var ErrNoProvider = errors.New("no AI provider configured")

// ConfigurationError reports that no usable provider credential is present.
// It is always raised before any network call.
type ConfigurationError struct {
	// Provider is set when a specific provider was requested but lacks a credential.
	Provider ProviderName
}

func (e *ConfigurationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s is not configured (set %s)", ErrNoProvider, e.Provider, CredentialEnvVar(e.Provider))
	}
	return ErrNoProvider.Error()
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrNoProvider
}

// HTTPError is returned when a vendor answers with a non-2xx status. Body is
// the vendor's response body, verbatim.
type HTTPError struct {
	Provider   ProviderName
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// TransportError wraps failures that happened before any HTTP response was
// received: DNS, connection resets, deadlines.
type TransportError struct {
	Provider ProviderName
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FallbackError is returned by CallWithFallback when every candidate failed.
// It unwraps to the error of the last attempted provider.
type FallbackError struct {
	Attempts int
	Last     error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("all %d AI provider attempts failed; last error: %v", e.Attempts, e.Last)
}

func (e *FallbackError) Unwrap() error {
	return e.Last
}

// errorKind classifies an adapter error for logging.
func errorKind(err error) string {
	var httpErr *HTTPError
	var transportErr *TransportError
	switch {
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &transportErr):
		return "transport"
	default:
		return "other"
	}
}
