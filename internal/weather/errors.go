package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a primary-provider failure.
type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindInvalidLocation   ErrorKind = "invalid_location"
	KindInvalidCredential ErrorKind = "invalid_credential"
	KindLocationNotFound  ErrorKind = "location_not_found"
	KindRateLimited       ErrorKind = "rate_limited"
	KindUpstreamError     ErrorKind = "upstream_error"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindNetworkError      ErrorKind = "network_error"
	KindUnknownError      ErrorKind = "unknown_error"
)

// APIError is the typed failure surfaced by the primary weather client.
// It propagates verbatim through the orchestration layer to the caller.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // upstream HTTP status when one was received
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is (or wraps) an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func newError(kind ErrorKind, status int, format string, args ...interface{}) *APIError {
	return &APIError{
		Kind:       kind,
		StatusCode: status,
		Message:    fmt.Sprintf(format, args...),
	}
}

// ErrMissingCredential is returned when a primary-provider call is
// attempted with an empty credential.
func ErrMissingCredential() *APIError {
	return newError(KindMissingCredential, 0,
		"API key is missing; configure your OpenWeatherMap API key in settings or the environment")
}

// ErrInvalidLocation is returned for an empty city name.
func ErrInvalidLocation() *APIError {
	return newError(KindInvalidLocation, 0, "city name is required")
}

// ErrInvalidCredential maps an upstream 401.
func ErrInvalidCredential() *APIError {
	return newError(KindInvalidCredential, 401,
		"invalid API key; check your OpenWeatherMap API key in settings")
}

// ErrLocationNotFound maps an upstream 404 and names the queried city.
func ErrLocationNotFound(city string) *APIError {
	return newError(KindLocationNotFound, 404,
		"city %q not found; check the city name and try again", city)
}

// ErrRateLimited maps an upstream 429.
func ErrRateLimited() *APIError {
	return newError(KindRateLimited, 429, "API rate limit exceeded; try again later")
}

// ErrUpstream maps any other non-2xx status, carrying the provider's
// own message when it supplied one.
func ErrUpstream(status int, providerMessage string) *APIError {
	if providerMessage != "" {
		return newError(KindUpstreamError, status, "%s", providerMessage)
	}
	return newError(KindUpstreamError, status, "weather provider request failed with status %d", status)
}

// ErrMalformedResponse flags a 2xx response missing required fields.
func ErrMalformedResponse() *APIError {
	return newError(KindMalformedResponse, 0, "invalid response from weather API")
}

// ErrNetwork wraps a transport-level failure (DNS, refused connection,
// timeout).
func ErrNetwork(cause error) *APIError {
	e := newError(KindNetworkError, 0, "network error: %v", cause)
	e.cause = cause
	return e
}

// ErrUnknown wraps anything uncategorized, preserving the original
// message.
func ErrUnknown(cause error) *APIError {
	e := newError(KindUnknownError, 0, "%v", cause)
	e.cause = cause
	return e
}
