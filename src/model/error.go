package model

import "fmt"

// ConfigurationError disables the dependent feature, it never crashes the
// process.
type ConfigurationError struct {
	Variable string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: '%s' variable must be set", e.Variable)
}

// RateLimitError is returned after HTTP 429 exhausted all retry attempts.
type RateLimitError struct {
	Attempts int
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded after %d attempts", e.Attempts)
}

// UpstreamError carries the upstream status code and the response body when
// one was readable.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with error code: %d", e.StatusCode)
}
