package ecoapi

import "fmt"

// TransportError wraps a network-level failure: the request never produced
// an HTTP response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ecoquest service unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. The body is read as text and carried for
// diagnostics.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("ecoquest service returned %d: %s", e.Status, e.Body)
}

// ValidationError marks a well-formed HTTP response whose body is missing a
// required field, carries an explicit error field, or is not valid JSON.
type ValidationError struct {
	Endpoint string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s response: %s", e.Endpoint, e.Reason)
}
