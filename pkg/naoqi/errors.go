package naoqi

import "fmt"

// RemoteError is a fault raised by a service on the robot, carried back
// verbatim. These are not retried.
type RemoteError struct {
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return "robot: " + e.Message
}

// APIError is a non-200 response from the robot's call gateway.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("naoqi: gateway error %d", e.StatusCode)
	}
	return fmt.Sprintf("naoqi: gateway error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the gateway rejected the service or method name.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError reports whether the gateway itself failed.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// CallError wraps a failed remote call with the service and method that
// issued it.
type CallError struct {
	Service string
	Method  string
	Err     error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("naoqi [%s.%s]: %v", e.Service, e.Method, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}
