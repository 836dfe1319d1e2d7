package apiclient

import "fmt"

// TransportError means the request never produced a response: the network
// was unreachable, the connection was refused, or the context expired.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError means the server responded with a non-2xx status. Message is
// the server's message field when the error body carried one; it may be
// empty.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}

// DecodeError means the server replied 2xx but the body did not decode into
// the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
