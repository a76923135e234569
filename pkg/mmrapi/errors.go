package mmrapi

import "fmt"

// ServerError reports a non-200 response from the recognition server.
// Message holds the server-provided errorMessage when the error body carried
// one, otherwise the HTTP reason phrase. Body keeps the raw response text.
type ServerError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned error code %d: %s", e.StatusCode, e.Message)
}

// DecodeError reports a 200 response whose body is not valid JSON.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
