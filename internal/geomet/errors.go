package geomet

import "fmt"

// InvalidFilterError reports malformed caller input detected before any
// request is issued.
type InvalidFilterError struct {
	Field  string
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Field, e.Reason)
}

// NetworkError wraps a transport-level failure (connection refused, DNS,
// timeout). No retry is attempted; the caller decides what to do.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-2xx response, carrying the status code and
// a body excerpt so failures can be diagnosed without re-running the request.
type HTTPStatusError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// MalformedResponseError reports a body that was not valid JSON or that
// lacked the fields the requested representation guarantees.
type MalformedResponseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// UnsupportedGeometryError is returned by strict-mode flattening when a
// feature carries a geometry other than Point.
type UnsupportedGeometryError struct {
	Type string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("unsupported geometry type %q: only Point is supported", e.Type)
}
