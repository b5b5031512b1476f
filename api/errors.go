package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	// ErrTransport means the request never produced a response.
	ErrTransport ErrorKind = iota + 1
	// ErrHTTP means the API answered with a status >= 400.
	ErrHTTP
	// ErrDecode means a 2xx response body could not be decoded.
	ErrDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrHTTP:
		return "http"
	case ErrDecode:
		return "decode"
	}
	return "unknown"
}

// APIError is returned by every Client method that fails.
type APIError struct {
	Kind     ErrorKind
	Method   string
	Endpoint string
	Status   int
	// Message is the server-reported message, if the body carried one.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case ErrHTTP:
		if e.Message != "" {
			return fmt.Sprintf("api: %s %s: %d: %s", e.Method, e.Endpoint, e.Status, e.Message)
		}
		return fmt.Sprintf("api: %s %s: %d", e.Method, e.Endpoint, e.Status)
	default:
		return fmt.Sprintf("api: %s %s: %s: %v", e.Method, e.Endpoint, e.Kind, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type errorBody struct {
	Message string `json:"message"`
}

// newHTTPError builds an ErrHTTP error from a failed response body. A JSON
// body's "message" wins; short plain-text bodies are used as-is.
func newHTTPError(method, endpoint string, resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Kind:     ErrHTTP,
		Method:   method,
		Endpoint: endpoint,
		Status:   resp.StatusCode,
	}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}
	if text := strings.TrimSpace(string(body)); len(text) > 0 && len(text) <= 200 {
		apiErr.Message = text
	}
	return apiErr
}

// Message returns the text to show a visitor for err: the server-reported
// message when there is one, otherwise fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == ErrHTTP {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
