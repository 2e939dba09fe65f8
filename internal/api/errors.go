package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnauthorized matches any *HTTPError with status 401.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPError is a non-2xx response. Body is whatever the server sent.
type HTTPError struct {
	Status  int
	Body    []byte
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API error %d", e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// NetworkError means the request never produced a response: the server was
// unreachable, the connection broke, or the timeout expired.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("%s %s: request timed out", e.Method, e.URL)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// ServerMessage extracts a human-readable message from an error body.
// JSON bodies are searched for message, error and errors keys; short plain
// text bodies are returned as is.
func ServerMessage(body []byte) string {
	var m struct {
		Message string              `json:"message"`
		Error   json.RawMessage     `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		text := strings.TrimSpace(string(body))
		if text == "" || len(text) > 200 || strings.HasPrefix(text, "<") || strings.HasPrefix(text, "{") {
			return ""
		}
		return text
	}
	if m.Message != "" {
		return m.Message
	}
	if len(m.Error) > 0 {
		var s string
		if json.Unmarshal(m.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(m.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	if len(m.Errors) > 0 {
		keys := make([]string, 0, len(m.Errors))
		for k := range m.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if len(m.Errors[k]) > 0 {
				return m.Errors[k][0]
			}
		}
	}
	return ""
}
