package sentiment

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ValidationError means the endpoint rejected the payload itself (HTTP 422).
type ValidationError struct {
	StatusCode int
	// Detail is the response body verbatim.
	Detail []byte
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("API Request Error: %d %s. Data payload validation failed",
		e.StatusCode, http.StatusText(e.StatusCode))
}

// DetailJSON returns the detail as JSON when the body parses, nil otherwise.
func (e *ValidationError) DetailJSON() json.RawMessage {
	if json.Valid(e.Detail) {
		return json.RawMessage(e.Detail)
	}
	return nil
}

// TransportError covers network failures and non-2xx statuses other than 422.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("API Request Error: status code %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("API Request Error: status code %d", e.StatusCode)
	default:
		return fmt.Sprintf("API Request Error: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError means the endpoint answered with a success status but the body
// broke the {"sentiments": [string, ...]} contract, or the label count did
// not match the comment count.
type ShapeError struct {
	Reason  string
	Preview string
}

func (e *ShapeError) Error() string {
	if e.Preview == "" {
		return "API response has unexpected format: " + e.Reason
	}
	return fmt.Sprintf("API response has unexpected format: %s: %s", e.Reason, e.Preview)
}
