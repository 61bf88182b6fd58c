package netki

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedMethod is returned by the transport before any network activity when the HTTP
	// method is not one of GET, POST, PUT or DELETE.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	// ErrNotPersisted is returned when deleting a wallet name that was never created remotely.
	ErrNotPersisted = errors.New("unable to delete object that does not exist remotely")
	// ErrNoConnection is returned when a wallet name has no client attached.
	ErrNoConnection = errors.New("wallet name is not attached to a client")

	ErrListFailed    = errors.New("wallet name list failed")
	ErrSaveFailed    = errors.New("wallet name save failed")
	ErrDeleteFailed  = errors.New("wallet name delete failed")
	ErrRequestFailed = errors.New("netki request failed")
)

// APIError is a failure reported by the Netki API, normalized from whatever shape the endpoint
// returned.
type APIError struct {
	// Kind is one of the Err* sentinels above and is what errors.Is matches against.
	Kind      error
	Operation string
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the normalized, human-readable failure message.
	Message string
	// ServerMessage is the top-level "message" field, when the response carried one.
	ServerMessage string
	// Failures holds every per-item failure message, in response order.
	Failures []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if len(e.Failures) > 1 {
		msg = fmt.Sprintf("%s [FAILURES: %s]", msg, strings.Join(e.Failures, ", "))
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// StatusCode returns the HTTP status code carried by err, or 0 when err is not an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
