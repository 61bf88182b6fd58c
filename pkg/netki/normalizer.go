package netki

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/exp/slices"
)

var (
	defaultSuccessCodes = []int{http.StatusOK, http.StatusCreated, http.StatusAccepted}
	// Partner and domain deletes have no documented status; 200 and 202 are tolerated next to 204.
	adminDeleteSuccessCodes = []int{http.StatusOK, http.StatusAccepted, http.StatusNoContent}
	walletNameDeleteCodes   = []int{http.StatusNoContent}
)

// Expectation describes what a successful response looks like for one operation.
type Expectation struct {
	// Kind is the sentinel error wrapped by the returned *APIError on failure.
	Kind error
	// Operation names the call in the generic failure message.
	Operation string
	// SuccessCodes defaults to 200, 201 and 202 when empty.
	SuccessCodes []int
}

// Result is a successful, normalized response.
type Result struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v. A Result without body leaves v untouched.
func (r *Result) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

type responseFailure struct {
	Message string `json:"message"`
}

// responseStatus holds the fields shared by every Netki response that decide success or failure.
type responseStatus struct {
	Success  *bool
	Message  string
	Failures []responseFailure
}

// parseResponseStatus reads each status field on its own, so a field of an unexpected type is
// dropped without hiding the ones that parsed.
func parseResponseStatus(body []byte) responseStatus {
	var status responseStatus
	if len(body) == 0 {
		return status
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return status
	}

	var success *bool
	if raw, ok := fields["success"]; ok && json.Unmarshal(raw, &success) == nil {
		status.Success = success
	}
	if raw, ok := fields["message"]; ok {
		_ = json.Unmarshal(raw, &status.Message)
	}

	var failures []json.RawMessage
	if raw, ok := fields["failures"]; ok && json.Unmarshal(raw, &failures) == nil {
		for _, rawFailure := range failures {
			var f responseFailure
			if err := json.Unmarshal(rawFailure, &f); err == nil {
				status.Failures = append(status.Failures, f)
			}
		}
	}

	return status
}

// Normalize decides whether env is a success for exp and, when it is not, builds an *APIError
// whose message follows the precedence: first per-item failure, top-level message, generic text.
// Bodies or fields that fail to parse are treated as absent. A success flag that parses as
// false is always a failure.
func Normalize(env *Envelope, exp Expectation) (*Result, error) {
	successCodes := exp.SuccessCodes
	if len(successCodes) == 0 {
		successCodes = defaultSuccessCodes
	}
	kind := exp.Kind
	if kind == nil {
		kind = ErrRequestFailed
	}

	if env.StatusCode == http.StatusNoContent && slices.Contains(successCodes, http.StatusNoContent) {
		return &Result{StatusCode: env.StatusCode}, nil
	}

	status := parseResponseStatus(env.Body)

	if slices.Contains(successCodes, env.StatusCode) && (status.Success == nil || *status.Success) {
		return &Result{StatusCode: env.StatusCode, Body: env.Body}, nil
	}

	apiErr := &APIError{
		Kind:          kind,
		Operation:     exp.Operation,
		StatusCode:    env.StatusCode,
		ServerMessage: status.Message,
	}
	for _, f := range status.Failures {
		apiErr.Failures = append(apiErr.Failures, f.Message)
	}

	switch {
	case len(apiErr.Failures) > 0 && apiErr.Failures[0] != "":
		apiErr.Message = apiErr.Failures[0]
	case status.Message != "":
		apiErr.Message = status.Message
	default:
		apiErr.Message = fmt.Sprintf("%s failed with status code %d", exp.Operation, env.StatusCode)
	}

	return nil, apiErr
}
