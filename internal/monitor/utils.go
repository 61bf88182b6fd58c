package monitor

import (
	"net/http"
	"strconv"
)

const (
	successStatus = "success"
	errorStatus   = "error"
)

// ParseHTTPResponseStatus labels 2xx responses as successful and everything else as an error.
func ParseHTTPResponseStatus(statusCode int) (status, statusCodeStr string) {
	if statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices {
		return successStatus, strconv.Itoa(statusCode)
	}
	return errorStatus, strconv.Itoa(statusCode)
}
