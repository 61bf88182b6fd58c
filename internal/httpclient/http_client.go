package httpclient

import (
	"net/http"
	"time"
)

// HTTPClientInterface is the subset of *http.Client used to reach the Netki API.
//
//go:generate mockery --name=HTTPClientInterface --case=underscore --structname=HTTPClientMock --filename=http_client_mock.go --outpkg=mocks --output=mocks
type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}

const TimeoutClientInSeconds = 40

// DefaultClient returns a default HTTP client with a timeout.
func DefaultClient() HTTPClientInterface {
	return &http.Client{Timeout: TimeoutClientInSeconds * time.Second}
}

var _ HTTPClientInterface = DefaultClient()
