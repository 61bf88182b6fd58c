package netki

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/netkicorp/go-partner-client/internal/httpclient"
)

// Envelope is a fully buffered HTTP response.
type Envelope struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// RequestObserver is notified once per HTTP round trip that produced a response.
type RequestObserver interface {
	ObserveRequest(method, path string, statusCode int, duration time.Duration)
}

// Transport issues a single request against the Netki API. It does not retry, serialize
// payloads or enforce timeouts of its own.
type Transport struct {
	httpClient httpclient.HTTPClientInterface
	observer   RequestObserver
}

// NewTransport returns a Transport over httpClient, falling back to httpclient.DefaultClient.
// observer may be nil.
func NewTransport(httpClient httpclient.HTTPClientInterface, observer RequestObserver) *Transport {
	if httpClient == nil {
		httpClient = httpclient.DefaultClient()
	}
	return &Transport{httpClient: httpClient, observer: observer}
}

func isSupportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Execute sends body (already JSON encoded, may be nil) to uri with the headers produced by auth.
func (t *Transport) Execute(ctx context.Context, auth Authenticator, uri, method string, body []byte) (*Envelope, error) {
	if !isSupportedMethod(method) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	headers, err := auth.Headers(uri, body)
	if err != nil {
		return nil, fmt.Errorf("building authentication headers: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	duration := time.Since(start)

	path := requestPath(uri)
	log.Ctx(ctx).WithFields(log.F{
		"method":   method,
		"path":     path,
		"status":   strconv.Itoa(resp.StatusCode),
		"duration": duration.String(),
	}).Debug("netki request")

	if t.observer != nil {
		t.observer.ObserveRequest(method, path, resp.StatusCode, duration)
	}

	return &Envelope{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		Header:     resp.Header,
	}, nil
}

// requestPath strips the query so that filter values never end up in logs or metric labels.
func requestPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return u.Path
}
