package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/netkicorp/go-partner-client/internal/httpclient"
)

type HTTPClientMock struct {
	mock.Mock
}

func (h *HTTPClientMock) Do(req *http.Request) (*http.Response, error) {
	args := h.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// NewHTTPClientMock creates a new HTTPClientMock and registers a cleanup
// function that asserts the expectations set on it.
func NewHTTPClientMock(t interface {
	mock.TestingT
	Cleanup(func())
},
) *HTTPClientMock {
	m := &HTTPClientMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

var _ httpclient.HTTPClientInterface = (*HTTPClientMock)(nil)
