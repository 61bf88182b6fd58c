package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EndpointLabel(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{path: "/v1/partner/walletname", want: "/v1/partner/walletname"},
		{path: "/api/domain", want: "/api/domain"},
		{path: "/v1/partner/domain/example.com", want: "/v1/partner/domain/{domain}"},
		{path: "/v1/partner/domain/dnssec/example.com", want: "/v1/partner/domain/dnssec/{domain}"},
		{path: "/v1/admin/partner", want: "/v1/admin/partner"},
		{path: "/v1/admin/partner/Acme Inc", want: "/v1/admin/partner/{partner}"},
		{path: "/v1/certificate/products", want: "/v1/certificate/products"},
		{path: "/v1/certificate/balance", want: "/v1/certificate/balance"},
		{path: "/v1/certificate/cacert", want: "/v1/certificate/cacert"},
		{path: "/v1/certificate/cert-1", want: "/v1/certificate/{id}"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, EndpointLabel(tc.path))
		})
	}
}

func Test_ParseHTTPResponseStatus(t *testing.T) {
	status, statusCode := ParseHTTPResponseStatus(204)
	assert.Equal(t, "success", status)
	assert.Equal(t, "204", statusCode)

	status, statusCode = ParseHTTPResponseStatus(302)
	assert.Equal(t, "error", status)
	assert.Equal(t, "302", statusCode)

	status, statusCode = ParseHTTPResponseStatus(500)
	assert.Equal(t, "error", status)
	assert.Equal(t, "500", statusCode)
}
