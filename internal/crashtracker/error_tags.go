package crashtracker

import (
	"errors"
	"strconv"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/netkicorp/go-partner-client/pkg/netki"
)

// errorTags returns the Netki API failure details carried by err, or nil when err did not come
// from the API.
func errorTags(err error) map[string]string {
	var apiErr *netki.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	tags := map[string]string{
		"netki.status_code": strconv.Itoa(apiErr.StatusCode),
	}
	if apiErr.Kind != nil {
		tags["netki.kind"] = apiErr.Kind.Error()
	}
	if apiErr.Operation != "" {
		tags["netki.operation"] = apiErr.Operation
	}
	return tags
}

func logFields(tags map[string]string) log.F {
	fields := make(log.F, len(tags))
	for k, v := range tags {
		fields[k] = v
	}
	return fields
}
