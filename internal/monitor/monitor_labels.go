package monitor

import "strings"

type NetkiRequestLabels struct {
	Method     string
	Endpoint   string
	Status     string
	StatusCode string
}

func (n NetkiRequestLabels) ToMap() map[string]string {
	return map[string]string{
		"method":      n.Method,
		"endpoint":    n.Endpoint,
		"status":      n.Status,
		"status_code": n.StatusCode,
	}
}

var NetkiRequestLabelNames = []string{"method", "endpoint", "status", "status_code"}

type WalletNameImportLabels struct {
	Result string
}

func (w WalletNameImportLabels) ToMap() map[string]string {
	return map[string]string{"result": w.Result}
}

var WalletNameImportLabelNames = []string{"result"}

// endpointTemplates maps request path prefixes to the label used for them, so that domain names,
// partner names and certificate IDs do not end up as label values. Longer prefixes come first.
var endpointTemplates = []struct {
	prefix   string
	template string
}{
	{prefix: "/v1/partner/domain/dnssec/", template: "/v1/partner/domain/dnssec/{domain}"},
	{prefix: "/v1/partner/domain/", template: "/v1/partner/domain/{domain}"},
	{prefix: "/v1/admin/partner/", template: "/v1/admin/partner/{partner}"},
	{prefix: "/v1/certificate/products", template: "/v1/certificate/products"},
	{prefix: "/v1/certificate/balance", template: "/v1/certificate/balance"},
	{prefix: "/v1/certificate/cacert", template: "/v1/certificate/cacert"},
	{prefix: "/v1/certificate/", template: "/v1/certificate/{id}"},
}

func EndpointLabel(path string) string {
	for _, t := range endpointTemplates {
		if strings.HasPrefix(path, t.prefix) {
			return t.template
		}
	}
	return path
}
