package monitor

type MetricTag string

const (
	// Netki API requests
	NetkiAPIRequestDurationTag MetricTag = "api_request_duration_seconds"
	NetkiAPIRequestsTotalTag   MetricTag = "api_requests_total"
	// Wallet name bulk imports
	WalletNameImportsTotalTag MetricTag = "wallet_name_imports_total"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		NetkiAPIRequestDurationTag,
		NetkiAPIRequestsTotalTag,
		WalletNameImportsTotalTag,
	}
}
