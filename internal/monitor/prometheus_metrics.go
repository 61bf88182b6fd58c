package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	NetkiAPIRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "netki", Subsystem: "client", Name: string(NetkiAPIRequestDurationTag),
		Help: "Netki API request durations",
	},
		NetkiRequestLabelNames,
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	NetkiAPIRequestsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netki", Subsystem: "client", Name: string(NetkiAPIRequestsTotalTag),
		Help: "A counter of the Netki API requests",
	},
		NetkiRequestLabelNames,
	),
	WalletNameImportsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netki", Subsystem: "cli", Name: string(WalletNameImportsTotalTag),
		Help: "A counter of the wallet names processed by bulk imports",
	},
		WalletNameImportLabelNames,
	),
}
