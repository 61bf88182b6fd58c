package monitor

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/netkicorp/go-partner-client/pkg/netki"
)

//go:generate mockery --name=MonitorServiceInterface --case=underscore --structname=MockMonitorService
type MonitorServiceInterface interface {
	netki.RequestObserver
	Start(opts MetricOptions) error
	GetMetricType() (MetricType, error)
	GetMetricHTTPHandler() (http.Handler, error)
	MonitorCounters(tag MetricTag, labels map[string]string) error
	MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error
	WriteToTextfile(path string) error
}

var _ MonitorServiceInterface = (*MonitorService)(nil)

type MonitorService struct {
	MonitorClient MonitorClient
}

func (m *MonitorService) Start(opts MetricOptions) error {
	if m.MonitorClient != nil {
		return fmt.Errorf("service already initialized")
	}

	monitorClient, err := GetClient(opts)
	if err != nil {
		return fmt.Errorf("error creating monitor client: %w", err)
	}

	m.MonitorClient = monitorClient

	return nil
}

func (m *MonitorService) GetMetricType() (MetricType, error) {
	if m.MonitorClient == nil {
		return "", fmt.Errorf("client was not initialized")
	}

	return m.MonitorClient.GetMetricType(), nil
}

func (m *MonitorService) GetMetricHTTPHandler() (http.Handler, error) {
	if m.MonitorClient == nil {
		return nil, fmt.Errorf("client was not initialized")
	}

	return m.MonitorClient.GetMetricHTTPHandler(), nil
}

func (m *MonitorService) MonitorDuration(duration time.Duration, tag MetricTag, labels map[string]string) error {
	if m.MonitorClient == nil {
		return fmt.Errorf("client was not initialized")
	}

	m.MonitorClient.MonitorDuration(duration, tag, labels)

	return nil
}

func (m *MonitorService) MonitorCounters(tag MetricTag, labels map[string]string) error {
	if m.MonitorClient == nil {
		return fmt.Errorf("client was not initialized")
	}

	m.MonitorClient.MonitorCounters(tag, labels)

	return nil
}

func (m *MonitorService) WriteToTextfile(path string) error {
	if m.MonitorClient == nil {
		return fmt.Errorf("client was not initialized")
	}

	return m.MonitorClient.WriteToTextfile(path)
}

// ObserveRequest records the duration and outcome of a Netki API request. It is a no-op until
// Start has been called.
func (m *MonitorService) ObserveRequest(method, path string, statusCode int, duration time.Duration) {
	if m.MonitorClient == nil {
		return
	}

	status, statusCodeStr := ParseHTTPResponseStatus(statusCode)
	labels := NetkiRequestLabels{
		Method:     method,
		Endpoint:   EndpointLabel(path),
		Status:     status,
		StatusCode: statusCodeStr,
	}.ToMap()

	if err := m.MonitorDuration(duration, NetkiAPIRequestDurationTag, labels); err != nil {
		log.Errorf("monitoring Netki API request duration: %v", err)
	}
	if err := m.MonitorCounters(NetkiAPIRequestsTotalTag, labels); err != nil {
		log.Errorf("monitoring Netki API request count: %v", err)
	}
}
