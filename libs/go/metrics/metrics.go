package metrics

import (
	"strconv"
	"time"

	httpclient "github.com/ledgerline/filing-api/libs/go/client/http"
	"github.com/ledgerline/filing-api/libs/go/types/business"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for gateway traffic and filing outcomes
type Metrics struct {
	GatewayRequestDuration *prometheus.HistogramVec
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestErrors   *prometheus.CounterVec
	SubmissionsTotal       *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates and registers all metrics on reg
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GatewayRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filing_gateway_request_duration_seconds",
			Help:    "Duration of requests sent to the filing gateways",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"gateway", "method", "status"}),
		GatewayRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_gateway_requests_total",
			Help: "Total number of requests sent to the filing gateways",
		}, []string{"gateway", "method", "status"}),
		GatewayRequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_gateway_request_errors_total",
			Help: "Total number of gateway requests that failed or returned a non-2xx status",
		}, []string{"gateway", "method"}),
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "filing_submissions_total",
			Help: "Total number of submission results by gateway and status",
		}, []string{"gateway", "status"}),
	}
}

// RecordSubmission counts a submission or poll outcome
func (m *Metrics) RecordSubmission(gateway business.Gateway, status business.SubmissionStatus) {
	m.SubmissionsTotal.WithLabelValues(string(gateway), string(status)).Inc()
}

// ForGateway returns an HTTP client metrics collector labelled with gateway.
// Paths are not used as labels because poll endpoints are issued by the gateway.
func (m *Metrics) ForGateway(gateway business.Gateway) httpclient.MetricsCollector {
	return &gatewayCollector{metrics: m, gateway: string(gateway)}
}

type gatewayCollector struct {
	metrics *Metrics
	gateway string
}

var _ httpclient.MetricsCollector = (*gatewayCollector)(nil)

func (c *gatewayCollector) RecordRequestDuration(method, _ string, statusCode int, duration time.Duration) {
	c.metrics.GatewayRequestDuration.WithLabelValues(c.gateway, method, strconv.Itoa(statusCode)).Observe(duration.Seconds())
}

func (c *gatewayCollector) RecordRequestCount(method, _ string, statusCode int) {
	c.metrics.GatewayRequestsTotal.WithLabelValues(c.gateway, method, strconv.Itoa(statusCode)).Inc()
}

func (c *gatewayCollector) RecordRequestError(method, _ string) {
	c.metrics.GatewayRequestErrors.WithLabelValues(c.gateway, method).Inc()
}
