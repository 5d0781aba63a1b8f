package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Order-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warung",
			Subsystem: "order_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "warung",
			Subsystem: "order_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Envelope counter, by performative
	EnvelopesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warung",
			Subsystem: "order_api",
			Name:      "envelopes_total",
			Help:      "Total envelopes appended to the conversation log",
		},
		[]string{"performative"},
	)

	// Order outcome counter
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warung",
			Subsystem: "order_api",
			Name:      "orders_total",
			Help:      "Order negotiation outcomes",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordEnvelope records an envelope appended to the conversation log
func RecordEnvelope(performative string) {
	EnvelopesTotal.WithLabelValues(performative).Inc()
}

// RecordOrder records the outcome of an order or substitution attempt
func RecordOrder(outcome string) {
	OrdersTotal.WithLabelValues(outcome).Inc()
}
