// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dormconnect_http_requests_total",
			Help: "HTTP requests handled, by method, path pattern and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dormconnect_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ComplaintsFiled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormconnect_complaints_filed_total",
		Help: "Complaints filed by students.",
	})

	SOSAlertsTriggered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormconnect_sos_alerts_total",
		Help: "SOS alerts triggered.",
	})

	SOSSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dormconnect_sos_stream_subscribers",
		Help: "Currently connected SOS stream subscribers.",
	})
)
