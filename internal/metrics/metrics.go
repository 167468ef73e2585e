package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RelayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hausmanager_relay_requests_total",
		Help: "Outbound gateway relay calls, labeled by relay mode and outcome",
	}, []string{"mode", "outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hausmanager_http_requests_total",
		Help: "Inbound HTTP requests, labeled by method, route and status code",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hausmanager_http_request_duration_seconds",
		Help:    "Latency distribution of inbound HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})
)
