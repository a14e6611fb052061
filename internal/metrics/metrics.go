// Package metrics defines Prometheus metrics for the marketplace proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mpx"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Marketplace API metrics.
var (
	MarketplaceAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_api_calls_total",
		Help:      "Total cumulative marketplace API calls.",
	})

	MarketplaceAPIErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "marketplace_api_errors_total",
		Help:      "Total number of failed marketplace API calls.",
	})

	MarketplaceRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "marketplace_request_duration_seconds",
		Help:      "Duration of outbound marketplace calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
