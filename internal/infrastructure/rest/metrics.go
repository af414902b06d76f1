package rest

// This file is the single source of truth for client metric names, labels,
// and help strings; promauto registers everything with the default registry
// at package load.

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// RequestsTotal counts API calls by outcome.
// Labels:
//   - method: HTTP method of the call
//   - outcome: "success", "error" (non-2xx), or "transport_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of storefront API requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures wall time of completed API calls (transport
// failures excluded).
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of storefront API requests from send to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)
