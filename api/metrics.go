package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "folio_api_request_duration_seconds",
		Help:    "Latency of requests to the content API in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	},
	[]string{"method", "endpoint", "status"},
)

// Collector exposes the client's request metrics for registration.
func Collector() prometheus.Collector {
	return requestDuration
}

// observe records one upstream call. status 0 means no response was received.
func observe(method, endpoint string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	requestDuration.WithLabelValues(method, endpoint, label).Observe(d.Seconds())
}
