package services

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type clientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	staleLoads      *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *clientMetrics {
	return &clientMetrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "backend_requests_total",
			Help:      "Total number of backend REST requests by method and status.",
		}, []string{"method", "status"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "console",
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of backend REST requests.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"method"}),
		staleLoads: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "console",
			Name:      "cache_stale_loads_total",
			Help:      "Cache loads discarded because a newer load had started.",
		}, []string{"endpoint"}),
	}
})
