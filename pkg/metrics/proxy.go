package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProxyMetrics records traffic through the backend relay.
type ProxyMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewProxyMetrics registers the proxy metrics on the provided registerer.
func NewProxyMetrics(reg prometheus.Registerer) *ProxyMetrics {
	if reg == nil {
		return &ProxyMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proxy_request_duration_seconds",
		Help:    "Duration of proxied backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_requests_total",
		Help: "Proxied backend requests by method and upstream status.",
	}, []string{"method", "status"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "proxy_upstream_failures_total",
		Help: "Proxied requests that never reached the backend.",
	}, []string{"method"})
	reg.MustRegister(duration, requests, failures)
	return &ProxyMetrics{
		duration: duration,
		requests: requests,
		failures: failures,
	}
}

// ObserveRequest records a completed round trip to the backend.
func (p *ProxyMetrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if p == nil || p.requests == nil {
		return
	}
	method = normalizeMethod(method)
	p.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// IncFailure counts a transport-level failure contacting the backend.
func (p *ProxyMetrics) IncFailure(method string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeMethod(method)).Inc()
}

func normalizeMethod(method string) string {
	if method == "" {
		return "unknown"
	}
	return method
}
