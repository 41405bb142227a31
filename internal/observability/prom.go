package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "fplticker"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "upstream", "requests_total"),
		Help: "Upstream API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "upstream", "request_duration_seconds"),
		Help:    "Duration of upstream API requests in seconds, including retries",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"endpoint"})
	RankSource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "ticker", "rank_source_total"),
		Help: "Which standings source fed the rank adjustment",
	}, []string{"source"})
	ComputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "ticker", "compute_duration_seconds"),
		Help:    "Duration of ticker scoring in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)
