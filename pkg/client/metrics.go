package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricPrefix = "ssm_client_"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricPrefix + "requests_total",
			Help: "Requests sent to the SSM web server",
		},
		[]string{"method", "endpoint", "code"})

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricPrefix + "request_duration_seconds",
			Help:    "Latency of requests sent to the SSM web server in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"method", "endpoint"})
)
