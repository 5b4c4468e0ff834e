package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "compliance",
		Name:      "operation_duration_seconds",
		Help:      "Wall-clock latency of coordinator operations.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"operation", "outcome"})

	operationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "compliance",
		Name:      "operation_failures_total",
		Help:      "Failed coordinator operations by failing step.",
	}, []string{"operation", "step"})
)
