package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nassnews",
			Subsystem: "geo",
			Name:      "provider_requests_total",
			Help:      "Geo provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	providerDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nassnews",
			Subsystem: "geo",
			Name:      "provider_request_duration_seconds",
			Help:      "Geo provider call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nassnews",
			Subsystem: "geo",
			Name:      "cache_hits_total",
			Help:      "Geo cache lookups by result",
		},
		[]string{"result"},
	)
)
