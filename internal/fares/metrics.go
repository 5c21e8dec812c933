package fares

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fareEstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fare_estimates_total",
		Help: "Total fare estimates by service type and rule kind",
	}, []string{"service_type", "rule_kind"})

	fareEstimateFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fare_estimate_failures_total",
		Help: "Total failed fare estimates by service type and reason",
	}, []string{"service_type", "reason"})

	resolverFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_resolver_fallbacks_total",
		Help: "Rate resolutions that fell back past the exact rate meter match",
	}, []string{"service_type", "fallback"})
)
