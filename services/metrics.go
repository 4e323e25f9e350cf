package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	strategyResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coach_portal",
			Name:      "strategy_resolved_total",
			Help:      "Lookups resolved by a store query strategy.",
		},
		[]string{"domain", "strategy"},
	)

	fallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coach_portal",
			Name:      "fallback_total",
			Help:      "Lookups answered from mock data instead of the store.",
		},
		[]string{"domain", "reason"},
	)
)

// fallback reasons
const (
	reasonUnconfigured = "unconfigured"
	reasonEmpty        = "empty"
	reasonFailed       = "failed"
)
