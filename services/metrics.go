package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry holds the service's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	pickupTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recycle_rewards",
			Subsystem: "pickups",
			Name:      "transitions_total",
			Help:      "Pickups that entered each lifecycle status.",
		},
		[]string{"status"},
	)

	pointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recycle_rewards",
			Subsystem: "points",
			Name:      "awarded_total",
			Help:      "Points credited to users, by source.",
		},
		[]string{"source"},
	)

	challengeCompletions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recycle_rewards",
			Subsystem: "challenges",
			Name:      "completions_total",
			Help:      "First-time challenge completions.",
		},
	)

	balanceMismatches = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recycle_rewards",
			Subsystem: "ledger",
			Name:      "balance_mismatches",
			Help:      "Users whose stored balance disagreed with the ledger on the last reconciliation run.",
		},
	)
)

func init() {
	Registry.MustRegister(
		pickupTransitions,
		pointsAwarded,
		challengeCompletions,
		balanceMismatches,
	)
}
