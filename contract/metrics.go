// SPDX-License-Identifier: MIT
package contract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "hypercore"
	metricsSubsystem = "contract"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_lookups_total",
			Help:      "Total number of graph cache lookups made by query_farm_status, by outcome",
		},
		[]string{"outcome"}, // hit, miss
	)

	cacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "cache_evictions_total",
			Help:      "Total number of explicit graph cache evictions",
		},
	)

	entryPointDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "entry_point_duration_seconds",
			Help:      "Time taken by each contract entry point",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	anomaliesRaisedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "anomalies_raised_total",
			Help:      "Total number of anomaly alerts raised per layer and severity",
		},
		[]string{"layer", "severity"},
	)

	trainingOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "yield_training_outcomes_total",
			Help:      "Total number of train_yield_residual calls by status",
		},
		[]string{"status"},
	)
)

func observeEntryPoint(operation string) func() {
	timer := prometheus.NewTimer(entryPointDuration.WithLabelValues(operation))
	return func() { timer.ObserveDuration() }
}
