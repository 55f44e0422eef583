package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the orchestration core, exposed through the
// gateway's /metrics endpoint.
var (
	metricRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "groupscout",
		Name:      "runs_total",
		Help:      "Completed orchestration runs by outcome.",
	}, []string{"outcome"})

	metricContacts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "groupscout",
		Name:      "contacts_collected_total",
		Help:      "Contacts collected across all runs.",
	})

	metricGroupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "groupscout",
		Name:      "group_failures_total",
		Help:      "Groups that failed to resolve or collect.",
	})

	metricRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "groupscout",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of orchestration runs.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)
