package triage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fraud_investigation",
		Name:      "decisions_recorded_total",
		Help:      "Investigator decisions recorded, by decision kind.",
	}, []string{"decision"})

	patternsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fraud_investigation",
		Name:      "knowledge_patterns_captured_total",
		Help:      "Knowledge patterns attached to closed cases.",
	})

	priorityComputations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fraud_investigation",
		Name:      "priority_computations_total",
		Help:      "Outcome-adjusted priority computations performed.",
	})

	retrainExports = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fraud_investigation",
		Name:      "retrain_exports_total",
		Help:      "Training-data exports produced from investigator feedback.",
	})
)
