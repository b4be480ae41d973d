package priority

import (
	"context"
	"fmt"

	"fraud-investigation-system/internal/domain/alert"
)

// Auditable constants for the priority formula. These are fixed policy values;
// config validation rejects attempts to change them so scores stay comparable
// across deployments.
const (
	BoostPerConfirmed      = 0.05
	ReductionPerFP         = 0.05
	CapConfirmed           = 5
	CapFP                  = 5
	FalsePositiveThreshold = 2
	BaseFraudWeight        = 0.5
	BaseAnomalyWeight      = 0.5
)

// Explanation fragments shown to investigators and kept for audit
const (
	explanationNoAdjustment  = "No outcome-based adjustment."
	explanationDeprioritised = "De-prioritised due to historical false positives."
)

// OutcomeSource provides similarity counts against closed cases
type OutcomeSource interface {
	GetSimilarConfirmedCount(ctx context.Context, riskLevel alert.RiskLevel, featureVector []float64) int
	GetSimilarFalsePositiveCount(ctx context.Context, riskLevel alert.RiskLevel, featureVector []float64) int
}

// Adjustment is the outcome-adjusted priority for one alert
type Adjustment struct {
	Priority             float64 `json:"outcome_adjusted_priority"`
	Explanation          string  `json:"outcome_priority_explanation"`
	SimilarConfirmed     int     `json:"similar_confirmed_count"`
	SimilarFalsePositive int     `json:"similar_false_positive_count"`
}

// Engine turns base risk scores into a single ranking score that also
// reflects institutional memory. Pure computation: it never touches storage
// directly and has no error path, treating missing inputs permissively.
type Engine struct {
	outcomes OutcomeSource
}

// NewEngine creates a priority engine backed by the given outcome source
func NewEngine(outcomes OutcomeSource) *Engine {
	return &Engine{outcomes: outcomes}
}

// Compute returns the outcome-adjusted priority and its explanation.
//
//	base = 0.5*fraud_probability + 0.5*anomaly_score
//	boost = 0.05 * min(similar_confirmed, 5)   when similar_confirmed > 0
//	reduction = 0.05 * min(similar_fp, 5)       when similar_fp >= 2
//	priority = clamp(base + boost - reduction, 0, 1)
func (e *Engine) Compute(ctx context.Context, snap alert.Snapshot) Adjustment {
	riskLevel := snap.RiskLevel
	if riskLevel == "" {
		riskLevel = alert.RiskLevelLow
	}

	base := BaseFraudWeight*snap.FraudProbability + BaseAnomalyWeight*snap.AnomalyScore

	similarConfirmed := e.outcomes.GetSimilarConfirmedCount(ctx, riskLevel, snap.FeatureVector)
	similarFP := e.outcomes.GetSimilarFalsePositiveCount(ctx, riskLevel, snap.FeatureVector)

	boost := 0.0
	if similarConfirmed > 0 {
		boost = BoostPerConfirmed * float64(min(similarConfirmed, CapConfirmed))
	}

	reduction := 0.0
	if similarFP >= FalsePositiveThreshold {
		reduction = ReductionPerFP * float64(min(similarFP, CapFP))
	}

	score := base + boost - reduction
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return Adjustment{
		Priority:             score,
		Explanation:          buildExplanation(similarConfirmed, similarFP),
		SimilarConfirmed:     similarConfirmed,
		SimilarFalsePositive: similarFP,
	}
}

func buildExplanation(similarConfirmed, similarFP int) string {
	var parts []string
	if similarConfirmed > 0 {
		plural := "s"
		if similarConfirmed == 1 {
			plural = ""
		}
		parts = append(parts, fmt.Sprintf("Prioritised due to similarity with %d confirmed fraud case%s.", similarConfirmed, plural))
	}
	if similarFP >= FalsePositiveThreshold {
		parts = append(parts, explanationDeprioritised)
	}
	if len(parts) == 0 {
		return explanationNoAdjustment
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}
