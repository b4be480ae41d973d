package dto

import "fraud-investigation-system/internal/domain/alert"

// PriorityRequest carries an alert snapshot for priority computation. Missing
// scores default to zero; a missing feature vector triggers the risk-level
// bucket fallback.
type PriorityRequest struct {
	AccountID        string    `json:"account_id"`
	FraudProbability *float64  `json:"fraud_probability,omitempty"`
	AnomalyScore     *float64  `json:"anomaly_score,omitempty"`
	RiskLevel        string    `json:"risk_level,omitempty"`
	FeatureVector    []float64 `json:"feature_vector,omitempty"`
}

// ToSnapshot converts the request into a domain snapshot
func (r *PriorityRequest) ToSnapshot() alert.Snapshot {
	snap := alert.Snapshot{
		AccountID:     r.AccountID,
		RiskLevel:     alert.RiskLevel(r.RiskLevel),
		FeatureVector: r.FeatureVector,
	}
	if r.FraudProbability != nil {
		snap.FraudProbability = *r.FraudProbability
	}
	if r.AnomalyScore != nil {
		snap.AnomalyScore = *r.AnomalyScore
	}
	return snap
}
