package alert

// RiskLevel represents the severity bucket shown to investigators
type RiskLevel string

const (
	RiskLevelHigh   RiskLevel = "High"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelLow    RiskLevel = "Low"
)

// Risk level thresholds on fraud probability
const (
	highRiskThreshold   = 0.6
	mediumRiskThreshold = 0.3
)

// RiskLevelFor maps a fraud probability to a risk bucket
func RiskLevelFor(fraudProbability float64) RiskLevel {
	switch {
	case fraudProbability >= highRiskThreshold:
		return RiskLevelHigh
	case fraudProbability >= mediumRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// IsValid reports whether the risk level is one of the known buckets
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelHigh, RiskLevelMedium, RiskLevelLow:
		return true
	}
	return false
}

// Order returns the sort rank for risk-descending ordering (High first)
func (r RiskLevel) Order() int {
	switch r {
	case RiskLevelHigh:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelLow:
		return 2
	}
	return 3
}

// Snapshot is a scored account record surfaced to an investigator.
// The engine is agnostic to where the scores came from; the classifier and
// anomaly detector are external collaborators.
type Snapshot struct {
	AccountID          string    `json:"account_id"`
	FraudProbability   float64   `json:"fraud_probability"`
	AnomalyScore       float64   `json:"anomaly_score"`
	RiskLevel          RiskLevel `json:"risk_level"`
	OneLineExplanation string    `json:"one_line_explanation,omitempty"`
	RiskFactors        []string  `json:"risk_factors,omitempty"`

	// FeatureVector, when present, follows the fixed 13-dimension schema in
	// FeatureNames. Absent for accounts with incomplete feature data.
	FeatureVector []float64 `json:"feature_vector,omitempty"`
}

// FeatureDimensions is the length of the standard risk feature vector
const FeatureDimensions = 13

// FeatureNames is the fixed, documented feature order shared with the
// retraining pipeline. Vectors stored for similarity matching and vectors
// supplied on alerts both follow this order.
var FeatureNames = []string{
	"declared_income_annual",
	"total_deposits_90d",
	"total_withdrawals_90d",
	"num_deposits_90d",
	"num_withdrawals_90d",
	"deposit_withdraw_cycle_days_avg",
	"vpn_usage_pct",
	"countries_accessed_count",
	"device_shared_count",
	"ip_shared_count",
	"account_age_days",
	"kyc_face_match_score",
	"deposits_vs_income_ratio",
}
