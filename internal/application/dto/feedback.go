package dto

import (
	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/feedback"
)

// SubmitDecisionRequest is the payload for recording an investigator decision
type SubmitDecisionRequest struct {
	AccountID        string    `json:"account_id"`
	Decision         string    `json:"decision"`
	Reason           string    `json:"reason"`
	RiskLevel        *string   `json:"risk_level,omitempty"`
	FraudProbability *float64  `json:"fraud_probability,omitempty"`
	AnomalyScore     *float64  `json:"anomaly_score,omitempty"`
	FeatureVector    []float64 `json:"feature_vector,omitempty"`
	InvestigatorID   string    `json:"investigator_id,omitempty"`
	ModelVersion     string    `json:"model_version,omitempty"`
}

// ToInput converts the request into the domain input
func (r *SubmitDecisionRequest) ToInput() feedback.AppendDecisionInput {
	in := feedback.AppendDecisionInput{
		AccountID:        r.AccountID,
		Decision:         feedback.Decision(r.Decision),
		Reason:           r.Reason,
		FraudProbability: r.FraudProbability,
		AnomalyScore:     r.AnomalyScore,
		FeatureVector:    r.FeatureVector,
		InvestigatorID:   r.InvestigatorID,
		ModelVersion:     r.ModelVersion,
	}
	if r.RiskLevel != nil {
		level := alert.RiskLevel(*r.RiskLevel)
		in.RiskLevel = &level
	}
	return in
}

// AttachPatternRequest is the payload for capturing a knowledge pattern
type AttachPatternRequest struct {
	KeySignals             []string `json:"key_signals,omitempty"`
	BehavioralPattern      string   `json:"behavioral_pattern,omitempty"`
	FinalOutcome           string   `json:"final_outcome,omitempty"`
	OneSentenceDescription string   `json:"one_sentence_description,omitempty"`
}

// ToPattern converts the request into the domain pattern
func (r *AttachPatternRequest) ToPattern() feedback.KnowledgePattern {
	return feedback.KnowledgePattern{
		KeySignals:             r.KeySignals,
		BehavioralPattern:      r.BehavioralPattern,
		FinalOutcome:           r.FinalOutcome,
		OneSentenceDescription: r.OneSentenceDescription,
	}
}

// DecisionListResponse wraps the decision log for the audit view
type DecisionListResponse struct {
	Decisions []feedback.Record `json:"decisions"`
	Count     int               `json:"count"`
}
