package feedback

import (
	"time"

	"fraud-investigation-system/internal/domain/alert"
)

// Decision is the investigator's terminal call on a case
type Decision string

// Decision strings are persisted verbatim in the feedback log; they double as
// the audit vocabulary, so their spelling must not change.
const (
	DecisionConfirmedFraud Decision = "Confirmed Fraud"
	DecisionMarkedLegit    Decision = "Marked Legit"
	DecisionFalsePositive  Decision = "False Positive"

	// DecisionPatternOnly marks a degenerate record synthesized when a
	// knowledge pattern arrives for an account with no prior decision.
	DecisionPatternOnly Decision = "(pattern only)"
)

// IsValid reports whether the decision is one of the enumerated kinds
func (d Decision) IsValid() bool {
	switch d {
	case DecisionConfirmedFraud, DecisionMarkedLegit, DecisionFalsePositive, DecisionPatternOnly:
		return true
	}
	return false
}

// RetrainLabel returns the fixed ML label mapping for the decision and whether
// the decision participates in retraining at all.
// Policy invariant: Confirmed Fraud -> 1; Marked Legit, False Positive -> 0;
// everything else is excluded.
func (d Decision) RetrainLabel() (int, bool) {
	switch d {
	case DecisionConfirmedFraud:
		return 1, true
	case DecisionMarkedLegit, DecisionFalsePositive:
		return 0, true
	}
	return 0, false
}

// KnowledgePattern is a structured case summary captured after investigation
// and attached to the account's most recent decision.
type KnowledgePattern struct {
	KeySignals             []string `json:"key_signals,omitempty"`
	BehavioralPattern      string   `json:"behavioral_pattern,omitempty"`
	FinalOutcome           string   `json:"final_outcome,omitempty"`
	OneSentenceDescription string   `json:"one_sentence_description,omitempty"`
}

// Record is one investigator decision event. Records are append-only: once
// written, the only permitted mutation is attaching a KnowledgePattern to the
// most recently appended record for an account.
type Record struct {
	AccountID string   `json:"account_id"`
	Decision  Decision `json:"decision"`
	// Reason is required (non-empty) when Decision is False Positive; the
	// calling layer enforces this before the record reaches the store.
	Reason    string `json:"reason"`
	Timestamp string `json:"timestamp"`

	// Score snapshot at decision time, kept for audit; never recomputed.
	RiskLevel        *alert.RiskLevel `json:"risk_level"`
	FraudProbability *float64         `json:"fraud_probability"`
	AnomalyScore     *float64         `json:"anomaly_score"`

	InvestigatorID string `json:"investigator_id"`
	ModelVersion   string `json:"model_version"`

	// FeatureVector is stored only for Confirmed Fraud decisions that supplied
	// one; it forms the similarity corpus.
	FeatureVector []float64 `json:"feature_vector,omitempty"`

	KnowledgePattern *KnowledgePattern `json:"knowledge_pattern,omitempty"`
}

// NewRecord builds a record stamped with the current UTC time
func NewRecord(accountID string, decision Decision) Record {
	return Record{
		AccountID: accountID,
		Decision:  decision,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
