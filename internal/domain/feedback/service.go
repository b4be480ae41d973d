package feedback

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"fraud-investigation-system/internal/domain/alert"
)

// Service wraps the decision log with validation, defaults, and the
// similarity queries used by the priority engine. All read paths are
// fail-open: a missing or unreadable store yields an empty corpus so the
// feedback loop never blocks an investigator.
type Service struct {
	store Store

	defaultInvestigatorID string
	defaultModelVersion   string
}

// NewService creates a feedback service
func NewService(store Store, defaultInvestigatorID, defaultModelVersion string) *Service {
	return &Service{
		store:                 store,
		defaultInvestigatorID: defaultInvestigatorID,
		defaultModelVersion:   defaultModelVersion,
	}
}

// AppendDecisionInput carries one investigator decision
type AppendDecisionInput struct {
	AccountID        string
	Decision         Decision
	Reason           string
	RiskLevel        *alert.RiskLevel
	FraudProbability *float64
	AnomalyScore     *float64
	FeatureVector    []float64
	InvestigatorID   string
	ModelVersion     string
}

// AppendDecision validates and appends one decision record with the current
// UTC timestamp. The feature vector is stored only when the decision is
// Confirmed Fraud and a non-empty vector was supplied.
func (s *Service) AppendDecision(ctx context.Context, in AppendDecisionInput) (Record, error) {
	if in.AccountID == "" {
		return Record{}, ErrAccountIDRequired
	}
	if !in.Decision.IsValid() {
		return Record{}, ErrInvalidDecision
	}
	reason := strings.TrimSpace(in.Reason)
	if in.Decision == DecisionFalsePositive && reason == "" {
		return Record{}, ErrReasonRequired
	}

	investigator := in.InvestigatorID
	if investigator == "" {
		investigator = s.defaultInvestigatorID
	}
	modelVersion := in.ModelVersion
	if modelVersion == "" {
		modelVersion = s.defaultModelVersion
	}

	rec := Record{
		AccountID:        in.AccountID,
		Decision:         in.Decision,
		Reason:           reason,
		Timestamp:        time.Now().UTC().Format(time.RFC3339Nano),
		RiskLevel:        in.RiskLevel,
		FraudProbability: in.FraudProbability,
		AnomalyScore:     in.AnomalyScore,
		InvestigatorID:   investigator,
		ModelVersion:     modelVersion,
	}
	if in.Decision == DecisionConfirmedFraud && len(in.FeatureVector) > 0 {
		rec.FeatureVector = in.FeatureVector
	}

	if err := s.store.Append(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// AttachKnowledgePattern attaches a captured pattern to the most recent
// decision for the account. When the account has no decision yet, a minimal
// pattern-only record is appended instead so the pattern is never dropped.
func (s *Service) AttachKnowledgePattern(ctx context.Context, accountID string, pattern KnowledgePattern) error {
	if accountID == "" {
		return ErrAccountIDRequired
	}
	err := s.store.AttachPattern(ctx, accountID, pattern)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNoDecisionForAccount) {
		return err
	}
	rec := NewRecord(accountID, DecisionPatternOnly)
	rec.KnowledgePattern = &pattern
	return s.store.Append(ctx, rec)
}

// GetDecisions returns all records in insertion order, optionally filtered by
// account. Store read failures degrade to an empty result.
func (s *Service) GetDecisions(ctx context.Context, accountID string) []Record {
	records := s.load(ctx)
	if accountID == "" {
		return records
	}
	var out []Record
	for _, r := range records {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out
}

// GetLatestDecision returns the record with the maximum timestamp for the
// account, or false when none exists.
func (s *Service) GetLatestDecision(ctx context.Context, accountID string) (Record, bool) {
	decisions := s.GetDecisions(ctx, accountID)
	if len(decisions) == 0 {
		return Record{}, false
	}
	latest := decisions[0]
	for _, r := range decisions[1:] {
		if r.Timestamp > latest.Timestamp {
			latest = r
		}
	}
	return latest, true
}

// GetConfirmedFraudCount returns the total number of Confirmed Fraud decisions
func (s *Service) GetConfirmedFraudCount(ctx context.Context) int {
	return len(filterByDecision(s.load(ctx), DecisionConfirmedFraud))
}

// HasFalsePositiveHistory reports whether any case was dismissed as a false
// positive; the dashboard uses it to suggest auto-resolve.
func (s *Service) HasFalsePositiveHistory(ctx context.Context) bool {
	return len(filterByDecision(s.load(ctx), DecisionFalsePositive)) > 0
}

// GetSimilarConfirmedCount counts previously confirmed fraud cases similar to
// the query, using cosine similarity when vectors are available and the
// risk-level bucket otherwise.
func (s *Service) GetSimilarConfirmedCount(ctx context.Context, riskLevel alert.RiskLevel, featureVector []float64) int {
	corpus := filterByDecision(s.load(ctx), DecisionConfirmedFraud)
	return countSimilar(corpus, riskLevel, featureVector, SimilarityThreshold)
}

// GetSimilarFalsePositiveCount counts dismissed false positives similar to the
// query, with the same two-tier fallback as the confirmed-fraud count.
func (s *Service) GetSimilarFalsePositiveCount(ctx context.Context, riskLevel alert.RiskLevel, featureVector []float64) int {
	corpus := filterByDecision(s.load(ctx), DecisionFalsePositive)
	return countSimilar(corpus, riskLevel, featureVector, SimilarityThreshold)
}

// RetrainSample is one labeled decision exported to the retraining pipeline
type RetrainSample struct {
	AccountID        string           `json:"account_id"`
	Label            int              `json:"label"`
	Reason           string           `json:"reason"`
	Timestamp        string           `json:"timestamp"`
	RiskLevel        *alert.RiskLevel `json:"risk_level"`
	FraudProbability *float64         `json:"fraud_probability"`
	AnomalyScore     *float64         `json:"anomaly_score"`
}

// GetFeedbackForRetrain maps decisions to binary labels for model retraining.
// This is the only place decisions become ML labels.
func (s *Service) GetFeedbackForRetrain(ctx context.Context) []RetrainSample {
	var out []RetrainSample
	for _, r := range s.load(ctx) {
		label, ok := r.Decision.RetrainLabel()
		if !ok {
			continue
		}
		out = append(out, RetrainSample{
			AccountID:        r.AccountID,
			Label:            label,
			Reason:           r.Reason,
			Timestamp:        r.Timestamp,
			RiskLevel:        r.RiskLevel,
			FraudProbability: r.FraudProbability,
			AnomalyScore:     r.AnomalyScore,
		})
	}
	return out
}

func (s *Service) load(ctx context.Context) []Record {
	records, err := s.store.All(ctx)
	if err != nil {
		// Fail-open by policy: an unreadable feedback log must never block
		// the alert queue or a new decision.
		log.Printf("feedback: store read failed, treating as empty corpus: %v", err)
		return nil
	}
	return records
}
