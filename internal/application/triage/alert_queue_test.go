package triage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/domain/priority"
	"fraud-investigation-system/internal/infrastructure/storage/jsonlog"
)

// staticSource serves a fixed set of snapshots
type staticSource struct {
	snapshots []alert.Snapshot
}

func (s staticSource) Load(_ context.Context, limit int) []alert.Snapshot {
	out := make([]alert.Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func newQueueFixture(t *testing.T, snapshots []alert.Snapshot) (*AlertQueueUseCase, *feedback.Service) {
	t.Helper()
	store := jsonlog.New(filepath.Join(t.TempDir(), "feedback_log.json"))
	svc := feedback.NewService(store, "demo", "v0.3")
	engine := priority.NewEngine(svc)
	uc := NewAlertQueueUseCase(staticSource{snapshots}, svc, engine, 50)
	return uc, svc
}

func queueAccounts(alerts []QueuedAlert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.AccountID
	}
	return out
}

func TestAlertQueue_PartitionsByLatestDecision(t *testing.T) {
	snapshots := []alert.Snapshot{
		{AccountID: "OPEN", FraudProbability: 0.7, RiskLevel: alert.RiskLevelHigh},
		{AccountID: "FRAUD", FraudProbability: 0.8, RiskLevel: alert.RiskLevelHigh},
		{AccountID: "LEGIT", FraudProbability: 0.4, RiskLevel: alert.RiskLevelMedium},
		{AccountID: "FP", FraudProbability: 0.5, RiskLevel: alert.RiskLevelMedium},
	}
	uc, svc := newQueueFixture(t, snapshots)
	ctx := context.Background()

	_, err := svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "FRAUD", Decision: feedback.DecisionConfirmedFraud})
	require.NoError(t, err)
	_, err = svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "LEGIT", Decision: feedback.DecisionMarkedLegit})
	require.NoError(t, err)
	_, err = svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "FP", Decision: feedback.DecisionFalsePositive, Reason: "verified"})
	require.NoError(t, err)

	queue := uc.Execute(ctx, SortModeRisk)
	assert.Equal(t, []string{"OPEN"}, queueAccounts(queue.Alerts))
	assert.Equal(t, []string{"FRAUD"}, queueAccounts(queue.VerifiedFraud))
	assert.Equal(t, []string{"LEGIT"}, queueAccounts(queue.Legit))
	assert.Equal(t, []string{"FP"}, queueAccounts(queue.FalsePositives))
}

func TestAlertQueue_LatestDecisionWins(t *testing.T) {
	snapshots := []alert.Snapshot{
		{AccountID: "ACC-1", FraudProbability: 0.7, RiskLevel: alert.RiskLevelHigh},
	}
	uc, svc := newQueueFixture(t, snapshots)
	ctx := context.Background()

	_, err := svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "ACC-1", Decision: feedback.DecisionConfirmedFraud})
	require.NoError(t, err)
	_, err = svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "ACC-1", Decision: feedback.DecisionFalsePositive, Reason: "recheck cleared it"})
	require.NoError(t, err)

	queue := uc.Execute(ctx, SortModeRisk)
	assert.Empty(t, queue.VerifiedFraud)
	assert.Equal(t, []string{"ACC-1"}, queueAccounts(queue.FalsePositives))
}

func TestAlertQueue_SortModeAnomaly(t *testing.T) {
	snapshots := []alert.Snapshot{
		{AccountID: "A", FraudProbability: 0.9, AnomalyScore: 0.2, RiskLevel: alert.RiskLevelHigh},
		{AccountID: "B", FraudProbability: 0.3, AnomalyScore: 0.95, RiskLevel: alert.RiskLevelMedium},
	}
	uc, _ := newQueueFixture(t, snapshots)

	queue := uc.Execute(context.Background(), SortModeAnomaly)
	assert.Equal(t, []string{"B", "A"}, queueAccounts(queue.Alerts))
}

func TestAlertQueue_SortModeOutcomeInformed(t *testing.T) {
	vec := []float64{1, 0, 0}
	snapshots := []alert.Snapshot{
		{AccountID: "NO-HISTORY", FraudProbability: 0.95, RiskLevel: alert.RiskLevelHigh, FeatureVector: []float64{0, 1, 0}},
		{AccountID: "KNOWN", FraudProbability: 0.5, RiskLevel: alert.RiskLevelMedium, FeatureVector: vec},
	}
	uc, svc := newQueueFixture(t, snapshots)
	ctx := context.Background()

	_, err := svc.AppendDecision(ctx, feedback.AppendDecisionInput{
		AccountID:     "CLOSED-1",
		Decision:      feedback.DecisionConfirmedFraud,
		FeatureVector: vec,
	})
	require.NoError(t, err)

	queue := uc.Execute(ctx, SortModeOutcomeInformed)
	require.Len(t, queue.Alerts, 2)
	assert.Equal(t, "KNOWN", queue.Alerts[0].AccountID)
	assert.Equal(t, 1, queue.Alerts[0].Priority.SimilarConfirmed)
}

func TestAlertQueue_AttachesPriority(t *testing.T) {
	snapshots := []alert.Snapshot{
		{AccountID: "ACC-1", FraudProbability: 0.8, AnomalyScore: 0.8, RiskLevel: alert.RiskLevelHigh},
	}
	uc, _ := newQueueFixture(t, snapshots)

	queue := uc.Execute(context.Background(), SortModeRisk)
	require.Len(t, queue.Alerts, 1)
	assert.InDelta(t, 0.8, queue.Alerts[0].Priority.Priority, 1e-9)
	assert.Equal(t, "No outcome-based adjustment.", queue.Alerts[0].Priority.Explanation)
}

func TestComputePriority_UsesFeedbackHistory(t *testing.T) {
	uc, svc := newQueueFixture(t, nil)
	ctx := context.Background()
	vec := []float64{1, 0, 0}

	_, err := svc.AppendDecision(ctx, feedback.AppendDecisionInput{
		AccountID:     "CLOSED-1",
		Decision:      feedback.DecisionConfirmedFraud,
		FeatureVector: vec,
	})
	require.NoError(t, err)

	adj := uc.ComputePriority(ctx, alert.Snapshot{
		AccountID:        "ACC-1",
		FraudProbability: 0.5,
		AnomalyScore:     0.5,
		RiskLevel:        alert.RiskLevelHigh,
		FeatureVector:    vec,
	})
	assert.InDelta(t, 0.55, adj.Priority, 1e-9)
	assert.Equal(t, "Prioritised due to similarity with 1 confirmed fraud case.", adj.Explanation)
}
