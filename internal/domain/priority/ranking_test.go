package priority

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"fraud-investigation-system/internal/domain/alert"
)

func queueFixture() []alert.Snapshot {
	return []alert.Snapshot{
		{AccountID: "LOW", FraudProbability: 0.1, AnomalyScore: 0.2, RiskLevel: alert.RiskLevelLow},
		{AccountID: "HIGH-A", FraudProbability: 0.9, AnomalyScore: 0.3, RiskLevel: alert.RiskLevelHigh},
		{AccountID: "MED", FraudProbability: 0.4, AnomalyScore: 0.9, RiskLevel: alert.RiskLevelMedium},
		{AccountID: "HIGH-B", FraudProbability: 0.7, AnomalyScore: 0.95, RiskLevel: alert.RiskLevelHigh},
	}
}

func accountOrder(alerts []alert.Snapshot) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.AccountID
	}
	return out
}

func TestSortByRisk_HighFirst(t *testing.T) {
	alerts := queueFixture()
	SortByRisk(alerts, OrderHighFirst, OrderHighFirst)
	assert.Equal(t, []string{"HIGH-A", "HIGH-B", "MED", "LOW"}, accountOrder(alerts))
}

func TestSortByRisk_LowFirst(t *testing.T) {
	alerts := queueFixture()
	SortByRisk(alerts, OrderLowFirst, OrderHighFirst)
	assert.Equal(t, []string{"LOW", "MED", "HIGH-B", "HIGH-A"}, accountOrder(alerts))
}

func TestSortByRisk_AnomalyTiebreak(t *testing.T) {
	alerts := []alert.Snapshot{
		{AccountID: "A", FraudProbability: 0.8, AnomalyScore: 0.2, RiskLevel: alert.RiskLevelHigh},
		{AccountID: "B", FraudProbability: 0.8, AnomalyScore: 0.9, RiskLevel: alert.RiskLevelHigh},
	}
	SortByRisk(alerts, OrderHighFirst, OrderHighFirst)
	assert.Equal(t, []string{"B", "A"}, accountOrder(alerts))

	SortByRisk(alerts, OrderHighFirst, OrderLowFirst)
	assert.Equal(t, []string{"A", "B"}, accountOrder(alerts))
}

// outcomeStub keys confirmed counts by feature vector shape or risk level
type outcomeStub struct {
	counts map[string]int
}

func (o *outcomeStub) GetSimilarConfirmedCount(_ context.Context, rl alert.RiskLevel, vec []float64) int {
	if len(vec) > 0 {
		return o.counts[vectorKey(vec)]
	}
	return o.counts[string(rl)]
}

func (o *outcomeStub) GetSimilarFalsePositiveCount(context.Context, alert.RiskLevel, []float64) int {
	return 0
}

func vectorKey(vec []float64) string {
	if vec[0] == 1 {
		return "fraud-like"
	}
	return "other"
}

func TestSortOutcomeInformed(t *testing.T) {
	alerts := []alert.Snapshot{
		{AccountID: "NO-HISTORY", FraudProbability: 0.95, RiskLevel: alert.RiskLevelHigh, FeatureVector: []float64{0, 1}},
		{AccountID: "KNOWN-PATTERN", FraudProbability: 0.5, RiskLevel: alert.RiskLevelMedium, FeatureVector: []float64{1, 0}},
	}
	outcomes := &outcomeStub{counts: map[string]int{"fraud-like": 3}}

	SortOutcomeInformed(context.Background(), alerts, outcomes)
	assert.Equal(t, []string{"KNOWN-PATTERN", "NO-HISTORY"}, accountOrder(alerts))
}

func TestSortOutcomeInformed_ProbabilityTiebreak(t *testing.T) {
	alerts := []alert.Snapshot{
		{AccountID: "A", FraudProbability: 0.3, RiskLevel: alert.RiskLevelLow},
		{AccountID: "B", FraudProbability: 0.8, RiskLevel: alert.RiskLevelHigh},
	}
	SortOutcomeInformed(context.Background(), alerts, &outcomeStub{counts: map[string]int{}})
	assert.Equal(t, []string{"B", "A"}, accountOrder(alerts))
}
