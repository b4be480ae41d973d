package jsonlog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-investigation-system/internal/domain/feedback"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "feedback_log.json"))
}

func TestAll_MissingFileReadsEmpty(t *testing.T) {
	store := newTempStore(t)
	records, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAll_CorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedback_log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := New(path)
	records, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	store := newTempStore(t)
	ctx := context.Background()

	for _, id := range []string{"ACC-1", "ACC-2", "ACC-3"} {
		rec := feedback.NewRecord(id, feedback.DecisionMarkedLegit)
		require.NoError(t, store.Append(ctx, rec))
	}

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ACC-1", records[0].AccountID)
	assert.Equal(t, "ACC-2", records[1].AccountID)
	assert.Equal(t, "ACC-3", records[2].AccountID)
}

func TestAppend_WritesJSONArrayOnDisk(t *testing.T) {
	store := newTempStore(t)
	ctx := context.Background()

	rec := feedback.NewRecord("ACC-1", feedback.DecisionConfirmedFraud)
	rec.Reason = "layered transfers"
	rec.FeatureVector = []float64{1, 0, 0}
	require.NoError(t, store.Append(ctx, rec))

	data, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "ACC-1", raw[0]["account_id"])
	assert.Equal(t, "Confirmed Fraud", raw[0]["decision"])
	assert.Contains(t, raw[0], "feature_vector")
}

func TestAttachPattern_LatestRecordForAccount(t *testing.T) {
	store := newTempStore(t)
	ctx := context.Background()

	first := feedback.NewRecord("ACC-1", feedback.DecisionConfirmedFraud)
	second := feedback.NewRecord("ACC-1", feedback.DecisionConfirmedFraud)
	other := feedback.NewRecord("ACC-2", feedback.DecisionMarkedLegit)
	require.NoError(t, store.Append(ctx, first))
	require.NoError(t, store.Append(ctx, second))
	require.NoError(t, store.Append(ctx, other))

	pattern := feedback.KnowledgePattern{
		KeySignals:   []string{"new device", "rapid withdrawals"},
		FinalOutcome: "confirmed",
	}
	require.NoError(t, store.AttachPattern(ctx, "ACC-1", pattern))

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Nil(t, records[0].KnowledgePattern)
	require.NotNil(t, records[1].KnowledgePattern)
	assert.Equal(t, []string{"new device", "rapid withdrawals"}, records[1].KnowledgePattern.KeySignals)
	assert.Nil(t, records[2].KnowledgePattern)
}

func TestAttachPattern_UnknownAccount(t *testing.T) {
	store := newTempStore(t)
	err := store.AttachPattern(context.Background(), "ACC-9", feedback.KnowledgePattern{})
	assert.ErrorIs(t, err, feedback.ErrNoDecisionForAccount)
}

func TestRoundTrip_OptionalFieldsSurvive(t *testing.T) {
	store := newTempStore(t)
	ctx := context.Background()

	prob := 0.91
	rec := feedback.NewRecord("ACC-1", feedback.DecisionFalsePositive)
	rec.Reason = "known business account"
	rec.FraudProbability = &prob
	require.NoError(t, store.Append(ctx, rec))

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].FraudProbability)
	assert.Equal(t, 0.91, *records[0].FraudProbability)
	assert.Nil(t, records[0].RiskLevel)
	assert.Nil(t, records[0].AnomalyScore)
}
