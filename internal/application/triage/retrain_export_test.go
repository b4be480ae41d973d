package triage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraud-investigation-system/internal/domain/feedback"
	"fraud-investigation-system/internal/infrastructure/storage/jsonlog"
)

func newRetrainFixture(t *testing.T, featuresCSV string) (*RetrainExportUseCase, *feedback.Service, string) {
	t.Helper()
	dir := t.TempDir()
	store := jsonlog.New(filepath.Join(dir, "feedback_log.json"))
	svc := feedback.NewService(store, "demo", "v0.3")

	featuresPath := filepath.Join(dir, "anomaly_scores.csv")
	if featuresCSV != "" {
		require.NoError(t, os.WriteFile(featuresPath, []byte(featuresCSV), 0o644))
	}
	outputPath := filepath.Join(dir, "out", "training_data.csv")
	return NewRetrainExportUseCase(svc, featuresPath, outputPath), svc, outputPath
}

func submitDecisions(t *testing.T, svc *feedback.Service, decisions map[string]feedback.Decision) {
	t.Helper()
	for account, d := range decisions {
		in := feedback.AppendDecisionInput{AccountID: account, Decision: d}
		if d == feedback.DecisionFalsePositive {
			in.Reason = "cleared on review"
		}
		_, err := svc.AppendDecision(context.Background(), in)
		require.NoError(t, err)
	}
}

func TestRetrainExport_EmptyFeedbackIsValidEmptyExport(t *testing.T) {
	uc, _, outputPath := newRetrainFixture(t, "")

	export, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, export.Rows)
	assert.False(t, export.EnoughForRetrain)
	assert.NoFileExists(t, outputPath)
}

func TestRetrainExport_JoinsLabelsWithFeatures(t *testing.T) {
	featuresCSV := strings.Join([]string{
		"account_id,vpn_usage_pct,device_shared_count",
		"ACC-1,80,3",
		"ACC-2,5,0",
		"ACC-3,40,1",
	}, "\n") + "\n"
	uc, svc, outputPath := newRetrainFixture(t, featuresCSV)

	submitDecisions(t, svc, map[string]feedback.Decision{
		"ACC-1": feedback.DecisionConfirmedFraud,
		"ACC-2": feedback.DecisionMarkedLegit,
	})

	export, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, export.Rows)
	assert.Empty(t, export.MissingAccounts)
	assert.False(t, export.EnoughForRetrain)
	assert.NotEmpty(t, export.ExportID)

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"account_id", "is_fraud", "vpn_usage_pct", "device_shared_count"}, rows[0])

	labels := map[string]string{}
	for _, row := range rows[1:] {
		labels[row[0]] = row[1]
	}
	assert.Equal(t, "1", labels["ACC-1"])
	assert.Equal(t, "0", labels["ACC-2"])
}

func TestRetrainExport_LatestLabelPerAccount(t *testing.T) {
	featuresCSV := "account_id,vpn_usage_pct\nACC-1,80\n"
	uc, svc, outputPath := newRetrainFixture(t, featuresCSV)
	ctx := context.Background()

	_, err := svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "ACC-1", Decision: feedback.DecisionConfirmedFraud})
	require.NoError(t, err)
	_, err = svc.AppendDecision(ctx, feedback.AppendDecisionInput{AccountID: "ACC-1", Decision: feedback.DecisionMarkedLegit})
	require.NoError(t, err)

	export, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, export.Rows)
	// Both decisions show up as samples; the export row carries the later label
	assert.Len(t, export.Samples, 2)

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[1][1])
}

func TestRetrainExport_ReportsMissingAccountsAndFeatures(t *testing.T) {
	featuresCSV := "account_id,vpn_usage_pct\nACC-1,80\n"
	uc, svc, _ := newRetrainFixture(t, featuresCSV)

	submitDecisions(t, svc, map[string]feedback.Decision{
		"ACC-1":       feedback.DecisionConfirmedFraud,
		"ACC-UNKNOWN": feedback.DecisionMarkedLegit,
	})

	export, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, export.Rows)
	assert.Equal(t, []string{"ACC-UNKNOWN"}, export.MissingAccounts)
	assert.Contains(t, export.MissingFeatures, "kyc_face_match_score")
	assert.NotContains(t, export.MissingFeatures, "vpn_usage_pct")
}

func TestRetrainExport_SkipsShortRows(t *testing.T) {
	featuresCSV := strings.Join([]string{
		"account_id,vpn_usage_pct,device_shared_count",
		"ACC-1",
		"ACC-2,5,0",
		"ACC-3,40",
	}, "\n") + "\n"
	uc, svc, outputPath := newRetrainFixture(t, featuresCSV)

	submitDecisions(t, svc, map[string]feedback.Decision{
		"ACC-1": feedback.DecisionConfirmedFraud,
		"ACC-2": feedback.DecisionMarkedLegit,
		"ACC-3": feedback.DecisionConfirmedFraud,
	})

	export, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, export.Rows)
	assert.ElementsMatch(t, []string{"ACC-1", "ACC-3"}, export.MissingAccounts)

	f, err := os.Open(outputPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ACC-2", rows[1][0])
}

func TestRetrainExport_MissingFeaturesCSVFails(t *testing.T) {
	uc, svc, _ := newRetrainFixture(t, "")
	submitDecisions(t, svc, map[string]feedback.Decision{
		"ACC-1": feedback.DecisionConfirmedFraud,
	})

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestRetrainExport_EnoughForRetrainAtTen(t *testing.T) {
	var featureRows []string
	decisions := map[string]feedback.Decision{}
	featureRows = append(featureRows, "account_id,vpn_usage_pct")
	for i := 0; i < 10; i++ {
		account := "ACC-" + strings.Repeat("0", 2) + string(rune('A'+i))
		featureRows = append(featureRows, account+",50")
		decisions[account] = feedback.DecisionConfirmedFraud
	}
	uc, svc, _ := newRetrainFixture(t, strings.Join(featureRows, "\n")+"\n")
	submitDecisions(t, svc, decisions)

	export, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, export.Rows)
	assert.True(t, export.EnoughForRetrain)
}
