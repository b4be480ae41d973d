package triage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/feedback"
)

// minRetrainSamples is the smallest labeled set considered worth retraining on
const minRetrainSamples = 10

// RetrainExport summarizes one training-data export run
type RetrainExport struct {
	ExportID         string                   `json:"export_id"`
	Rows             int                      `json:"rows"`
	OutputPath       string                   `json:"output_path"`
	MissingAccounts  []string                 `json:"missing_accounts,omitempty"`
	MissingFeatures  []string                 `json:"missing_features,omitempty"`
	EnoughForRetrain bool                     `json:"enough_for_retrain"`
	Samples          []feedback.RetrainSample `json:"samples"`
}

// RetrainExportUseCase joins investigator feedback with the scored-features
// CSV and writes a labeled training dataset for the external retraining
// pipeline. One row per account using the latest label.
type RetrainExportUseCase struct {
	feedbackService *feedback.Service
	featuresCSVPath string
	outputPath      string
}

// NewRetrainExportUseCase creates the use case
func NewRetrainExportUseCase(feedbackService *feedback.Service, featuresCSVPath, outputPath string) *RetrainExportUseCase {
	return &RetrainExportUseCase{
		feedbackService: feedbackService,
		featuresCSVPath: featuresCSVPath,
		outputPath:      outputPath,
	}
}

// Execute builds and writes the training dataset. Returns an error only when
// there is feedback to export but the features CSV cannot be read or the
// output cannot be written; no feedback at all is a valid empty export.
func (uc *RetrainExportUseCase) Execute(ctx context.Context) (RetrainExport, error) {
	export := RetrainExport{ExportID: uuid.NewString()}

	samples := uc.feedbackService.GetFeedbackForRetrain(ctx)
	export.Samples = samples
	if len(samples) == 0 {
		return export, nil
	}

	// Latest label wins per account; samples arrive in insertion order.
	labelByAccount := make(map[string]int, len(samples))
	var accountOrder []string
	for _, s := range samples {
		if _, seen := labelByAccount[s.AccountID]; !seen {
			accountOrder = append(accountOrder, s.AccountID)
		}
		labelByAccount[s.AccountID] = s.Label
	}

	header, rows, err := uc.readFeatures()
	if err != nil {
		return export, err
	}

	present := make(map[string]bool, len(rows))
	var outRows [][]string
	featureCols, missingFeatures := availableFeatureColumns(header)
	export.MissingFeatures = missingFeatures

	accountIdx := header["account_id"]
	for _, row := range rows {
		// FieldsPerRecord is relaxed, so rows can be shorter than the header;
		// a row missing any needed column is skipped, not fatal.
		if accountIdx >= len(row) {
			continue
		}
		accountID := row[accountIdx]
		label, ok := labelByAccount[accountID]
		if !ok {
			continue
		}
		out := []string{accountID, strconv.Itoa(label)}
		complete := true
		for _, col := range featureCols {
			idx := header[col]
			if idx >= len(row) {
				complete = false
				break
			}
			out = append(out, row[idx])
		}
		if !complete {
			continue
		}
		present[accountID] = true
		outRows = append(outRows, out)
	}

	for _, accountID := range accountOrder {
		if !present[accountID] {
			export.MissingAccounts = append(export.MissingAccounts, accountID)
		}
	}

	if err := uc.writeTrainingData(featureCols, outRows); err != nil {
		return export, err
	}

	export.Rows = len(outRows)
	export.OutputPath = uc.outputPath
	export.EnoughForRetrain = len(outRows) >= minRetrainSamples
	retrainExports.Inc()
	return export, nil
}

func (uc *RetrainExportUseCase) readFeatures() (map[string]int, [][]string, error) {
	f, err := os.Open(uc.featuresCSVPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open features csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) < 1 {
		return nil, nil, fmt.Errorf("failed to read features csv: %w", err)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	if _, ok := header["account_id"]; !ok {
		return nil, nil, fmt.Errorf("features csv is missing the account_id column")
	}
	return header, records[1:], nil
}

func (uc *RetrainExportUseCase) writeTrainingData(featureCols []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(uc.outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create training data dir: %w", err)
	}
	f, err := os.Create(uc.outputPath)
	if err != nil {
		return fmt.Errorf("failed to create training data file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := append([]string{"account_id", "is_fraud"}, featureCols...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write training data header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write training data row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// availableFeatureColumns returns the standard feature columns present in the
// CSV header, preserving the fixed feature order, plus the missing ones.
func availableFeatureColumns(header map[string]int) (present, missing []string) {
	for _, name := range alert.FeatureNames {
		if _, ok := header[name]; ok {
			present = append(present, name)
		} else {
			missing = append(missing, name)
		}
	}
	return present, missing
}
