// Package alerts loads the scored alert queue from the anomaly-scores CSV
// produced by the upstream scoring pipeline, falling back to deterministic
// mock alerts when the file is missing or unreadable. The queue is only a
// consumer of scores; it never recomputes them.
package alerts

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"fraud-investigation-system/internal/domain/alert"
	"fraud-investigation-system/internal/domain/priority"
)

// Monetary columns are parsed through decimal before entering the float
// feature vector, matching how amounts are handled upstream.
var monetaryColumns = map[string]bool{
	"declared_income_annual": true,
	"total_deposits_90d":     true,
	"total_withdrawals_90d":  true,
}

// Source produces alert snapshots for the investigation queue
type Source struct {
	csvPath string
}

// NewSource creates an alert source reading from the given CSV path
func NewSource(csvPath string) *Source {
	return &Source{csvPath: csvPath}
}

// Load returns up to limit alerts sorted by risk descending (High first, then
// by fraud probability). Any read or parse failure degrades to mock data so
// the queue always renders.
func (s *Source) Load(ctx context.Context, limit int) []alert.Snapshot {
	if limit <= 0 {
		limit = 50
	}
	snapshots, ok := s.loadCSV(limit)
	if !ok {
		snapshots = MockAlerts()
	}
	priority.SortByRisk(snapshots, priority.OrderHighFirst, priority.OrderHighFirst)
	if len(snapshots) > limit {
		snapshots = snapshots[:limit]
	}
	return snapshots
}

func (s *Source) loadCSV(limit int) ([]alert.Snapshot, bool) {
	f, err := os.Open(s.csvPath)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil, false
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[name] = i
	}
	if _, ok := header["account_id"]; !ok {
		return nil, false
	}
	if _, ok := header["fraud_probability"]; !ok {
		return nil, false
	}

	// Read a little beyond the limit so sorting happens over a wider pool,
	// then trim after the sort.
	maxRows := limit * 2
	var snapshots []alert.Snapshot
	for _, row := range rows[1:] {
		if len(snapshots) >= maxRows {
			break
		}
		fields := rowFields(header, row)
		prob := fields.float("fraud_probability")
		snap := alert.Snapshot{
			AccountID:        fields.str("account_id"),
			FraudProbability: prob,
			AnomalyScore:     fields.float("anomaly_score"),
			RiskLevel:        alert.RiskLevelFor(prob),
		}
		if snap.AccountID == "" {
			continue
		}
		snap.OneLineExplanation = oneLineExplanation(fields)
		snap.RiskFactors = riskFactors(fields)
		snap.FeatureVector = featureVector(fields)
		snapshots = append(snapshots, snap)
	}
	if len(snapshots) == 0 {
		return nil, false
	}
	return snapshots, true
}

// featureVector extracts the 13 standard risk features in fixed order.
// Returns nil when any feature column is absent; partial vectors would break
// similarity dimensionality.
func featureVector(fields rowReader) []float64 {
	vector := make([]float64, 0, alert.FeatureDimensions)
	for _, name := range alert.FeatureNames {
		if !fields.has(name) {
			return nil
		}
		if monetaryColumns[name] {
			amount, err := decimal.NewFromString(fields.str(name))
			if err != nil {
				return nil
			}
			vector = append(vector, amount.InexactFloat64())
			continue
		}
		vector = append(vector, fields.float(name))
	}
	return vector
}

// rowReader gives typed access to one CSV row by column name
type rowReader struct {
	header map[string]int
	row    []string
}

func rowFields(header map[string]int, row []string) rowReader {
	return rowReader{header: header, row: row}
}

func (r rowReader) has(name string) bool {
	idx, ok := r.header[name]
	return ok && idx < len(r.row)
}

func (r rowReader) str(name string) string {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return r.row[idx]
}

func (r rowReader) float(name string) float64 {
	v, err := strconv.ParseFloat(r.str(name), 64)
	if err != nil {
		return 0
	}
	return v
}

// floatOr returns the column value or a default when absent/unparseable
func (r rowReader) floatOr(name string, def float64) float64 {
	if !r.has(name) {
		return def
	}
	v, err := strconv.ParseFloat(r.str(name), 64)
	if err != nil {
		return def
	}
	return v
}
