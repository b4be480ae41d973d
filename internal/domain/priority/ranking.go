package priority

import (
	"context"
	"sort"

	"fraud-investigation-system/internal/domain/alert"
)

// SortOrder controls ascending/descending toggles on the risk-sorted queue
type SortOrder string

const (
	OrderHighFirst SortOrder = "high_first"
	OrderLowFirst  SortOrder = "low_first"
)

// SortByRisk orders alerts for the default queue view: risk bucket first, then
// fraud probability, then anomaly score. The two orders can be toggled
// independently, matching the dashboard controls. Sorts in place.
func SortByRisk(alerts []alert.Snapshot, riskOrder, anomalyOrder SortOrder) {
	probSign := -1.0
	if riskOrder == OrderLowFirst {
		probSign = 1.0
	}
	anomSign := -1.0
	if anomalyOrder == OrderLowFirst {
		anomSign = 1.0
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].RiskLevel.Order(), alerts[j].RiskLevel.Order()
		if riskOrder == OrderLowFirst {
			ri, rj = -ri, -rj
		}
		if ri != rj {
			return ri < rj
		}
		pi, pj := probSign*alerts[i].FraudProbability, probSign*alerts[j].FraudProbability
		if pi != pj {
			return pi < pj
		}
		return anomSign*alerts[i].AnomalyScore < anomSign*alerts[j].AnomalyScore
	})
}

// SortOutcomeInformed orders alerts by descending similar-confirmed count,
// then descending fraud probability: the "learning" sort mode. It is a
// deliberate separate ranking, not derived from the adjusted priority score.
// Sorts in place.
func SortOutcomeInformed(ctx context.Context, alerts []alert.Snapshot, outcomes OutcomeSource) {
	counts := make(map[string]int, len(alerts))
	for _, a := range alerts {
		counts[a.AccountID] = outcomes.GetSimilarConfirmedCount(ctx, a.RiskLevel, a.FeatureVector)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		ci, cj := counts[alerts[i].AccountID], counts[alerts[j].AccountID]
		if ci != cj {
			return ci > cj
		}
		return alerts[i].FraudProbability > alerts[j].FraudProbability
	})
}
