package alerts

import "fraud-investigation-system/internal/domain/alert"

// MockAlerts returns the demo queue used when no scored CSV is available.
// These carry no feature vectors, so similarity falls back to risk-level
// bucket matching.
func MockAlerts() []alert.Snapshot {
	return []alert.Snapshot{
		{
			AccountID:          "ACC-F-00106",
			FraudProbability:   0.72,
			AnomalyScore:       0.89,
			RiskLevel:          alert.RiskLevelHigh,
			OneLineExplanation: "Elevated VPN use, deposits vs income mismatch, shared device.",
			RiskFactors: []string{
				"Most logins came from a hidden or private network (VPN), which can be used to hide location.",
				"Money going in is much higher than the stated income, which is unusual.",
				"This account shares a device with several other accounts, which is common in organised abuse.",
				"Money is being moved in and out very quickly instead of being held, which can indicate layering.",
			},
		},
		{
			AccountID:          "ACC-F-00042",
			FraudProbability:   0.65,
			AnomalyScore:       0.91,
			RiskLevel:          alert.RiskLevelHigh,
			OneLineExplanation: "Rapid deposit-withdrawal cycle, shared device, multiple countries.",
			RiskFactors: []string{
				"Money is being moved in and out very quickly instead of being held, which can indicate layering.",
				"This account shares a device with several other accounts, which is common in organised abuse.",
				"Logins from many different countries in a short time, which is unusual for a single user.",
			},
		},
		{
			AccountID:          "ACC-F-00088",
			FraudProbability:   0.58,
			AnomalyScore:       0.85,
			RiskLevel:          alert.RiskLevelMedium,
			OneLineExplanation: "Deposits vs income mismatch, elevated VPN use.",
			RiskFactors: []string{
				"Money going in is much higher than the stated income, which is unusual.",
				"Most logins came from a hidden or private network (VPN), which can be used to hide location.",
			},
		},
		{
			AccountID:          "ACC-L-01251",
			FraudProbability:   0.45,
			AnomalyScore:       0.38,
			RiskLevel:          alert.RiskLevelMedium,
			OneLineExplanation: "Anomaly vs normal behavior.",
			RiskFactors: []string{
				"Activity pattern differs from what we usually see for similar accounts.",
			},
		},
		{
			AccountID:          "ACC-L-02336",
			FraudProbability:   0.22,
			AnomalyScore:       0.44,
			RiskLevel:          alert.RiskLevelLow,
			OneLineExplanation: "Slightly elevated anomaly score; within range.",
			RiskFactors: []string{
				"Some small differences from typical behavior; may be normal variation.",
			},
		},
		{
			AccountID:          "ACC-L-02403",
			FraudProbability:   0.12,
			AnomalyScore:       0.18,
			RiskLevel:          alert.RiskLevelLow,
			OneLineExplanation: "Low risk; routine review.",
			RiskFactors: []string{
				"Routine check; no strong risk factors identified.",
			},
		},
	}
}
