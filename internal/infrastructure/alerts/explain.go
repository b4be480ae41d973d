package alerts

import "strings"

// Signal thresholds for the derived explanation text. Explainable by design:
// no model output feeds these, only raw feature values.
const (
	highVPNUsagePct       = 50
	incomeMismatchRatio   = 1.5
	sharedDeviceCount     = 1
	rapidCycleDays        = 10
	weakKYCFaceMatchScore = 0.85
)

// oneLineExplanation builds the short queue-row summary from the strongest
// signals in the row, capped at three.
func oneLineExplanation(fields rowReader) string {
	var parts []string
	if fields.floatOr("vpn_usage_pct", 0) > highVPNUsagePct {
		parts = append(parts, "elevated VPN use")
	}
	if fields.floatOr("deposits_vs_income_ratio", 0) > incomeMismatchRatio {
		parts = append(parts, "deposits vs income mismatch")
	}
	if fields.floatOr("device_shared_count", 0) > sharedDeviceCount {
		parts = append(parts, "shared device")
	}
	if fields.floatOr("deposit_withdraw_cycle_days_avg", 100) < rapidCycleDays {
		parts = append(parts, "rapid deposit-withdrawal cycle")
	}
	if len(parts) == 0 {
		parts = append(parts, "anomaly vs normal behavior")
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	sentence := strings.Join(parts, " ")
	return strings.ToUpper(sentence[:1]) + sentence[1:] + "."
}

// riskFactors builds the plain-language bullets for the explanation panel,
// capped at six. Deliberately jargon-free; these are shown to investigators
// and may end up in case notes.
func riskFactors(fields rowReader) []string {
	var bullets []string
	if fields.floatOr("vpn_usage_pct", 0) > highVPNUsagePct {
		bullets = append(bullets, "Most logins came from a hidden or private network (VPN), which can be used to hide location.")
	}
	if fields.floatOr("deposits_vs_income_ratio", 0) > incomeMismatchRatio {
		bullets = append(bullets, "Money going in is much higher than the stated income, which is unusual.")
	}
	if fields.floatOr("device_shared_count", 0) > sharedDeviceCount {
		bullets = append(bullets, "This account shares a device with several other accounts, which is common in organised abuse.")
	}
	if fields.floatOr("deposit_withdraw_cycle_days_avg", 100) < rapidCycleDays {
		bullets = append(bullets, "Money is being moved in and out very quickly instead of being held, which can indicate layering.")
	}
	if fields.floatOr("kyc_face_match_score", 1) < weakKYCFaceMatchScore {
		bullets = append(bullets, "Identity check (photo match) was weaker than usual.")
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "Activity pattern differs from what we usually see for similar accounts.")
	}
	if len(bullets) > 6 {
		bullets = bullets[:6]
	}
	return bullets
}
