package feedback

import (
	"math"

	"fraud-investigation-system/internal/domain/alert"
)

// SimilarityThreshold is the cosine similarity above which two cases are
// considered behaviorally alike. Audited policy constant.
const SimilarityThreshold = 0.7

// normEpsilon guards the cosine denominator against division by zero
const normEpsilon = 1e-9

// CosineSimilarity returns the cosine similarity of two feature vectors,
// clamped to [0,1]. Features are assumed non-negative, so a negative cosine is
// not expected but is clamped anyway. Returns 0 when the vectors differ in
// length, either is empty, or either norm is below epsilon.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)
	if normA < normEpsilon || normB < normEpsilon {
		return 0
	}
	sim := dot / (normA * normB)
	return math.Max(0, math.Min(1, sim))
}

// countSimilar counts records similar to the query using the two-tier
// fallback: cosine similarity against stored vectors when the query carries a
// vector and the corpus holds vectors of matching dimensionality; otherwise a
// coarse risk-level bucket match. The fallback keeps the count meaningful for
// accounts with incomplete feature data.
func countSimilar(corpus []Record, riskLevel alert.RiskLevel, featureVector []float64, threshold float64) int {
	if len(corpus) == 0 {
		return 0
	}
	if len(featureVector) > 0 {
		var stored [][]float64
		for _, r := range corpus {
			if len(r.FeatureVector) > 0 {
				stored = append(stored, r.FeatureVector)
			}
		}
		if len(stored) > 0 && len(stored[0]) == len(featureVector) {
			n := 0
			for _, sv := range stored {
				if CosineSimilarity(featureVector, sv) >= threshold {
					n++
				}
			}
			return n
		}
	}
	n := 0
	for _, r := range corpus {
		if r.RiskLevel != nil && *r.RiskLevel == riskLevel {
			n++
		}
	}
	return n
}

// filterByDecision returns the records carrying the given decision, in order
func filterByDecision(records []Record, d Decision) []Record {
	var out []Record
	for _, r := range records {
		if r.Decision == d {
			out = append(out, r)
		}
	}
	return out
}
