package appraisal

import "math"

// ComputeOverallScore returns the weightage-normalized average of the
// ratings, rounded to two decimals. ok is false when there are no ratings
// or the total weightage is zero, in which case the score must be left
// untouched.
func ComputeOverallScore(ratings []Rating) (float64, bool) {
	if len(ratings) == 0 {
		return 0, false
	}

	var weighted, totalWeight float64
	for _, r := range ratings {
		weighted += r.Rating * r.Weightage / 100
		totalWeight += r.Weightage / 100
	}

	if totalWeight == 0 {
		return 0, false
	}

	return roundScore(weighted / totalWeight), true
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
