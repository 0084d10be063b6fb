package analysis

import (
	"errors"
	"math"
)

var ErrEmptyDistribution = errors.New("model returned an empty distribution")

// DistributionScore converts a class-activation vector into a 0-100 score:
// the peak activation times 100, clamped to range.
func DistributionScore(dist []float64) (float64, error) {
	if len(dist) == 0 {
		return 0, ErrEmptyDistribution
	}
	peak := math.Inf(-1)
	for _, v := range dist {
		if math.IsNaN(v) {
			return 0, errors.New("model returned NaN activation")
		}
		peak = math.Max(peak, v)
	}
	return math.Max(0, math.Min(100, peak*100)), nil
}
