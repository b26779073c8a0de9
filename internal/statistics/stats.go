// Package statistics holds the small numeric helpers shared by the scorers:
// moments, window comparison and bootstrap intervals over meal scores.
package statistics

import "math"

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance returns the population variance, or 0 for no values.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// SplitMeans returns the mean of the last recent values and the mean of
// everything before them. ok is false unless both windows are non-empty.
func SplitMeans(values []float64, recent int) (recentMean, earlierMean float64, ok bool) {
	if recent <= 0 || len(values) <= recent {
		return 0, 0, false
	}
	cut := len(values) - recent
	return Mean(values[cut:]), Mean(values[:cut]), true
}
