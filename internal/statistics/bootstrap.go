package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// ConfidenceInterval is a percentile bootstrap interval around a mean.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// Contains reports whether v lies inside the interval.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// DefaultBootstrapIterations is the number of resamples drawn per interval.
const DefaultBootstrapIterations = 2000

// BootstrapCI computes a bootstrap interval over scores with a random seed.
func BootstrapCI(scores []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(scores, confidenceLevel, -1)
}

// BootstrapCIWithSeed is BootstrapCI with a fixed seed; a negative seed is
// non-deterministic. Fewer than two scores give a degenerate interval at the
// mean.
func BootstrapCIWithSeed(scores []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	m := Mean(scores)
	ci := ConfidenceInterval{Lower: m, Upper: m, Mean: m, ConfidenceLevel: confidenceLevel}
	n := len(scores)
	if n < 2 {
		return ci
	}

	if seed < 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	iters := DefaultBootstrapIterations
	means := make([]float64, iters)
	for i := range means {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += scores[rng.Intn(n)]
		}
		means[i] = sum / float64(n)
	}
	sort.Float64s(means)

	alpha := 1 - confidenceLevel
	lo := int(math.Floor(alpha / 2 * float64(iters)))
	hi := min(int(math.Floor((1-alpha/2)*float64(iters))), iters-1)

	ci.Lower = means[lo]
	ci.Upper = means[hi]
	ci.NumBootstraps = iters
	return ci
}
