package engine

import (
	"math"
	"math/rand"
)

// PopulationStats holds the recorded expression statistics for one
// biomarker in one cell population.
type PopulationStats struct {
	Mean     float64
	Variance float64
}

// BiomarkerStats pairs the tumor and healthy population statistics for
// one biomarker.
type BiomarkerStats struct {
	Tumor   PopulationStats
	Healthy PopulationStats
}

// ExpressionSet holds the simulated per-cell expression values for one
// biomarker, split by population.
type ExpressionSet struct {
	Tumor   []float64
	Healthy []float64
}

// Simulator draws synthetic per-cell expression values from a bounded
// normal model. All randomness comes from the seed given at
// construction, so identical seeds reproduce identical samples.
type Simulator struct {
	rng *rand.Rand
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{rng: rand.New(rand.NewSource(seed))}
}

// Sample draws n expression values for one population. Draws are
// normal(mean, variance) clipped at zero; expression cannot be negative.
func (s *Simulator) Sample(stats PopulationStats, n int) []float64 {
	sd := math.Sqrt(math.Max(stats.Variance, 0))
	out := make([]float64, n)
	for i := range out {
		v := stats.Mean + s.rng.NormFloat64()*sd
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// SimulatePair generates the four expression sequences for an analysis
// run: tumor and healthy populations for biomarkers A and B, n cells
// each. Draw order is fixed (A tumor, A healthy, B tumor, B healthy) so
// a seed pins down every sequence.
func (s *Simulator) SimulatePair(a, b BiomarkerStats, n int) (ExpressionSet, ExpressionSet) {
	exprA := ExpressionSet{
		Tumor:   s.Sample(a.Tumor, n),
		Healthy: s.Sample(a.Healthy, n),
	}
	exprB := ExpressionSet{
		Tumor:   s.Sample(b.Tumor, n),
		Healthy: s.Sample(b.Healthy, n),
	}
	return exprA, exprB
}
