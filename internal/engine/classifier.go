package engine

import "math"

// Threshold is a derived classification cutoff for one biomarker.
// Degenerate is set when the tumor and healthy means coincide and the
// midpoint rule had to fall back to the combined sample range.
type Threshold struct {
	Value      float64
	Degenerate bool
}

// MidpointThreshold derives the default cutoff: the midpoint between
// the tumor and healthy population means. When the means are equal the
// midpoint carries no information, so the cutoff falls back to the
// midpoint of the combined sample range and the result is flagged
// degenerate.
func MidpointThreshold(stats BiomarkerStats, expr ExpressionSet) Threshold {
	if stats.Tumor.Mean != stats.Healthy.Mean {
		return Threshold{Value: (stats.Tumor.Mean + stats.Healthy.Mean) / 2}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, seq := range [][]float64{expr.Tumor, expr.Healthy} {
		for _, v := range seq {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		// No samples either; fall back to the shared mean.
		return Threshold{Value: stats.Tumor.Mean, Degenerate: true}
	}
	return Threshold{Value: (lo + hi) / 2, Degenerate: true}
}

// GeometricThreshold derives the cutoff as the geometric mean of the
// two population means, the rule the fold-change view uses.
func GeometricThreshold(stats BiomarkerStats) Threshold {
	if stats.Tumor.Mean == stats.Healthy.Mean {
		return Threshold{Value: stats.Tumor.Mean, Degenerate: true}
	}
	return Threshold{Value: math.Sqrt(stats.Tumor.Mean * stats.Healthy.Mean)}
}

// Classify converts expression values into binary presence calls:
// present when value >= threshold.
func Classify(values []float64, threshold float64) []bool {
	calls := make([]bool, len(values))
	for i, v := range values {
		calls[i] = v >= threshold
	}
	return calls
}

// PresenceProbability converts expression values into presence
// probabilities for the probabilistic gate mode. v/(v+t) rises toward 1
// as expression clears the threshold; the clamp keeps a floor and
// ceiling so no cell is ever certainly present or absent.
func PresenceProbability(values []float64, threshold float64) []float64 {
	probs := make([]float64, len(values))
	for i, v := range values {
		p := 0.5
		if v+threshold > 0 {
			p = v / (v + threshold)
		}
		probs[i] = math.Min(0.95, math.Max(0.05, p))
	}
	return probs
}
