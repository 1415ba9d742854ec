package engine

import "sort"

// Mode distinguishes hard-threshold from probabilistic gate evaluation.
type Mode string

const (
	ModeHard          Mode = "hard"
	ModeProbabilistic Mode = "probabilistic"
)

// SelectivityStatus qualifies the selectivity ratio. The ratio is only
// a plain quotient when status is Defined.
type SelectivityStatus string

const (
	// SelectivityDefined: healthy-kill rate > 0, ratio is tumor/healthy.
	SelectivityDefined SelectivityStatus = "defined"
	// SelectivityMaximal: tumor kill with zero healthy kill. The ratio
	// is reported as RatioSentinel instead of +Inf so the value
	// survives JSON encoding.
	SelectivityMaximal SelectivityStatus = "maximal"
	// SelectivityNoSignal: neither population is killed; the ratio is
	// undefined and reported as zero.
	SelectivityNoSignal SelectivityStatus = "no_signal"
)

// RatioSentinel stands in for an unbounded selectivity ratio. With the
// sample cap at 100000 cells the largest attainable defined ratio is
// 1e5, so the sentinel always ranks above every defined strategy.
const RatioSentinel = 1e6

// Score aggregates per-cell kill outcomes for one gate strategy.
type Score struct {
	TumorKillRate   float64           `json:"tumor_kill_rate"`
	HealthyKillRate float64           `json:"healthy_kill_rate"`
	Ratio           float64           `json:"selectivity_ratio"`
	Status          SelectivityStatus `json:"selectivity_status"`
}

// ScoreHard computes kill rates and the selectivity ratio from hard
// kill calls for the two populations.
func ScoreHard(tumorKill, healthyKill []bool) Score {
	return score(meanBool(tumorKill), meanBool(healthyKill))
}

// ScoreProb computes kill rates and the selectivity ratio from kill
// probabilities for the two populations.
func ScoreProb(tumorKill, healthyKill []float64) Score {
	return score(meanFloat(tumorKill), meanFloat(healthyKill))
}

func score(tumorRate, healthyRate float64) Score {
	s := Score{TumorKillRate: tumorRate, HealthyKillRate: healthyRate}
	switch {
	case healthyRate > 0:
		s.Ratio = tumorRate / healthyRate
		s.Status = SelectivityDefined
	case tumorRate > 0:
		s.Ratio = RatioSentinel
		s.Status = SelectivityMaximal
	default:
		s.Ratio = 0
		s.Status = SelectivityNoSignal
	}
	return s
}

func meanBool(vs []bool) float64 {
	if len(vs) == 0 {
		return 0
	}
	n := 0
	for _, v := range vs {
		if v {
			n++
		}
	}
	return float64(n) / float64(len(vs))
}

func meanFloat(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Strategy is one evaluated (gate, mode) combination over the selected
// antigen pair, ready for ranking and rendering.
type Strategy struct {
	Gate     string     `json:"gate"`
	Mode     Mode       `json:"mode"`
	AntigenA string     `json:"antigen_a"`
	AntigenB string     `json:"antigen_b"`
	Score    Score      `json:"score"`
	Table    TruthTable `json:"truth_table"`

	gate Gate
}

// Rank orders strategies by selectivity ratio descending, breaking ties
// by higher tumor-kill rate, then canonical gate order, then hard
// before probabilistic. The sort is fully deterministic.
func Rank(strategies []Strategy) []Strategy {
	ranked := make([]Strategy, len(strategies))
	copy(ranked, strategies)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score.Ratio != b.Score.Ratio {
			return a.Score.Ratio > b.Score.Ratio
		}
		if a.Score.TumorKillRate != b.Score.TumorKillRate {
			return a.Score.TumorKillRate > b.Score.TumorKillRate
		}
		if a.gate != b.gate {
			return a.gate < b.gate
		}
		return a.Mode == ModeHard && b.Mode == ModeProbabilistic
	})
	return ranked
}
