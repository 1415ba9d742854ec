package engine

import "fmt"

// Config holds analysis limits.
type Config struct {
	// MaxSamples caps the per-population cell count so interactive runs
	// stay bounded. Zero means no cap.
	MaxSamples int
}

// Analyzer runs the full logic-gate comparison pipeline. It holds no
// per-run state; every Run is a pure function of its request.
type Analyzer struct {
	cfg Config
}

func New(cfg Config) *Analyzer { return &Analyzer{cfg: cfg} }

// Antigen names one selected biomarker and carries its population
// statistics. A is wired as the tumor-signal input, B as the
// healthy-signal input.
type Antigen struct {
	Name  string
	Stats BiomarkerStats
}

// ThresholdRule selects how classification cutoffs are derived when
// the caller does not override them.
type ThresholdRule string

const (
	ThresholdMidpoint  ThresholdRule = "midpoint"
	ThresholdGeometric ThresholdRule = "geometric"
)

// Request describes one analysis run. Seed and thresholds are explicit
// inputs; nothing is read from global state.
type Request struct {
	AntigenA Antigen
	AntigenB Antigen
	Samples  int
	Seed     int64

	// Rule picks the threshold derivation; empty means midpoint.
	Rule ThresholdRule

	// ThresholdA/ThresholdB override the derived cutoffs when non-nil.
	ThresholdA *float64
	ThresholdB *float64
}

// ThresholdInfo reports the cutoff actually used for one antigen.
type ThresholdInfo struct {
	Antigen    string  `json:"antigen"`
	Value      float64 `json:"value"`
	Degenerate bool    `json:"degenerate"`
	Overridden bool    `json:"overridden"`
}

// Result is the self-contained outcome of one run: every strategy in
// ranked order plus the recommended design.
type Result struct {
	Strategies  []Strategy      `json:"strategies"`
	Recommended Strategy        `json:"recommended"`
	Annotation  Annotation      `json:"annotation"`
	Thresholds  []ThresholdInfo `json:"thresholds"`
	Samples     int             `json:"samples"`
	Seed        int64           `json:"seed"`
}

// Run executes the full comparison: simulate expression for both
// antigens, classify, evaluate all five gates in hard and probabilistic
// mode, score, and rank. Strategies are assembled in canonical gate
// order (hard then probabilistic per gate) before ranking.
func (a *Analyzer) Run(req Request) (*Result, error) {
	return a.run(req, nil)
}

// RunStream is Run with a callback invoked for each strategy as it is
// evaluated, in canonical order. A callback error aborts the run with
// no result.
func (a *Analyzer) RunStream(req Request, fn func(Strategy) error) (*Result, error) {
	return a.run(req, fn)
}

func (a *Analyzer) run(req Request, fn func(Strategy) error) (*Result, error) {
	if req.Samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, req.Samples)
	}
	if a.cfg.MaxSamples > 0 && req.Samples > a.cfg.MaxSamples {
		return nil, fmt.Errorf("%w: %d exceeds cap %d", ErrSampleCount, req.Samples, a.cfg.MaxSamples)
	}

	sim := NewSimulator(req.Seed)
	exprA, exprB := sim.SimulatePair(req.AntigenA.Stats, req.AntigenB.Stats, req.Samples)

	thrA, infoA := resolveThreshold(req.AntigenA, exprA, req.Rule, req.ThresholdA)
	thrB, infoB := resolveThreshold(req.AntigenB, exprB, req.Rule, req.ThresholdB)

	// Hard-mode signals per population.
	callsATumor := Classify(exprA.Tumor, thrA)
	callsAHealthy := Classify(exprA.Healthy, thrA)
	callsBTumor := Classify(exprB.Tumor, thrB)
	callsBHealthy := Classify(exprB.Healthy, thrB)

	// Probabilistic-mode signals per population.
	probsATumor := PresenceProbability(exprA.Tumor, thrA)
	probsAHealthy := PresenceProbability(exprA.Healthy, thrA)
	probsBTumor := PresenceProbability(exprB.Tumor, thrB)
	probsBHealthy := PresenceProbability(exprB.Healthy, thrB)

	strategies := make([]Strategy, 0, 2*len(Gates))
	for _, g := range Gates {
		table, err := BuildTruthTable(g)
		if err != nil {
			return nil, err
		}

		tumorKill, err := EvaluateHard(g, callsATumor, callsBTumor)
		if err != nil {
			return nil, err
		}
		healthyKill, err := EvaluateHard(g, callsAHealthy, callsBHealthy)
		if err != nil {
			return nil, err
		}
		hard := Strategy{
			Gate:     g.String(),
			Mode:     ModeHard,
			AntigenA: req.AntigenA.Name,
			AntigenB: req.AntigenB.Name,
			Score:    ScoreHard(tumorKill, healthyKill),
			Table:    table,
			gate:     g,
		}

		tumorProb, err := EvaluateProb(g, probsATumor, probsBTumor)
		if err != nil {
			return nil, err
		}
		healthyProb, err := EvaluateProb(g, probsAHealthy, probsBHealthy)
		if err != nil {
			return nil, err
		}
		prob := Strategy{
			Gate:     g.String(),
			Mode:     ModeProbabilistic,
			AntigenA: req.AntigenA.Name,
			AntigenB: req.AntigenB.Name,
			Score:    ScoreProb(tumorProb, healthyProb),
			Table:    table,
			gate:     g,
		}

		for _, s := range []Strategy{hard, prob} {
			if fn != nil {
				if err := fn(s); err != nil {
					return nil, err
				}
			}
			strategies = append(strategies, s)
		}
	}

	ranked := Rank(strategies)
	return &Result{
		Strategies:  ranked,
		Recommended: ranked[0],
		Annotation:  Annotate(ranked[0].Gate),
		Thresholds:  []ThresholdInfo{infoA, infoB},
		Samples:     req.Samples,
		Seed:        req.Seed,
	}, nil
}

func resolveThreshold(ant Antigen, expr ExpressionSet, rule ThresholdRule, override *float64) (float64, ThresholdInfo) {
	if override != nil {
		return *override, ThresholdInfo{Antigen: ant.Name, Value: *override, Overridden: true}
	}

	var thr Threshold
	if rule == ThresholdGeometric {
		thr = GeometricThreshold(ant.Stats)
	} else {
		thr = MidpointThreshold(ant.Stats, expr)
	}
	return thr.Value, ThresholdInfo{Antigen: ant.Name, Value: thr.Value, Degenerate: thr.Degenerate}
}
