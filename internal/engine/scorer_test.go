package engine

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func boolSeq(kills, total int) []bool {
	seq := make([]bool, total)
	for i := 0; i < kills; i++ {
		seq[i] = true
	}
	return seq
}

// tumor 0.9 / healthy 0.1 gives ratio 9 and must outrank 0.9 / 0.3.
func TestSelectivityRatioScenario(t *testing.T) {
	sharp := ScoreHard(boolSeq(9, 10), boolSeq(1, 10))
	if math.Abs(sharp.Ratio-9.0) > 1e-9 {
		t.Errorf("ratio = %v, want 9.0", sharp.Ratio)
	}
	if sharp.Status != SelectivityDefined {
		t.Errorf("status = %q, want defined", sharp.Status)
	}

	blunt := ScoreHard(boolSeq(9, 10), boolSeq(3, 10))
	if math.Abs(blunt.Ratio-3.0) > 1e-9 {
		t.Errorf("ratio = %v, want 3.0", blunt.Ratio)
	}

	ranked := Rank([]Strategy{
		{Gate: "OR", gate: GateOR, Mode: ModeHard, Score: blunt},
		{Gate: "AND", gate: GateAND, Mode: ModeHard, Score: sharp},
	})
	if ranked[0].Gate != "AND" {
		t.Errorf("ratio 9.0 should rank above 3.0, got %q first", ranked[0].Gate)
	}
}

// Zero healthy kill with nonzero tumor kill reports the finite sentinel,
// never an infinite float, and survives ranking and JSON encoding.
func TestSelectivitySentinel(t *testing.T) {
	s := ScoreHard(boolSeq(5, 10), boolSeq(0, 10))
	if s.Status != SelectivityMaximal {
		t.Fatalf("status = %q, want maximal", s.Status)
	}
	if s.Ratio != RatioSentinel {
		t.Errorf("ratio = %v, want sentinel %v", s.Ratio, RatioSentinel)
	}
	if math.IsInf(s.Ratio, 0) || math.IsNaN(s.Ratio) {
		t.Error("sentinel must be a finite float")
	}

	ranked := Rank([]Strategy{
		{Gate: "OR", gate: GateOR, Mode: ModeHard, Score: ScoreHard(boolSeq(10, 10), boolSeq(1, 10))},
		{Gate: "AND", gate: GateAND, Mode: ModeHard, Score: s},
	})
	if ranked[0].Score.Status != SelectivityMaximal {
		t.Error("maximal strategy should rank first")
	}

	data, err := json.Marshal(ranked)
	if err != nil {
		t.Fatalf("sentinel broke serialization: %v", err)
	}
	if strings.Contains(string(data), "Inf") {
		t.Error("encoded ranking contains an infinity")
	}
}

func TestSelectivityNoSignal(t *testing.T) {
	s := ScoreHard(boolSeq(0, 10), boolSeq(0, 10))
	if s.Status != SelectivityNoSignal {
		t.Errorf("status = %q, want no_signal", s.Status)
	}
	if s.Ratio != 0 {
		t.Errorf("no-signal ratio = %v, want 0", s.Ratio)
	}
}

// Holding healthy kill fixed above zero, the ratio never decreases as
// tumor kill grows.
func TestSelectivityMonotonicInTumorKill(t *testing.T) {
	prev := -1.0
	for kills := 0; kills <= 100; kills++ {
		s := ScoreHard(boolSeq(kills, 100), boolSeq(20, 100))
		if s.Ratio < prev {
			t.Fatalf("ratio decreased at tumor kills=%d: %v < %v", kills, s.Ratio, prev)
		}
		prev = s.Ratio
	}
}

func TestScoreProbMeans(t *testing.T) {
	s := ScoreProb([]float64{0.5, 0.7}, []float64{0.1, 0.3})
	if math.Abs(s.TumorKillRate-0.6) > 1e-12 {
		t.Errorf("tumor rate = %v, want 0.6", s.TumorKillRate)
	}
	if math.Abs(s.HealthyKillRate-0.2) > 1e-12 {
		t.Errorf("healthy rate = %v, want 0.2", s.HealthyKillRate)
	}
	if math.Abs(s.Ratio-3.0) > 1e-9 {
		t.Errorf("ratio = %v, want 3.0", s.Ratio)
	}
}

// Full tie: ratio and tumor rate equal. Canonical gate order breaks the
// tie, then hard mode precedes probabilistic.
func TestRankTieBreaks(t *testing.T) {
	score := ScoreHard(boolSeq(5, 10), boolSeq(1, 10))
	in := []Strategy{
		{Gate: "XOR", gate: GateXOR, Mode: ModeProbabilistic, Score: score},
		{Gate: "XOR", gate: GateXOR, Mode: ModeHard, Score: score},
		{Gate: "AND", gate: GateAND, Mode: ModeHard, Score: score},
		{Gate: "OR", gate: GateOR, Mode: ModeHard, Score: score},
	}

	ranked := Rank(in)
	wantGates := []string{"AND", "OR", "XOR", "XOR"}
	for i, want := range wantGates {
		if ranked[i].Gate != want {
			t.Fatalf("rank %d = %q, want %q", i, ranked[i].Gate, want)
		}
	}
	if ranked[2].Mode != ModeHard || ranked[3].Mode != ModeProbabilistic {
		t.Error("hard mode should precede probabilistic on a full tie")
	}
}
