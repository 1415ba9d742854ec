package engine

import "testing"

// Identical seed and inputs must reproduce identical sequences.
func TestSimulatorDeterminism(t *testing.T) {
	stats := BiomarkerStats{
		Tumor:   PopulationStats{Mean: 10, Variance: 4},
		Healthy: PopulationStats{Mean: 2, Variance: 1},
	}

	a1, b1 := NewSimulator(42).SimulatePair(stats, stats, 500)
	a2, b2 := NewSimulator(42).SimulatePair(stats, stats, 500)

	for i := range a1.Tumor {
		if a1.Tumor[i] != a2.Tumor[i] || a1.Healthy[i] != a2.Healthy[i] ||
			b1.Tumor[i] != b2.Tumor[i] || b1.Healthy[i] != b2.Healthy[i] {
			t.Fatalf("sequences diverge at cell %d under identical seed", i)
		}
	}

	a3, _ := NewSimulator(43).SimulatePair(stats, stats, 500)
	same := true
	for i := range a1.Tumor {
		if a1.Tumor[i] != a3.Tumor[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical tumor sequence")
	}
}

// Expression cannot go negative, even when the normal tail does.
func TestSimulatorClipsNegative(t *testing.T) {
	sim := NewSimulator(1)
	samples := sim.Sample(PopulationStats{Mean: 0.1, Variance: 25}, 10000)

	if len(samples) != 10000 {
		t.Fatalf("got %d samples, want 10000", len(samples))
	}
	for i, v := range samples {
		if v < 0 {
			t.Fatalf("sample %d is negative: %v", i, v)
		}
	}
}

func TestSimulatorZeroVariance(t *testing.T) {
	sim := NewSimulator(5)
	samples := sim.Sample(PopulationStats{Mean: 3.5, Variance: 0}, 10)
	for _, v := range samples {
		if v != 3.5 {
			t.Errorf("zero-variance draw = %v, want 3.5", v)
		}
	}
}
