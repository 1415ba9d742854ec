package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// Every gate must match its canonical truth table over all input pairs.
func TestGateApplyCanonical(t *testing.T) {
	cases := []struct {
		gate Gate
		want [4]bool // outputs for (0,0),(0,1),(1,0),(1,1)
	}{
		{GateAND, [4]bool{false, false, false, true}},
		{GateOR, [4]bool{false, true, true, true}},
		{GateNOT, [4]bool{true, true, false, false}}, // ignores B
		{GateXOR, [4]bool{false, true, true, false}},
		{GateXNOR, [4]bool{true, false, false, true}},
	}

	for _, tc := range cases {
		i := 0
		for _, a := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				got, err := tc.gate.Apply(a, b)
				if err != nil {
					t.Fatalf("%v.Apply(%v,%v): %v", tc.gate, a, b, err)
				}
				if got != tc.want[i] {
					t.Errorf("%v.Apply(%v,%v) = %v, want %v", tc.gate, a, b, got, tc.want[i])
				}
				i++
			}
		}
	}
}

func TestEvaluateHardANDScenario(t *testing.T) {
	a := []bool{true, true, false, false}
	b := []bool{true, false, true, false}

	got, err := EvaluateHard(GateAND, a, b)
	if err != nil {
		t.Fatal(err)
	}

	want := []bool{true, false, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AND cell %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEvaluateHardErrors(t *testing.T) {
	_, err := EvaluateHard(Gate(42), []bool{true}, []bool{true})
	if !errors.Is(err, ErrInvalidGate) {
		t.Errorf("expected ErrInvalidGate, got %v", err)
	}

	_, err = EvaluateHard(GateAND, []bool{true, false}, []bool{true})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	_, err = EvaluateProb(GateOR, []float64{0.5}, []float64{0.5, 0.5})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

// Probabilistic outputs stay inside [0,1] for all gates over random
// inputs in [0,1].
func TestProbOutputsWithinUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		pa, pb := rng.Float64(), rng.Float64()
		for _, g := range Gates {
			got, err := g.ApplyProb(pa, pb)
			if err != nil {
				t.Fatal(err)
			}
			if got < 0 || got > 1 {
				t.Fatalf("%v.ApplyProb(%v,%v) = %v outside [0,1]", g, pa, pb, got)
			}
		}
	}
}

// XNOR must be the exact complement of XOR in both modes.
func TestXNORComplementsXOR(t *testing.T) {
	for _, a := range []bool{false, true} {
		for _, b := range []bool{false, true} {
			xor, _ := GateXOR.Apply(a, b)
			xnor, _ := GateXNOR.Apply(a, b)
			if xor == xnor {
				t.Errorf("XOR and XNOR agree on (%v,%v)", a, b)
			}
		}
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		pa, pb := rng.Float64(), rng.Float64()
		xor, _ := GateXOR.ApplyProb(pa, pb)
		xnor, _ := GateXNOR.ApplyProb(pa, pb)
		if math.Abs((xor+xnor)-1) > 1e-12 {
			t.Fatalf("XOR+XNOR = %v for (%v,%v), want 1", xor+xnor, pa, pb)
		}
	}
}

func TestParseGate(t *testing.T) {
	for _, g := range Gates {
		got, err := ParseGate(g.String())
		if err != nil {
			t.Fatalf("ParseGate(%q): %v", g.String(), err)
		}
		if got != g {
			t.Errorf("ParseGate(%q) = %v", g.String(), got)
		}
	}

	if _, err := ParseGate("NAND"); !errors.Is(err, ErrInvalidGate) {
		t.Errorf("expected ErrInvalidGate for NAND, got %v", err)
	}
	if g, err := ParseGate(" xor "); err != nil || g != GateXOR {
		t.Errorf("ParseGate should trim and upcase, got %v, %v", g, err)
	}
}
