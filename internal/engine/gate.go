package engine

import (
	"fmt"
	"strings"
)

// Gate selects one of the supported dual-antigen logic gates.
type Gate int

const (
	GateAND Gate = iota
	GateOR
	// GateNOT is unary: it consumes signal A (the tumor-signal input)
	// and ignores signal B.
	GateNOT
	GateXOR
	GateXNOR
)

// Gates lists all supported gates in canonical evaluation order.
var Gates = [...]Gate{GateAND, GateOR, GateNOT, GateXOR, GateXNOR}

func (g Gate) String() string {
	switch g {
	case GateAND:
		return "AND"
	case GateOR:
		return "OR"
	case GateNOT:
		return "NOT"
	case GateXOR:
		return "XOR"
	case GateXNOR:
		return "XNOR"
	default:
		return fmt.Sprintf("Gate(%d)", int(g))
	}
}

// Arity returns 1 for NOT and 2 for every other gate.
func (g Gate) Arity() int {
	if g == GateNOT {
		return 1
	}
	return 2
}

// ParseGate maps a gate name (case-insensitive) to its Gate value.
func ParseGate(name string) (Gate, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "AND":
		return GateAND, nil
	case "OR":
		return GateOR, nil
	case "NOT":
		return GateNOT, nil
	case "XOR":
		return GateXOR, nil
	case "XNOR":
		return GateXNOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidGate, name)
	}
}

func (g Gate) valid() bool {
	return g >= GateAND && g <= GateXNOR
}

// Apply evaluates the gate on one pair of presence calls.
func (g Gate) Apply(a, b bool) (bool, error) {
	switch g {
	case GateAND:
		return a && b, nil
	case GateOR:
		return a || b, nil
	case GateNOT:
		return !a, nil
	case GateXOR:
		return a != b, nil
	case GateXNOR:
		return a == b, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidGate, g)
	}
}

// ApplyProb evaluates the gate on one pair of presence probabilities
// using the probabilistic Boolean algebra. Inputs in [0,1] yield an
// output in [0,1].
func (g Gate) ApplyProb(pa, pb float64) (float64, error) {
	switch g {
	case GateAND:
		return pa * pb, nil
	case GateOR:
		return pa + pb - pa*pb, nil
	case GateNOT:
		return 1 - pa, nil
	case GateXOR:
		return pa + pb - 2*pa*pb, nil
	case GateXNOR:
		return 1 - (pa + pb - 2*pa*pb), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidGate, g)
	}
}

// EvaluateHard applies the gate element-wise to two classified call
// sequences and returns the predicted kill sequence.
func EvaluateHard(g Gate, a, b []bool) ([]bool, error) {
	if !g.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGate, g)
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrLengthMismatch, len(a), len(b))
	}

	out := make([]bool, len(a))
	for i := range a {
		v, err := g.Apply(a[i], b[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EvaluateProb applies the gate element-wise to two presence-probability
// sequences and returns the kill-probability sequence.
func EvaluateProb(g Gate, a, b []float64) ([]float64, error) {
	if !g.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGate, g)
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: len(a)=%d len(b)=%d", ErrLengthMismatch, len(a), len(b))
	}

	out := make([]float64, len(a))
	for i := range a {
		v, err := g.ApplyProb(a[i], b[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
