package engine

// TruthRow pairs one input combination with the gate's output bit.
type TruthRow struct {
	Inputs []int `json:"inputs"`
	Output int   `json:"output"`
}

// TruthTable enumerates a gate's output for every input combination in
// a fixed display order. Arity is recorded because NOT produces 2 rows
// over its single input while every other gate produces 4; renderers
// must not assume 4 rows.
type TruthTable struct {
	Gate  string     `json:"gate"`
	Arity int        `json:"arity"`
	Rows  []TruthRow `json:"rows"`
}

// BuildTruthTable builds the canonical table for a gate. Binary gates
// enumerate (0,0),(0,1),(1,0),(1,1) in that order; NOT enumerates
// (0),(1) over signal A.
func BuildTruthTable(g Gate) (TruthTable, error) {
	if !g.valid() {
		return TruthTable{}, ErrInvalidGate
	}

	table := TruthTable{Gate: g.String(), Arity: g.Arity()}

	if g.Arity() == 1 {
		for _, a := range []int{0, 1} {
			out, err := g.Apply(a == 1, false)
			if err != nil {
				return TruthTable{}, err
			}
			table.Rows = append(table.Rows, TruthRow{Inputs: []int{a}, Output: bit(out)})
		}
		return table, nil
	}

	for _, a := range []int{0, 1} {
		for _, b := range []int{0, 1} {
			out, err := g.Apply(a == 1, b == 1)
			if err != nil {
				return TruthTable{}, err
			}
			table.Rows = append(table.Rows, TruthRow{Inputs: []int{a, b}, Output: bit(out)})
		}
	}
	return table, nil
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
