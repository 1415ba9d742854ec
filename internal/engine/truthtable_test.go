package engine

import (
	"errors"
	"testing"
)

// Binary gates enumerate the 4 combinations in fixed display order.
func TestTruthTableRowOrder(t *testing.T) {
	table, err := BuildTruthTable(GateAND)
	if err != nil {
		t.Fatal(err)
	}

	if table.Arity != 2 || len(table.Rows) != 4 {
		t.Fatalf("AND table shape: arity=%d rows=%d", table.Arity, len(table.Rows))
	}

	wantInputs := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	wantOutputs := []int{0, 0, 0, 1}
	for i, row := range table.Rows {
		if row.Inputs[0] != wantInputs[i][0] || row.Inputs[1] != wantInputs[i][1] {
			t.Errorf("row %d inputs = %v, want %v", i, row.Inputs, wantInputs[i])
		}
		if row.Output != wantOutputs[i] {
			t.Errorf("row %d output = %d, want %d", i, row.Output, wantOutputs[i])
		}
	}
}

// NOT is unary: exactly 2 rows, (0)->1 and (1)->0.
func TestTruthTableNOTShape(t *testing.T) {
	table, err := BuildTruthTable(GateNOT)
	if err != nil {
		t.Fatal(err)
	}

	if table.Arity != 1 {
		t.Errorf("NOT arity = %d, want 1", table.Arity)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("NOT rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0].Output != 1 || table.Rows[1].Output != 0 {
		t.Errorf("NOT outputs = %d,%d, want 1,0", table.Rows[0].Output, table.Rows[1].Output)
	}
	for i, row := range table.Rows {
		if len(row.Inputs) != 1 || row.Inputs[0] != i {
			t.Errorf("NOT row %d inputs = %v", i, row.Inputs)
		}
	}
}

func TestTruthTableInvalidGate(t *testing.T) {
	_, err := BuildTruthTable(Gate(9))
	if !errors.Is(err, ErrInvalidGate) {
		t.Errorf("expected ErrInvalidGate, got %v", err)
	}
}

func TestTruthTableNamesGate(t *testing.T) {
	for _, g := range Gates {
		table, err := BuildTruthTable(g)
		if err != nil {
			t.Fatal(err)
		}
		if table.Gate != g.String() {
			t.Errorf("table gate = %q, want %q", table.Gate, g.String())
		}
	}
}
