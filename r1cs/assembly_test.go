package r1cs

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

// cubeCircuit enforces x^3 + x + 5 = out, the canonical toy circuit, using
// two multiplication gates and aux variables for the intermediates.
type cubeCircuit struct{}

func (cubeCircuit) Synthesize(cs *Assembly) error {
	x := cs.AllocAux()
	sym1 := cs.AllocAux()
	ySqr := cs.AllocAux()
	out := cs.AllocInput()

	cs.Enforce(
		LinearCombination{}.Add(one(), x),
		LinearCombination{}.Add(one(), x),
		LinearCombination{}.Add(one(), sym1),
	)
	cs.Enforce(
		LinearCombination{}.Add(one(), sym1),
		LinearCombination{}.Add(one(), x),
		LinearCombination{}.Add(one(), ySqr),
	)
	five := fr.NewElement(5)
	cs.Enforce(
		LinearCombination{}.Add(one(), ySqr).Add(one(), x).AddConstant(five),
		LinearCombination{}.AddConstant(one()),
		LinearCombination{}.Add(one(), out),
	)
	return nil
}

func TestAssemblyAllocation(t *testing.T) {
	a := NewAssembly()
	if a.NumInputs != 1 {
		t.Fatalf("NumInputs = %d, want 1 (the canonical one)", a.NumInputs)
	}
	if a.AtInputs[0] != nil {
		t.Fatalf("the canonical one's column should start empty")
	}

	v := a.AllocAux()
	if v.Kind != Aux || v.Index != 0 {
		t.Fatalf("first aux variable = %+v, want {Aux 0}", v)
	}
	if a.NumAux != 1 {
		t.Fatalf("NumAux = %d, want 1", a.NumAux)
	}

	in := a.AllocInput()
	if in.Kind != Input || in.Index != 1 {
		t.Fatalf("second input variable = %+v, want {Input 1}", in)
	}
}

func TestAssemblyEnforceRecordsColumns(t *testing.T) {
	a := NewAssembly()
	var c cubeCircuit
	if err := c.Synthesize(a); err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	if a.NumConstraints != 3 {
		t.Fatalf("NumConstraints = %d, want 3", a.NumConstraints)
	}
	if a.NumAux != 3 {
		t.Fatalf("NumAux = %d, want 3", a.NumAux)
	}
	if a.NumInputs != 2 {
		t.Fatalf("NumInputs = %d, want 2 (one + out)", a.NumInputs)
	}

	// x participates in constraints 0 (as A and B), 1 (as B) and 2 (as A).
	xCol := a.AtAux[0]
	if len(xCol) != 2 || xCol[0].Constraint != 0 || xCol[1].Constraint != 2 {
		t.Fatalf("x's A-column = %+v, want two entries (constraints 0 and 2)", xCol)
	}
	xColB := a.BtAux[0]
	if len(xColB) != 2 {
		t.Fatalf("x's B-column = %+v, want two entries (constraints 0 and 1)", xColB)
	}

	// out only appears in the C column of the final constraint.
	outIdx := 1 // second input variable
	if len(a.AtInputs[outIdx]) != 0 || len(a.BtInputs[outIdx]) != 0 {
		t.Fatalf("out should not appear in A or B")
	}
	if len(a.CtInputs[outIdx]) != 1 || a.CtInputs[outIdx][0].Constraint != 2 {
		t.Fatalf("out's C-column = %+v, want a single entry at constraint 2", a.CtInputs[outIdx])
	}
}

func TestEnforceSkipsZeroCoefficients(t *testing.T) {
	a := NewAssembly()
	v := a.AllocAux()

	var zero fr.Element
	a.Enforce(
		LinearCombination{}.Add(zero, v),
		LinearCombination{}.AddConstant(one()),
		LinearCombination{}.AddConstant(one()),
	)

	if len(a.AtAux[0]) != 0 {
		t.Fatalf("zero-coefficient term should not be recorded, got %+v", a.AtAux[0])
	}
}

func TestNamespaceNestingDoesNotAffectNumbering(t *testing.T) {
	a := NewAssembly()
	a.PushNamespace("outer")
	v1 := a.AllocAux()
	a.PushNamespace("inner")
	v2 := a.AllocAux()
	a.PopNamespace()
	a.PopNamespace()

	if v1.Index != 0 || v2.Index != 1 {
		t.Fatalf("namespace push/pop altered variable numbering: %+v %+v", v1, v2)
	}
}
