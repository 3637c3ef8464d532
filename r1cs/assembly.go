package r1cs

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// sparseColumn is one variable's column in a QAP matrix (A, B or C): an
// ordered list of (coefficient, constraint-id) pairs.
type sparseColumn []Coeff

// Coeff is a single (coefficient, constraint-id) entry of a sparse column.
type Coeff struct {
	Value      fr.Element
	Constraint int
}

// Assembly is the constraint-system capability circuits synthesize
// against. It never evaluates a witness: Enforce only records which
// (coefficient, constraint) pairs land on which variable's column.
type Assembly struct {
	NumInputs      int
	NumAux         int
	NumConstraints int

	AtInputs, BtInputs, CtInputs []sparseColumn
	AtAux, BtAux, CtAux          []sparseColumn

	namespaceDepth int
}

// NewAssembly returns an Assembly with the canonical "one" input already
// allocated at Input(0).
func NewAssembly() *Assembly {
	a := &Assembly{}
	a.AllocInput()
	return a
}

// AllocAux allocates a fresh auxiliary variable and extends its three
// (empty) QAP columns.
func (a *Assembly) AllocAux() Variable {
	idx := a.NumAux
	a.NumAux++
	a.AtAux = append(a.AtAux, nil)
	a.BtAux = append(a.BtAux, nil)
	a.CtAux = append(a.CtAux, nil)
	return Variable{Kind: Aux, Index: idx}
}

// AllocInput allocates a fresh public input variable and extends its three
// (empty) QAP columns.
func (a *Assembly) AllocInput() Variable {
	idx := a.NumInputs
	a.NumInputs++
	a.AtInputs = append(a.AtInputs, nil)
	a.BtInputs = append(a.BtInputs, nil)
	a.CtInputs = append(a.CtInputs, nil)
	return Variable{Kind: Input, Index: idx}
}

// Enforce records the constraint a*b=c: every non-trivial term of a, b and
// c is appended to its variable's column, tagged with the current
// constraint id. No witness is evaluated; this is bookkeeping only.
func (a *Assembly) Enforce(lA, lB, lC LinearCombination) {
	id := a.NumConstraints
	a.eval(lA, id, &a.AtInputs, &a.AtAux)
	a.eval(lB, id, &a.BtInputs, &a.BtAux)
	a.eval(lC, id, &a.CtInputs, &a.CtAux)
	a.NumConstraints++
}

func (a *Assembly) eval(lc LinearCombination, constraintID int, inputs, aux *[]sparseColumn) {
	for _, t := range lc.terms {
		if t.coeff.IsZero() {
			continue
		}
		entry := Coeff{Value: t.coeff, Constraint: constraintID}
		switch t.v.Kind {
		case Input:
			(*inputs)[t.v.Index] = append((*inputs)[t.v.Index], entry)
		case Aux:
			(*aux)[t.v.Index] = append((*aux)[t.v.Index], entry)
		}
	}
}

// PushNamespace and PopNamespace exist for interface parity with gnark's
// frontend.API namespace convention; labels are discarded and never affect
// variable numbering. Only the nesting depth is counted.
func (a *Assembly) PushNamespace(string) { a.namespaceDepth++ }
func (a *Assembly) PopNamespace()        { a.namespaceDepth-- }

// Circuit is implemented by anything that can synthesize itself onto a
// constraint sink. This is the sole seam through which a circuit's body
// (out of scope for this module: see SPEC_FULL §2) is invoked.
type Circuit interface {
	Synthesize(cs *Assembly) error
}
