// Package r1cs collects a circuit's QAP coefficients without ever touching
// a witness: it implements the constraint-system capability circuits
// synthesize against, recording which (coefficient, constraint) pairs land
// on which variable's A/B/C column.
package r1cs

import "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

// Kind distinguishes a public input variable from an auxiliary one.
type Kind uint8

const (
	// Aux marks a private (auxiliary) variable.
	Aux Kind = iota
	// Input marks a public input variable. Index 0 is always the
	// canonical "one" variable every circuit gets for free.
	Input
)

// Variable is a tagged index into one of the assembly's two variable axes.
type Variable struct {
	Kind  Kind
	Index int
}

// One is the canonical public input allocated before synthesis begins.
var One = Variable{Kind: Input, Index: 0}

// term is a single (coefficient, variable) pair in a linear combination.
type term struct {
	coeff fr.Element
	v     Variable
}

// LinearCombination accumulates terms the way circuits build up the A, B
// and C arguments to Enforce. The zero value is the empty (zero) linear
// combination.
type LinearCombination struct {
	terms []term
}

// Add appends coeff*v to the combination and returns the receiver, so
// construction can be chained: lc.Add(c1, v1).Add(c2, v2).
func (lc LinearCombination) Add(coeff fr.Element, v Variable) LinearCombination {
	lc.terms = append(lc.terms, term{coeff: coeff, v: v})
	return lc
}

// AddConstant adds coeff*One, the idiom for a plain constant term.
func (lc LinearCombination) AddConstant(coeff fr.Element) LinearCombination {
	return lc.Add(coeff, One)
}
