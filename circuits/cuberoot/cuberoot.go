// Package cuberoot implements the canonical "prove you know a cube root"
// toy circuit: given a public cube, the circuit proves knowledge of a
// root such that root^3 equals cube, without revealing root.
package cuberoot

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"phase2/r1cs"
)

// CubeRoot is the reference circuit spec §8's boundary scenarios are
// specified against. It has exactly two constraints: root*root=square,
// square*root=cube.
type CubeRoot struct{}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

// Synthesize implements r1cs.Circuit.
func (CubeRoot) Synthesize(cs *r1cs.Assembly) error {
	root := cs.AllocAux()
	square := cs.AllocAux()
	cube := cs.AllocInput()

	one := one()
	cs.Enforce(
		r1cs.LinearCombination{}.Add(one, root),
		r1cs.LinearCombination{}.Add(one, root),
		r1cs.LinearCombination{}.Add(one, square),
	)
	cs.Enforce(
		r1cs.LinearCombination{}.Add(one, square),
		r1cs.LinearCombination{}.Add(one, root),
		r1cs.LinearCombination{}.Add(one, cube),
	)
	return nil
}
