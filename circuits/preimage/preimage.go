// Package preimage implements a second, larger example circuit: proving
// knowledge of a preimage to a small fixed-round cubing permutation,
// modeled after the teacher's MiMC-based PRF (internal/zerocash's
// mimcHash) but simplified to small deterministic round constants since
// this circuit exists to exercise domain sizing and unconstrained-variable
// rejection, not to stand in for a real hash function.
package preimage

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"phase2/r1cs"
)

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

func roundConstant(i int) fr.Element {
	return fr.NewElement(uint64(i + 2))
}

// Preimage proves knowledge of a value that, run through Rounds steps of
// x -> (x + c_i)^3, yields the public output. Each round costs three
// constraints: an addition, a squaring, and a cubing.
type Preimage struct {
	Rounds int
}

// Synthesize implements r1cs.Circuit.
func (p Preimage) Synthesize(cs *r1cs.Assembly) error {
	rounds := p.Rounds
	if rounds <= 0 {
		rounds = 4
	}
	o := one()

	cur := cs.AllocAux() // the secret preimage
	for i := 0; i < rounds; i++ {
		c := roundConstant(i)

		sum := cs.AllocAux()
		cs.Enforce(
			r1cs.LinearCombination{}.Add(o, cur).AddConstant(c),
			r1cs.LinearCombination{}.AddConstant(o),
			r1cs.LinearCombination{}.Add(o, sum),
		)

		sq := cs.AllocAux()
		cs.Enforce(
			r1cs.LinearCombination{}.Add(o, sum),
			r1cs.LinearCombination{}.Add(o, sum),
			r1cs.LinearCombination{}.Add(o, sq),
		)

		next := cs.AllocAux()
		cs.Enforce(
			r1cs.LinearCombination{}.Add(o, sq),
			r1cs.LinearCombination{}.Add(o, sum),
			r1cs.LinearCombination{}.Add(o, next),
		)
		cur = next
	}

	out := cs.AllocInput()
	cs.Enforce(
		r1cs.LinearCombination{}.Add(o, cur),
		r1cs.LinearCombination{}.AddConstant(o),
		r1cs.LinearCombination{}.Add(o, out),
	)
	return nil
}

// Broken wraps Preimage but allocates one extra auxiliary variable that
// no constraint ever touches, the circuit shape spec §8's E6 boundary
// scenario (UnconstrainedVariable rejection) is specified against.
type Broken struct {
	Preimage
}

// Synthesize implements r1cs.Circuit.
func (b Broken) Synthesize(cs *r1cs.Assembly) error {
	if err := b.Preimage.Synthesize(cs); err != nil {
		return err
	}
	cs.AllocAux()
	return nil
}
