package mpc

import (
	"fmt"
	"io"
	"math/bits"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"phase2/phase1"
	"phase2/r1cs"
	"phase2/transcript"
)

const maxDomainBits = 21

// domainBits returns k = ceil(log2(n)) for n >= 1, the exponent the
// evaluation domain must use to hold n constraints.
func domainBits(n int) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(uint(n - 1)))
}

// New runs the Initial-Parameter Builder: it synthesizes circuit onto a
// fresh collector, evaluates the resulting QAP against a Phase-1
// transcript, and returns a State with no contributions yet applied.
func New(circuit r1cs.Circuit, phase1Dir string) (*State, error) {
	log.Info().Str("phase1Dir", phase1Dir).Msg("building initial parameters")

	asm := r1cs.NewAssembly()
	if err := circuit.Synthesize(asm); err != nil {
		return nil, fmt.Errorf("mpc: circuit synthesis: %w", err)
	}

	// Sentinel constraint Xi*0=0 for every input, guaranteeing the IC
	// query is fully populated (no variable's extension column can stay
	// entirely empty just because it never appeared on a left-hand side).
	one := oneElement()
	for i := 0; i < asm.NumInputs; i++ {
		v := r1cs.Variable{Kind: r1cs.Input, Index: i}
		asm.Enforce(
			r1cs.LinearCombination{}.Add(one, v),
			r1cs.LinearCombination{},
			r1cs.LinearCombination{},
		)
	}

	k := domainBits(asm.NumConstraints)
	if k > maxDomainBits {
		return nil, ErrDomainTooLarge
	}
	tr, err := phase1.Read(phase1Dir, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptIO, err)
	}

	icJac := make([]bls12381.G1Jac, asm.NumInputs)
	lJac := make([]bls12381.G1Jac, asm.NumAux)
	total := asm.NumInputs + asm.NumAux
	aG1Jac := make([]bls12381.G1Jac, total)
	bG1Jac := make([]bls12381.G1Jac, total)
	bG2Jac := make([]bls12381.G2Jac, total)

	evalVar := func(idx int, at, bt, ct []r1cs.Coeff, ext *bls12381.G1Jac) {
		aG1Jac[idx] = sumG1(at, tr.CoeffsG1)
		bG1Jac[idx] = sumG1(bt, tr.CoeffsG1)
		bG2Jac[idx] = sumG2(bt, tr.CoeffsG2)

		e := sumG1(at, tr.BetaCoeffsG1)
		t := sumG1(bt, tr.AlphaCoeffsG1)
		e.AddAssign(&t)
		t = sumG1(ct, tr.CoeffsG1)
		e.AddAssign(&t)
		*ext = e
	}

	if err := parallelChunks(asm.NumInputs, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			evalVar(i, asm.AtInputs[i], asm.BtInputs[i], asm.CtInputs[i], &icJac[i])
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("mpc: qap evaluation (inputs): %w", err)
	}

	if err := parallelChunks(asm.NumAux, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			evalVar(asm.NumInputs+i, asm.AtAux[i], asm.BtAux[i], asm.CtAux[i], &lJac[i])
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("mpc: qap evaluation (aux): %w", err)
	}

	l := make([]bls12381.G1Affine, asm.NumAux)
	for i := range lJac {
		l[i].FromJacobian(&lJac[i])
		if l[i].IsInfinity() {
			return nil, ErrUnconstrainedVariable
		}
	}

	ic := make([]bls12381.G1Affine, asm.NumInputs)
	for i := range icJac {
		ic[i].FromJacobian(&icJac[i])
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()

	params := Parameters{
		VK: VerifyingKey{
			AlphaG1: tr.AlphaG1,
			BetaG1:  tr.BetaG1,
			BetaG2:  tr.BetaG2,
			GammaG2: g2Gen,
			DeltaG1: g1Gen,
			DeltaG2: g2Gen,
			IC:      ic,
		},
		H:   append([]bls12381.G1Affine(nil), tr.H...),
		L:   l,
		A:   filterNonIdentityG1(aG1Jac),
		BG1: filterNonIdentityG1(bG1Jac),
		BG2: filterNonIdentityG2(bG2Jac),
	}

	tw := transcript.New(io.Discard)
	if err := writeParameters(tw, &params); err != nil {
		return nil, fmt.Errorf("mpc: hashing initial parameters: %w", err)
	}

	log.Info().Int("constraints", asm.NumConstraints).Int("domainBits", int(k)).Msg("initial parameters built")

	return &State{
		Params:        params,
		CSHash:        tw.Sum(),
		Contributions: nil,
	}, nil
}
