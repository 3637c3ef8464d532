// Package mpc implements the circuit-specific Phase-2 trusted-setup MPC:
// building the initial Groth16 parameters from a circuit and a Phase-1
// transcript, extending them with a contributor's delta, and verifying a
// chain of contributions independently of any single contributor.
package mpc

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// VerifyingKey is the public material a Groth16 verifier needs. Every
// field except DeltaG1/DeltaG2 is frozen at genesis and never touched by
// a contribution.
type VerifyingKey struct {
	AlphaG1 bls12381.G1Affine
	BetaG1  bls12381.G1Affine
	BetaG2  bls12381.G2Affine
	GammaG2 bls12381.G2Affine
	DeltaG1 bls12381.G1Affine
	DeltaG2 bls12381.G2Affine
	IC      []bls12381.G1Affine
}

// Parameters is the full Groth16 parameter set a prover consumes: the
// verifying key plus the H, L, A, B_G1 and B_G2 MSM queries. A and B_G1,
// B_G2 have had identity points filtered out independently of one
// another, so their lengths need not agree.
type Parameters struct {
	VK   VerifyingKey
	H    []bls12381.G1Affine
	L    []bls12381.G1Affine
	A    []bls12381.G1Affine
	BG1  []bls12381.G1Affine
	BG2  []bls12381.G2Affine
}

// PublicKey is the record a contributor appends to the chain: the proof
// that DeltaAfter was produced by someone who knows delta, bound to the
// exact prior state via Transcript.
type PublicKey struct {
	DeltaAfter bls12381.G1Affine
	S          bls12381.G1Affine
	SDelta     bls12381.G1Affine
	RDelta     bls12381.G2Affine
	Transcript [64]byte
}

// Equal reports whether two PublicKeys encode the same contribution.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.DeltaAfter.Equal(&other.DeltaAfter) &&
		pk.S.Equal(&other.S) &&
		pk.SDelta.Equal(&other.SDelta) &&
		pk.RDelta.Equal(&other.RDelta) &&
		pk.Transcript == other.Transcript
}

// PrivateKey holds a contributor's ephemeral delta. Zeroize must be
// called as soon as a contribution is computed; a systems language would
// do this on drop, Go requires the caller to call it explicitly.
type PrivateKey struct {
	Delta fr.Element
}

// Zeroize overwrites Delta so the secret does not linger in memory after
// Contribute returns. It does not defend against anything the Go runtime
// might have copied internally (stack growth, GC moves); it is the best
// a garbage-collected language can offer toward the "destroy after use"
// invariant.
func (pk *PrivateKey) Zeroize() {
	pk.Delta.SetZero()
}

// State is one snapshot in a ceremony: the current Groth16 parameters,
// the hash binding them to the circuit that produced them, and the
// ordered chain of contributions applied so far.
type State struct {
	Params        Parameters
	CSHash        [64]byte
	Contributions []PublicKey
}
