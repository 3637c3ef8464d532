package mpc

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"phase2/transcript"
)

// sampleScalar draws fr.Bytes bytes from rng and reduces them modulo the
// scalar field, resampling on the (probability ~2^-255) zero outcome —
// the spec's Open Question on a zero delta sample, resolved in favor of
// resampling rather than propagating a failure the caller cannot act on.
func sampleScalar(rng io.Reader) (fr.Element, error) {
	buf := make([]byte, fr.Bytes)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return fr.Element{}, fmt.Errorf("mpc: sampling scalar: %w", err)
		}
		var e fr.Element
		e.SetBytes(buf)
		if !e.IsZero() {
			return e, nil
		}
	}
}

// scaleInPlace multiplies every point by scalar, chunked across workers
// with each worker owning an exclusive slice and normalizing its own
// points back to affine — the batch_exp kernel of the concurrency model,
// minus the separate normalize pass: normalizing per-point inside the
// owning goroutine gives the same result without an extra barrier.
func scaleInPlace(pts []bls12381.G1Affine, scalar fr.Element) error {
	b := scalarBigInt(scalar)
	return parallelChunks(len(pts), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			var j bls12381.G1Jac
			j.FromAffine(&pts[i])
			j.ScalarMultiplication(&j, b)
			pts[i].FromJacobian(&j)
		}
		return nil
	})
}

// Contribute runs the Contribution Engine: it samples a fresh delta from
// rng, folds a proof of knowledge of delta into the transcript, rescales
// the H and L queries by delta's inverse, and appends the resulting
// PublicKey to the chain. It returns the contributor's receipt — the
// hash of their own PublicKey — which they can later search for in a
// verified chain via ContainsContribution.
//
// The caller owns rng's determinism: ContributeRandom is the common
// entry point, using crypto/rand; tests drive Contribute directly with a
// seeded stream to reproduce a contribution deterministically.
func (s *State) Contribute(rng io.Reader) ([64]byte, error) {
	log.Info().Int("priorContributions", len(s.Contributions)).Msg("contributing to ceremony")
	var zero [64]byte

	delta, err := sampleScalar(rng)
	if err != nil {
		return zero, err
	}
	priv := PrivateKey{Delta: delta}
	defer priv.Zeroize()

	sScalar, err := sampleScalar(rng)
	if err != nil {
		return zero, err
	}
	_, _, g1Gen, _ := bls12381.Generators()
	var sPoint bls12381.G1Affine
	sPoint.ScalarMultiplication(&g1Gen, scalarBigInt(sScalar))

	var sDelta bls12381.G1Affine
	sDelta.ScalarMultiplication(&sPoint, scalarBigInt(priv.Delta))

	tw := transcript.New(io.Discard)
	if _, err := tw.Write(s.CSHash[:]); err != nil {
		return zero, err
	}
	for i := range s.Contributions {
		if err := writePublicKey(tw, &s.Contributions[i]); err != nil {
			return zero, err
		}
	}
	if err := writeG1(tw, &sPoint); err != nil {
		return zero, err
	}
	if err := writeG1(tw, &sDelta); err != nil {
		return zero, err
	}
	h := tw.Sum()

	r, err := hashToG2(h)
	if err != nil {
		return zero, err
	}
	var rDelta bls12381.G2Affine
	rDelta.ScalarMultiplication(&r, scalarBigInt(priv.Delta))

	var deltaAfter bls12381.G1Affine
	deltaAfter.ScalarMultiplication(&s.Params.VK.DeltaG1, scalarBigInt(priv.Delta))

	var deltaInv fr.Element
	deltaInv.Inverse(&priv.Delta)

	if err := scaleInPlace(s.Params.L, deltaInv); err != nil {
		return zero, fmt.Errorf("mpc: scaling L query: %w", err)
	}
	if err := scaleInPlace(s.Params.H, deltaInv); err != nil {
		return zero, fmt.Errorf("mpc: scaling H query: %w", err)
	}

	var deltaG2After bls12381.G2Affine
	deltaG2After.ScalarMultiplication(&s.Params.VK.DeltaG2, scalarBigInt(priv.Delta))
	s.Params.VK.DeltaG1 = deltaAfter
	s.Params.VK.DeltaG2 = deltaG2After

	pk := PublicKey{
		DeltaAfter: deltaAfter,
		S:          sPoint,
		SDelta:     sDelta,
		RDelta:     rDelta,
		Transcript: h,
	}
	s.Contributions = append(s.Contributions, pk)

	rw := transcript.New(io.Discard)
	if err := writePublicKey(rw, &pk); err != nil {
		return zero, err
	}
	receipt := rw.Sum()
	log.Info().Str("receipt", hex.EncodeToString(receipt[:8])).Msg("contribution recorded")
	return receipt, nil
}

// ContributeRandom is Contribute seeded from crypto/rand, the entry
// point every real contributor uses.
func (s *State) ContributeRandom() ([64]byte, error) {
	return s.Contribute(rand.Reader)
}
