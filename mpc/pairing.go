package mpc

import (
	"fmt"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/chacha20"
)

// sameRatio reports whether e(p1,q2) == e(p2,q1): the canonical test that
// dlog(p2)/dlog(p1) equals dlog(q2)/dlog(q1) without learning either
// ratio. It is evaluated as a single PairingCheck with p2 negated, so only
// one final exponentiation is paid for instead of two separate Pair
// calls compared for equality.
func sameRatio(p1, p2 bls12381.G1Affine, q1, q2 bls12381.G2Affine) (bool, error) {
	var negP2 bls12381.G1Affine
	negP2.Neg(&p2)
	return bls12381.PairingCheck(
		[]bls12381.G1Affine{p1, negP2},
		[]bls12381.G2Affine{q2, q1},
	)
}

// mergePairs randomly combines two equal-length G1 vectors into a single
// pair (S, S') such that same_ratio(S, S', ...) against the claimed
// per-element ratio holds with overwhelming probability only if every
// element-wise ratio after[i]/before[i] is identical. Each worker samples
// its own rho values (the spec's "each worker samples its own randomness"
// concurrency note) and only touches the shared accumulators once, under
// a single mutex acquisition, at the end of its chunk.
func mergePairs(before, after []bls12381.G1Affine) (bls12381.G1Affine, bls12381.G1Affine, error) {
	if len(before) != len(after) {
		return bls12381.G1Affine{}, bls12381.G1Affine{}, fmt.Errorf("mpc: mergePairs length mismatch: %d vs %d", len(before), len(after))
	}
	n := len(before)
	var globalS, globalSp bls12381.G1Jac
	if n == 0 {
		var sAff, spAff bls12381.G1Affine
		sAff.FromJacobian(&globalS)
		spAff.FromJacobian(&globalSp)
		return sAff, spAff, nil
	}

	var mu sync.Mutex
	err := parallelChunks(n, func(lo, hi int) error {
		var localS, localSp bls12381.G1Jac
		for i := lo; i < hi; i++ {
			var rho fr.Element
			if _, err := rho.SetRandom(); err != nil {
				return err
			}
			rb := scalarBigInt(rho)

			var pb, pa bls12381.G1Jac
			pb.FromAffine(&before[i])
			pb.ScalarMultiplication(&pb, rb)
			pa.FromAffine(&after[i])
			pa.ScalarMultiplication(&pa, rb)

			localS.AddAssign(&pb)
			localSp.AddAssign(&pa)
		}
		mu.Lock()
		globalS.AddAssign(&localS)
		globalSp.AddAssign(&localSp)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return bls12381.G1Affine{}, bls12381.G1Affine{}, err
	}

	var sAff, spAff bls12381.G1Affine
	sAff.FromJacobian(&globalS)
	spAff.FromJacobian(&globalSp)
	return sAff, spAff, nil
}

// hashToG2 deterministically maps a 64-byte transcript digest to a
// uniform point of G2. It is not a constant-time hash-to-curve: it seeds
// a ChaCha20 stream from the digest's first 32 bytes, reduces 32
// keystream bytes modulo the scalar field, and scales the G2 generator
// by the result. Any reimplementation must use this exact construction
// to produce interoperable contribution chains.
func hashToG2(digest [64]byte) (bls12381.G2Affine, error) {
	var seed [chacha20.KeySize]byte
	copy(seed[:], digest[:32])
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce)
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	stream := make([]byte, fr.Bytes)
	c.XORKeyStream(stream, stream)

	var scalar fr.Element
	scalar.SetBytes(stream)

	_, _, _, g2Gen := bls12381.Generators()
	var out bls12381.G2Affine
	out.ScalarMultiplication(&g2Gen, scalarBigInt(scalar))
	return out, nil
}
