package mpc

import (
	"context"
	"math/big"
	"runtime"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"phase2/r1cs"
)

// chunkBounds splits [0, n) into up to workers contiguous ranges: one
// chunk per worker, no chunk crossing another's slice.
func chunkBounds(n, workers int) [][2]int {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	var out [][2]int
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

// parallelChunks runs fn over disjoint index ranges covering [0, n),
// joining at a full barrier before returning. Each worker owns its range
// exclusively; callers must not write outside [lo, hi) from within fn.
func parallelChunks(n int, fn func(lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	g, _ := errgroup.WithContext(context.Background())
	for _, c := range chunkBounds(n, runtime.NumCPU()) {
		lo, hi := c[0], c[1]
		g.Go(func() error { return fn(lo, hi) })
	}
	return g.Wait()
}

// scalarBigInt converts a field element to the big.Int form the curve
// library's scalar multiplication entry points expect.
func scalarBigInt(e fr.Element) *big.Int {
	b := new(big.Int)
	e.ToBigInt(b)
	return b
}

// sumG1 evaluates Σ coeff·basis[constraint] over a sparse column,
// accumulating in Jacobian coordinates so the running sum never pays for
// an affine normalization mid-loop.
func sumG1(terms []r1cs.Coeff, basis []bls12381.G1Affine) bls12381.G1Jac {
	var acc bls12381.G1Jac
	for _, t := range terms {
		var p bls12381.G1Jac
		p.FromAffine(&basis[t.Constraint])
		p.ScalarMultiplication(&p, scalarBigInt(t.Value))
		acc.AddAssign(&p)
	}
	return acc
}

// sumG2 is sumG1's G2 counterpart, used for the B query's G2 half.
func sumG2(terms []r1cs.Coeff, basis []bls12381.G2Affine) bls12381.G2Jac {
	var acc bls12381.G2Jac
	for _, t := range terms {
		var p bls12381.G2Jac
		p.FromAffine(&basis[t.Constraint])
		p.ScalarMultiplication(&p, scalarBigInt(t.Value))
		acc.AddAssign(&p)
	}
	return acc
}

// filterNonIdentityG1 converts each Jacobian point to affine and drops
// any that land on the identity, the MSM-query convention Groth16 provers
// rely on (spec Design Notes: "filtering identities from A/B queries").
func filterNonIdentityG1(pts []bls12381.G1Jac) []bls12381.G1Affine {
	out := make([]bls12381.G1Affine, 0, len(pts))
	for i := range pts {
		var aff bls12381.G1Affine
		aff.FromJacobian(&pts[i])
		if !aff.IsInfinity() {
			out = append(out, aff)
		}
	}
	return out
}

// filterNonIdentityG2 is filterNonIdentityG1's G2 counterpart.
func filterNonIdentityG2(pts []bls12381.G2Jac) []bls12381.G2Affine {
	out := make([]bls12381.G2Affine, 0, len(pts))
	for i := range pts {
		var aff bls12381.G2Affine
		aff.FromJacobian(&pts[i])
		if !aff.IsInfinity() {
			out = append(out, aff)
		}
	}
	return out
}

func oneElement() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}
