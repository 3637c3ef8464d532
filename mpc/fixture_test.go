package mpc

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// writePhase1Fixture writes a structurally valid (but not cryptographically
// meaningful) phase1radix2m{k} file: every point is a small nonzero
// multiple of its group's generator. mpc's own checks (same_ratio, PoK,
// identity rejection, length/byte-layout round trips) never depend on the
// Lagrange-basis semantics of a genuine Powers-of-Tau transcript, only on
// the wire layout spec §6 defines — so this is sufficient to exercise the
// whole package without reimplementing Phase-1 generation.
func writePhase1Fixture(t *testing.T, dir string, k uint) {
	t.Helper()
	m := 1 << k

	_, _, g1Gen, g2Gen := bls12381.Generators()
	scaledG1 := func(s int64) bls12381.G1Affine {
		var p bls12381.G1Affine
		p.ScalarMultiplication(&g1Gen, big.NewInt(s))
		return p
	}
	scaledG2 := func(s int64) bls12381.G2Affine {
		var p bls12381.G2Affine
		p.ScalarMultiplication(&g2Gen, big.NewInt(s))
		return p
	}

	path := filepath.Join(dir, fmt.Sprintf("phase1radix2m%d", k))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create phase1 fixture: %v", err)
	}
	defer f.Close()

	write := func(raw []byte) {
		if _, err := f.Write(raw); err != nil {
			t.Fatalf("write phase1 fixture: %v", err)
		}
	}
	writeG1 := func(p bls12381.G1Affine) {
		raw := p.RawBytes()
		write(raw[:])
	}
	writeG2 := func(p bls12381.G2Affine) {
		raw := p.RawBytes()
		write(raw[:])
	}

	writeG1(scaledG1(2)) // alpha_g1
	writeG1(scaledG1(3)) // beta_g1
	writeG2(scaledG2(3)) // beta_g2

	for i := 0; i < m; i++ {
		writeG1(scaledG1(int64(i + 5))) // coeffs_g1
	}
	for i := 0; i < m; i++ {
		writeG2(scaledG2(int64(i + 5))) // coeffs_g2
	}
	for i := 0; i < m; i++ {
		writeG1(scaledG1(int64(2 * (i + 5)))) // alpha_coeffs_g1
	}
	for i := 0; i < m; i++ {
		writeG1(scaledG1(int64(3 * (i + 5)))) // beta_coeffs_g1
	}
	for i := 0; i < m-1; i++ {
		writeG1(scaledG1(int64(i + 7))) // h
	}
}
