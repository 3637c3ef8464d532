// Package phase1 reads the Powers-of-Tau transcript a Phase-2 ceremony
// consumes as its trusted starting point. It only decodes; generating or
// verifying a Phase-1 transcript is out of scope (spec §9).
package phase1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// ErrIdentityPoint is returned when a transcript encodes the point at
// infinity where a generator-scaled point is required.
var ErrIdentityPoint = errors.New("phase1: transcript contains the identity point")

// Transcript holds the coefficients needed to evaluate a QAP of degree up
// to len(H)+1 at the ceremony's secret tau, without ever learning tau
// itself: every quantity here is already tau-scaled in the exponent.
type Transcript struct {
	AlphaG1 bls12381.G1Affine
	BetaG1  bls12381.G1Affine
	BetaG2  bls12381.G2Affine

	// CoeffsG1[i] = L_i(tau) * G1, for i in [0, m), where L_i is the i-th
	// Lagrange basis polynomial of the evaluation domain.
	CoeffsG1 []bls12381.G1Affine
	// CoeffsG2[i] = L_i(tau) * G2, for i in [0, m).
	CoeffsG2 []bls12381.G2Affine
	// AlphaCoeffsG1[i] = alpha * L_i(tau) * G1, for i in [0, m).
	AlphaCoeffsG1 []bls12381.G1Affine
	// BetaCoeffsG1[i] = beta * L_i(tau) * G1, for i in [0, m).
	BetaCoeffsG1 []bls12381.G1Affine
	// H[i] = tau^i * Z(tau) * G1 / delta, for i in [0, m-1), where Z is
	// the vanishing polynomial of the evaluation domain.
	H []bls12381.G1Affine
}

// fileName mirrors the filename convention of the original Powers-of-Tau
// ceremony tooling: one file per supported circuit depth.
func fileName(k uint) string {
	return fmt.Sprintf("phase1radix2m%d", k)
}

// Read opens phase1radix2m{k} under dir and decodes a Transcript sized for
// a domain of 2^k. The file is read through a 1MiB buffered reader; a
// transcript sized for m = 2^21 runs over a gigabyte, so unbuffered
// point-at-a-time reads would dominate wall-clock.
func Read(dir string, k uint) (*Transcript, error) {
	path := filepath.Join(dir, fileName(k))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phase1: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20)

	m := 1 << k
	t := &Transcript{}

	if err := readG1(r, &t.AlphaG1); err != nil {
		return nil, fmt.Errorf("phase1: alpha_g1: %w", err)
	}
	if err := readG1(r, &t.BetaG1); err != nil {
		return nil, fmt.Errorf("phase1: beta_g1: %w", err)
	}
	if err := readG2(r, &t.BetaG2); err != nil {
		return nil, fmt.Errorf("phase1: beta_g2: %w", err)
	}

	if t.CoeffsG1, err = readG1Slice(r, m); err != nil {
		return nil, fmt.Errorf("phase1: coeffs_g1: %w", err)
	}
	if t.CoeffsG2, err = readG2Slice(r, m); err != nil {
		return nil, fmt.Errorf("phase1: coeffs_g2: %w", err)
	}
	if t.AlphaCoeffsG1, err = readG1Slice(r, m); err != nil {
		return nil, fmt.Errorf("phase1: alpha_coeffs_g1: %w", err)
	}
	if t.BetaCoeffsG1, err = readG1Slice(r, m); err != nil {
		return nil, fmt.Errorf("phase1: beta_coeffs_g1: %w", err)
	}
	if t.H, err = readG1Slice(r, m-1); err != nil {
		return nil, fmt.Errorf("phase1: h: %w", err)
	}

	return t, nil
}

func readG1(r io.Reader, p *bls12381.G1Affine) error {
	var buf [bls12381.SizeOfG1AffineUncompressed]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	if _, err := p.SetBytes(buf[:]); err != nil {
		return err
	}
	if p.IsInfinity() {
		return ErrIdentityPoint
	}
	return nil
}

func readG2(r io.Reader, p *bls12381.G2Affine) error {
	var buf [bls12381.SizeOfG2AffineUncompressed]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	if _, err := p.SetBytes(buf[:]); err != nil {
		return err
	}
	if p.IsInfinity() {
		return ErrIdentityPoint
	}
	return nil
}

func readG1Slice(r io.Reader, n int) ([]bls12381.G1Affine, error) {
	out := make([]bls12381.G1Affine, n)
	for i := range out {
		if err := readG1(r, &out[i]); err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
	}
	return out, nil
}

func readG2Slice(r io.Reader, n int) ([]bls12381.G2Affine, error) {
	out := make([]bls12381.G2Affine, n)
	for i := range out {
		if err := readG2(r, &out[i]); err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
	}
	return out, nil
}
