package mpc

import (
	"encoding/binary"
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// writeG1 writes a single point in fixed-width uncompressed affine form.
func writeG1(w io.Writer, p *bls12381.G1Affine) error {
	raw := p.RawBytes()
	_, err := w.Write(raw[:])
	return err
}

func writeG2(w io.Writer, p *bls12381.G2Affine) error {
	raw := p.RawBytes()
	_, err := w.Write(raw[:])
	return err
}

func writeG1Slice(w io.Writer, pts []bls12381.G1Affine) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(pts))); err != nil {
		return err
	}
	for i := range pts {
		if err := writeG1(w, &pts[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeG2Slice(w io.Writer, pts []bls12381.G2Affine) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(pts))); err != nil {
		return err
	}
	for i := range pts {
		if err := writeG2(w, &pts[i]); err != nil {
			return err
		}
	}
	return nil
}

// readG1 decodes a single G1 point. When checked is true, an identity
// point is rejected — the library's SetBytes always validates curve and
// subgroup membership, so "unchecked" here relaxes only the
// identity-point rule, the one check the spec ties to serialization mode
// rather than to curve arithmetic.
func readG1(r io.Reader, checked bool) (bls12381.G1Affine, error) {
	var raw [bls12381.SizeOfG1AffineUncompressed]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return bls12381.G1Affine{}, err
	}
	var p bls12381.G1Affine
	if _, err := p.SetBytes(raw[:]); err != nil {
		return bls12381.G1Affine{}, err
	}
	if checked && p.IsInfinity() {
		return bls12381.G1Affine{}, fmt.Errorf("mpc: unexpected identity point")
	}
	return p, nil
}

func readG2(r io.Reader, checked bool) (bls12381.G2Affine, error) {
	var raw [bls12381.SizeOfG2AffineUncompressed]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	var p bls12381.G2Affine
	if _, err := p.SetBytes(raw[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	if checked && p.IsInfinity() {
		return bls12381.G2Affine{}, fmt.Errorf("mpc: unexpected identity point")
	}
	return p, nil
}

func readG1Slice(r io.Reader, checked bool) ([]bls12381.G1Affine, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	out := make([]bls12381.G1Affine, n)
	for i := range out {
		p, err := readG1(r, checked)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func readG2Slice(r io.Reader, checked bool) ([]bls12381.G2Affine, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	out := make([]bls12381.G2Affine, n)
	for i := range out {
		p, err := readG2(r, checked)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = p
	}
	return out, nil
}

func writeVerifyingKey(w io.Writer, vk *VerifyingKey) error {
	for _, p := range []*bls12381.G1Affine{&vk.AlphaG1, &vk.BetaG1, &vk.DeltaG1} {
		if err := writeG1(w, p); err != nil {
			return err
		}
	}
	for _, p := range []*bls12381.G2Affine{&vk.BetaG2, &vk.GammaG2, &vk.DeltaG2} {
		if err := writeG2(w, p); err != nil {
			return err
		}
	}
	return writeG1Slice(w, vk.IC)
}

func readVerifyingKey(r io.Reader, checked bool) (VerifyingKey, error) {
	var vk VerifyingKey
	var err error
	if vk.AlphaG1, err = readG1(r, checked); err != nil {
		return vk, fmt.Errorf("alpha_g1: %w", err)
	}
	if vk.BetaG1, err = readG1(r, checked); err != nil {
		return vk, fmt.Errorf("beta_g1: %w", err)
	}
	if vk.DeltaG1, err = readG1(r, checked); err != nil {
		return vk, fmt.Errorf("delta_g1: %w", err)
	}
	if vk.BetaG2, err = readG2(r, checked); err != nil {
		return vk, fmt.Errorf("beta_g2: %w", err)
	}
	if vk.GammaG2, err = readG2(r, checked); err != nil {
		return vk, fmt.Errorf("gamma_g2: %w", err)
	}
	if vk.DeltaG2, err = readG2(r, checked); err != nil {
		return vk, fmt.Errorf("delta_g2: %w", err)
	}
	if vk.IC, err = readG1Slice(r, checked); err != nil {
		return vk, fmt.Errorf("ic: %w", err)
	}
	return vk, nil
}

// writeParameters encodes the Groth16 parameter blob: verifying key
// followed by the H, L, A, B_G1, B_G2 queries, each length-prefixed.
func writeParameters(w io.Writer, p *Parameters) error {
	if err := writeVerifyingKey(w, &p.VK); err != nil {
		return fmt.Errorf("vk: %w", err)
	}
	if err := writeG1Slice(w, p.H); err != nil {
		return fmt.Errorf("h: %w", err)
	}
	if err := writeG1Slice(w, p.L); err != nil {
		return fmt.Errorf("l: %w", err)
	}
	if err := writeG1Slice(w, p.A); err != nil {
		return fmt.Errorf("a: %w", err)
	}
	if err := writeG1Slice(w, p.BG1); err != nil {
		return fmt.Errorf("b_g1: %w", err)
	}
	if err := writeG2Slice(w, p.BG2); err != nil {
		return fmt.Errorf("b_g2: %w", err)
	}
	return nil
}

func readParameters(r io.Reader, checked bool) (Parameters, error) {
	var p Parameters
	var err error
	if p.VK, err = readVerifyingKey(r, checked); err != nil {
		return p, fmt.Errorf("vk: %w", err)
	}
	if p.H, err = readG1Slice(r, checked); err != nil {
		return p, fmt.Errorf("h: %w", err)
	}
	if p.L, err = readG1Slice(r, checked); err != nil {
		return p, fmt.Errorf("l: %w", err)
	}
	if p.A, err = readG1Slice(r, checked); err != nil {
		return p, fmt.Errorf("a: %w", err)
	}
	if p.BG1, err = readG1Slice(r, checked); err != nil {
		return p, fmt.Errorf("b_g1: %w", err)
	}
	if p.BG2, err = readG2Slice(r, checked); err != nil {
		return p, fmt.Errorf("b_g2: %w", err)
	}
	return p, nil
}

func writePublicKey(w io.Writer, pk *PublicKey) error {
	if err := writeG1(w, &pk.DeltaAfter); err != nil {
		return err
	}
	if err := writeG1(w, &pk.S); err != nil {
		return err
	}
	if err := writeG1(w, &pk.SDelta); err != nil {
		return err
	}
	if err := writeG2(w, &pk.RDelta); err != nil {
		return err
	}
	_, err := w.Write(pk.Transcript[:])
	return err
}

func readPublicKey(r io.Reader, checked bool) (PublicKey, error) {
	var pk PublicKey
	var err error
	if pk.DeltaAfter, err = readG1(r, checked); err != nil {
		return pk, fmt.Errorf("delta_after: %w", err)
	}
	if pk.S, err = readG1(r, checked); err != nil {
		return pk, fmt.Errorf("s: %w", err)
	}
	if pk.SDelta, err = readG1(r, checked); err != nil {
		return pk, fmt.Errorf("s_delta: %w", err)
	}
	if pk.RDelta, err = readG2(r, checked); err != nil {
		return pk, fmt.Errorf("r_delta: %w", err)
	}
	if _, err := io.ReadFull(r, pk.Transcript[:]); err != nil {
		return pk, fmt.Errorf("transcript: %w", err)
	}
	return pk, nil
}

// WriteTo serializes the full ceremony state: the Groth16 parameter blob,
// the 64-byte cs_hash, and the ordered contribution chain.
func (s *State) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeParameters(cw, &s.Params); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(s.CSHash[:]); err != nil {
		return cw.n, err
	}
	if err := binary.Write(cw, binary.BigEndian, uint32(len(s.Contributions))); err != nil {
		return cw.n, err
	}
	for i := range s.Contributions {
		if err := writePublicKey(cw, &s.Contributions[i]); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// ReadFrom decodes a State, validating every point's curve/subgroup
// membership and rejecting identity points wherever the wire format
// forbids them.
func ReadFrom(r io.Reader) (*State, error) {
	return readState(r, true)
}

// ReadFromUnchecked decodes a State without the identity-point rejection
// pass. Every point's curve and subgroup membership is still validated by
// the decoder; only identity points are accepted where ReadFrom rejects
// them.
func ReadFromUnchecked(r io.Reader) (*State, error) {
	return readState(r, false)
}

func readState(r io.Reader, checked bool) (*State, error) {
	var s State
	var err error
	if s.Params, err = readParameters(r, checked); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	if _, err := io.ReadFull(r, s.CSHash[:]); err != nil {
		return nil, fmt.Errorf("cs_hash: %w", err)
	}
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, fmt.Errorf("contribution count: %w", err)
	}
	s.Contributions = make([]PublicKey, n)
	for i := range s.Contributions {
		pk, err := readPublicKey(r, checked)
		if err != nil {
			return nil, fmt.Errorf("contribution %d: %w", i, err)
		}
		s.Contributions[i] = pk
	}
	return &s, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
