package mpc

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/chacha20"

	"phase2/circuits/cuberoot"
)

func newGenesis(t *testing.T) *State {
	t.Helper()
	dir := t.TempDir()
	writePhase1Fixture(t, dir, 2)
	s, err := New(cuberoot.CubeRoot{}, dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// zeroStream is a ChaCha20 keystream seeded entirely from zeros, the
// deterministic RNG spec §8 E2 means by "RNG seed = all-zero bytes" — not
// a literal stream of zero bytes, which would make sampleScalar's
// resample-on-zero loop never terminate.
type zeroStream struct {
	c *chacha20.Cipher
}

func newZeroStream(t *testing.T) *zeroStream {
	t.Helper()
	var key [chacha20.KeySize]byte
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		t.Fatalf("chacha20 cipher: %v", err)
	}
	return &zeroStream{c: c}
}

func (z *zeroStream) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	z.c.XORKeyStream(p, p)
	return len(p), nil
}

func TestContributeDeterministic(t *testing.T) {
	s1 := newGenesis(t)
	s2 := newGenesis(t)

	r1, err := s1.Contribute(newZeroStream(t))
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	r2, err := s2.Contribute(newZeroStream(t))
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if r1 != r2 {
		t.Fatal("contributing with the same RNG stream to the same genesis must be deterministic")
	}
}

func TestContributeUpdatesDeltaAndQueries(t *testing.T) {
	s := newGenesis(t)

	beforeDeltaG1 := s.Params.VK.DeltaG1
	beforeL0 := s.Params.L[0]
	beforeH0 := s.Params.H[0]

	if _, err := s.Contribute(newZeroStream(t)); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	if s.Params.VK.DeltaG1.Equal(&beforeDeltaG1) {
		t.Fatal("delta_g1 should change after a contribution")
	}
	if s.Params.L[0].Equal(&beforeL0) {
		t.Fatal("L query should be rescaled after a contribution")
	}
	if s.Params.H[0].Equal(&beforeH0) {
		t.Fatal("H query should be rescaled after a contribution")
	}
	if len(s.Contributions) != 1 {
		t.Fatalf("Contributions length = %d, want 1", len(s.Contributions))
	}
}

func TestPublicKeyInvariants(t *testing.T) {
	s := newGenesis(t)
	if _, err := s.Contribute(newZeroStream(t)); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	pk := s.Contributions[0]

	if pk.DeltaAfter.IsInfinity() || pk.S.IsInfinity() || pk.SDelta.IsInfinity() || pk.RDelta.IsInfinity() {
		t.Fatal("no field of a valid PublicKey may be the identity")
	}

	var buf bytes.Buffer
	if err := writePublicKey(&buf, &pk); err != nil {
		t.Fatalf("writePublicKey: %v", err)
	}
	got, err := readPublicKey(&buf, true)
	if err != nil {
		t.Fatalf("readPublicKey: %v", err)
	}
	if !pk.Equal(got) {
		t.Fatal("PublicKey round trip through its wire encoding changed the value")
	}
}
