package mpc

import (
	"bytes"
	"crypto/rand"
	"testing"

	"phase2/circuits/cuberoot"
)

func TestStateRoundTrip(t *testing.T) {
	s, _ := newGenesisWithDir(t)
	if _, err := s.Contribute(rand.Reader); err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if _, err := s.Contribute(rand.Reader); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	got, err := ReadFrom(&buf)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if got.CSHash != s.CSHash {
		t.Fatal("cs_hash changed across a serialize/deserialize round trip")
	}
	if len(got.Contributions) != len(s.Contributions) {
		t.Fatalf("contribution count = %d, want %d", len(got.Contributions), len(s.Contributions))
	}
	for i := range s.Contributions {
		if !s.Contributions[i].Equal(got.Contributions[i]) {
			t.Fatalf("contribution %d changed across round trip", i)
		}
	}
	if !frozenEqual(&s.Params, &got.Params) {
		t.Fatal("frozen parameter fields changed across round trip")
	}
	if len(got.Params.H) != len(s.Params.H) || len(got.Params.L) != len(s.Params.L) {
		t.Fatal("H/L length changed across round trip")
	}
	for i := range s.Params.H {
		if !s.Params.H[i].Equal(&got.Params.H[i]) {
			t.Fatalf("H[%d] changed across round trip", i)
		}
	}
	for i := range s.Params.L {
		if !s.Params.L[i].Equal(&got.Params.L[i]) {
			t.Fatalf("L[%d] changed across round trip", i)
		}
	}
}

func TestVerifyReturnsReceiptForEachContribution(t *testing.T) {
	s, dir := newGenesisWithDir(t)
	const n = 3
	var receipts [][64]byte
	for i := 0; i < n; i++ {
		r, err := s.Contribute(rand.Reader)
		if err != nil {
			t.Fatalf("Contribute %d: %v", i, err)
		}
		receipts = append(receipts, r)
	}

	got, err := s.Verify(cuberoot.CubeRoot{}, dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(got) != n {
		t.Fatalf("Verify returned %d receipts, want %d", len(got), n)
	}
	for i := range receipts {
		if got[i] != receipts[i] {
			t.Fatalf("receipt %d mismatch", i)
		}
	}
}
