package mpcio

import (
	"crypto/rand"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"phase2/circuits/cuberoot"
	"phase2/mpc"
)

func writePhase1Fixture(t *testing.T, dir string, k uint) {
	t.Helper()
	if k != 2 {
		t.Fatalf("fixture helper only supports k=2, got %d", k)
	}
	m := 1 << k

	_, _, g1Gen, g2Gen := bls12381.Generators()
	path := filepath.Join(dir, "phase1radix2m2")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	writeG1 := func(s int64) {
		var p bls12381.G1Affine
		p.ScalarMultiplication(&g1Gen, big.NewInt(s))
		raw := p.RawBytes()
		f.Write(raw[:])
	}
	writeG2 := func(s int64) {
		var p bls12381.G2Affine
		p.ScalarMultiplication(&g2Gen, big.NewInt(s))
		raw := p.RawBytes()
		f.Write(raw[:])
	}

	writeG1(2) // alpha_g1
	writeG1(3) // beta_g1
	writeG2(3) // beta_g2
	for i := 0; i < m; i++ {
		writeG1(int64(i + 5))
	}
	for i := 0; i < m; i++ {
		writeG2(int64(i + 5))
	}
	for i := 0; i < m; i++ {
		writeG1(int64(2 * (i + 5)))
	}
	for i := 0; i < m; i++ {
		writeG1(int64(3 * (i + 5)))
	}
	for i := 0; i < m-1; i++ {
		writeG1(int64(i + 7))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writePhase1Fixture(t, dir, 2)

	s, err := mpc.New(cuberoot.CubeRoot{}, dir)
	if err != nil {
		t.Fatalf("mpc.New: %v", err)
	}
	if _, err := s.ContributeRandom(); err != nil {
		t.Fatalf("ContributeRandom: %v", err)
	}

	path := filepath.Join(dir, "state.bin")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CSHash != s.CSHash {
		t.Fatal("cs_hash changed across Save/Load round trip")
	}
	if len(got.Contributions) != len(s.Contributions) {
		t.Fatalf("contribution count = %d, want %d", len(got.Contributions), len(s.Contributions))
	}
}

func TestReceiptHexRoundTrip(t *testing.T) {
	var receipt [64]byte
	if _, err := rand.Read(receipt[:]); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}

	s := ReceiptHex(receipt)
	got, err := ParseReceiptHex(s)
	if err != nil {
		t.Fatalf("ParseReceiptHex: %v", err)
	}
	if got != receipt {
		t.Fatal("receipt changed across hex round trip")
	}
}

func TestParseReceiptHexRejectsWrongLength(t *testing.T) {
	if _, err := ParseReceiptHex("deadbeef"); err == nil {
		t.Fatal("expected an error for a too-short receipt")
	}
}
