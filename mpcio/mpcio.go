// Package mpcio moves a ceremony State between contributors by file: the
// file-exchange coordination spec §1 keeps in scope once a network
// protocol is ruled out as a non-goal. It mirrors the teacher's own
// open/decode, create/encode ledger persistence pattern
// (zerocash/ledger.go's SaveToFile/LoadLedgerFromFile), adapted from JSON
// to the binary wire format mpc.State already defines.
package mpcio

import (
	"encoding/hex"
	"fmt"
	"os"

	"phase2/mpc"
)

// Load reads a serialized ceremony state from path, validating every
// point's curve/subgroup membership and identity-point rules on the way
// in — the safe default for a file that crossed a contributor boundary.
func Load(path string) (*mpc.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mpcio: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := mpc.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("mpcio: decode %s: %w", path, err)
	}
	return s, nil
}

// Save writes a ceremony state to path, creating or truncating it.
func Save(path string, s *mpc.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mpcio: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := s.WriteTo(f); err != nil {
		return fmt.Errorf("mpcio: encode %s: %w", path, err)
	}
	return f.Close()
}

// ReceiptHex renders a 64-byte receipt the way the teacher's main.go dumps
// hashes for human eyes (log.Printf("%x", ...)): a contributor records
// this string to later confirm their contribution made it into the chain.
func ReceiptHex(receipt [64]byte) string {
	return hex.EncodeToString(receipt[:])
}

// ParseReceiptHex parses ReceiptHex's output back into a 64-byte receipt.
func ParseReceiptHex(s string) ([64]byte, error) {
	var out [64]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("mpcio: invalid receipt hex: %w", err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("mpcio: receipt hex decodes to %d bytes, want %d", len(b), len(out))
	}
	copy(out[:], b)
	return out, nil
}
