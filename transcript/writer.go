// Package transcript implements the write-through hashing sink that binds
// every contribution to the ceremony's cumulative history.
package transcript

import (
	"encoding"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Size is the length in bytes of a finalized transcript digest.
const Size = 64

// Writer forwards every write to an underlying sink while folding the same
// bytes into a running BLAKE2b-512 digest. The sink may be io.Discard, in
// which case Writer only accumulates the hash.
type Writer struct {
	sink io.Writer
	h    hash.Hash
}

// New wraps sink in a transcript Writer. Pass io.Discard to build a
// hash-only sink (the common case: transcripts are never replayed to a
// file, only hashed).
func New(sink io.Writer) *Writer {
	h, err := blake2b.New512(nil)
	if err != nil {
		// blake2b.New512 only fails for an oversized key, and we pass none.
		panic(err)
	}
	if sink == nil {
		sink = io.Discard
	}
	return &Writer{sink: sink, h: h}
}

// Write implements io.Writer, hashing every byte actually forwarded.
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.sink.Write(p)
	if n > 0 {
		w.h.Write(p[:n])
	}
	return n, err
}

// Fork returns an independent Writer carrying a clone of the accumulated
// hash state, so a divergent tail can be hashed without replaying the
// shared prefix. It marshals the running digest's state and unmarshals it
// into a fresh instance — blake2b's hash.Hash implementation supports
// encoding.BinaryMarshaler/BinaryUnmarshaler precisely for this kind of
// incremental-state duplication. Fork panics if the sink is not
// io.Discard: there is no sensible way to fork a file descriptor's write
// position.
func (w *Writer) Fork() *Writer {
	if w.sink != io.Writer(io.Discard) {
		panic("transcript: Fork requires a discard sink")
	}
	state, err := w.h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic(err)
	}
	clone, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	if err := clone.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic(err)
	}
	return &Writer{sink: io.Discard, h: clone}
}

// Sum finalizes the transcript and returns its 64-byte digest. The Writer
// must not be used afterwards.
func (w *Writer) Sum() [Size]byte {
	var out [Size]byte
	copy(out[:], w.h.Sum(nil))
	return out
}
