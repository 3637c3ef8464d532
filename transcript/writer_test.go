package transcript

import (
	"bytes"
	"io"
	"testing"
)

func TestWriterForwardsAndHashes(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if buf.String() != "hello world" {
		t.Fatalf("sink got %q, want %q", buf.String(), "hello world")
	}

	sum := w.Sum()
	if len(sum) != Size {
		t.Fatalf("digest length = %d, want %d", len(sum), Size)
	}

	var zero [Size]byte
	if sum == zero {
		t.Fatal("digest should not be all-zero")
	}
}

func TestWriterDeterministic(t *testing.T) {
	a := New(io.Discard)
	b := New(io.Discard)

	a.Write([]byte("same input"))
	b.Write([]byte("same input"))

	if a.Sum() != b.Sum() {
		t.Fatal("identical input produced different digests")
	}
}

func TestForkSharesPrefix(t *testing.T) {
	base := New(io.Discard)
	base.Write([]byte("shared prefix"))

	forkA := base.Fork()
	forkB := base.Fork()

	forkA.Write([]byte("tail A"))
	forkB.Write([]byte("tail B"))

	if forkA.Sum() == forkB.Sum() {
		t.Fatal("diverging tails produced identical digests")
	}

	direct := New(io.Discard)
	direct.Write([]byte("shared prefix"))
	direct.Write([]byte("tail A"))
	if direct.Sum() != forkA.Sum() {
		t.Fatal("fork + tail did not reproduce a linear hash of the same bytes")
	}
}

func TestForkPanicsOnRealSink(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Fork to panic when sink is not io.Discard")
		}
	}()
	var buf bytes.Buffer
	New(&buf).Fork()
}
