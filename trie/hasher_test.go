package trie

import (
	"encoding/hex"
	"testing"
)

func TestDefaultHashFuncKnownEmptyInput(t *testing.T) {
	h := newHasher(DefaultHashFunc)
	defer returnHasherToPool(h)
	got := h.digest(nil)
	want, _ := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if hex.EncodeToString(got[:]) != hex.EncodeToString(want) {
		t.Fatalf("Keccak256(\"\") = %x, want %x", got, want)
	}
}

// TestNodeReferenceInlinesShortLeaf exercises nodeReference's inlining rule
// (spec §4.4 "child hash-reference inlining") end to end: a leaf whose own
// encoding is short enough is embedded verbatim rather than hashed.
func TestNodeReferenceInlinesShortLeaf(t *testing.T) {
	tr := New()
	tr.Insert([]byte{0x01}, []byte{0x02})

	h := newHasher(DefaultHashFunc)
	defer returnHasherToPool(h)
	ref := nodeReference(tr.root, 0, tr.nodes, tr.values, h)
	encoded := nodeEncode(tr.nodes.mustGet(tr.root), 0, tr.nodes, tr.values, h)
	if len(encoded) >= 32 {
		t.Fatalf("test setup: expected a short leaf encoding, got %d bytes", len(encoded))
	}
	if string(ref) != string(encoded) {
		t.Fatalf("nodeReference of a short encoding should inline verbatim, got %x, want %x", ref, encoded)
	}
}

// TestNodeReferenceHashesLongLeaf exercises the other side of the same rule:
// a node whose encoding is at least 32 bytes is referenced by its framed
// digest, not embedded.
func TestNodeReferenceHashesLongLeaf(t *testing.T) {
	tr := New()
	tr.Insert([]byte("a long enough key to force hashing"), []byte("a long enough value to force hashing, well past 32 bytes"))

	h := newHasher(DefaultHashFunc)
	defer returnHasherToPool(h)
	ref := nodeReference(tr.root, 0, tr.nodes, tr.values, h)
	// A 32-byte digest wrapped as a byte string is 33 bytes: 0x80+32, then 32 digest bytes.
	if len(ref) != 33 || ref[0] != 0xA0 {
		t.Fatalf("nodeReference of a long encoding should be a framed 32-byte digest, got %x (len %d)", ref, len(ref))
	}
}
