package trie

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Hash is a 32-byte digest — the trie's root hash and every non-inlined
// child reference are this width, matching the teacher's common.Hash usage
// throughout trie/trie.go.
type Hash [32]byte

// HashFunc constructs a fresh hash.Hash instance. Pluggable per spec §6: New
// uses DefaultHashFunc, NewWithHashFunc takes any other constructor.
type HashFunc func() hash.Hash

// DefaultHashFunc returns the canonical digest for the wire format: the
// pre-final-round Keccak-256 permutation, not NIST SHA3-256. Grounded on
// PigCharid-ethereum-codeAnalysis/trie/hasher.go, which calls the same
// constructor for the same reason.
func DefaultHashFunc() hash.Hash {
	return sha3.NewLegacyKeccak256()
}

// hasher holds the scratch hash.Hash used while walking a trie to compute
// its root. Pooled across calls the way
// PigCharid-ethereum-codeAnalysis/trie/hasher.go pools its hasher struct,
// since a ComputeHash call constructs one of these per invocation and a
// large trie may need thousands of digests during a single walk.
type hasher struct {
	sha hash.Hash
}

var hasherPool = sync.Pool{New: func() interface{} { return new(hasher) }}

func newHasher(fn HashFunc) *hasher {
	h := hasherPool.Get().(*hasher)
	h.sha = fn()
	return h
}

func returnHasherToPool(h *hasher) {
	h.sha = nil
	hasherPool.Put(h)
}

func (h *hasher) digest(data []byte) Hash {
	h.sha.Reset()
	h.sha.Write(data)
	var out Hash
	h.sha.Sum(out[:0])
	return out
}

// nodeReference returns the child-reference bytes for the node at ref,
// reusing its hashCache when clean and recomputing (then caching) when
// dirty. depth is the number of nibbles already consumed by ancestors,
// needed to recover a leaf's remaining path. This is the spec's "lazy root
// hashing": an unmodified subtree never re-walks its children.
//
// The cache holds either the raw encoding (when under 32 bytes) or the bare
// 32-byte digest — never the framed child reference itself, which for a
// hashed child is 33 bytes (a 1-byte length prefix plus the digest) and so
// cannot fit the fixed 32-byte buffer hashCache allocates. A cached length
// of exactly 32 is therefore unambiguous: a raw encoding that qualified for
// inlining is always under 32 bytes by construction, so length 32 can only
// mean "this is a digest, frame it before handing it to the parent."
func nodeReference(ref nodeRef, depth int, nodes *arena[node], values *arena[storedValue], h *hasher) []byte {
	n := nodes.mustGet(ref)
	cache := hashCacheOf(n)
	if cache.isDirty() {
		encoded := nodeEncode(n, depth, nodes, values, h)
		if len(encoded) < 32 {
			cache.set(encoded)
		} else {
			digest := h.digest(encoded)
			cache.set(digest[:])
		}
	}
	cached := cache.get()
	if len(cached) == 32 {
		return encodeByteString(cached)
	}
	return append([]byte(nil), cached...)
}

// hashCacheOf returns a pointer to the node's embedded hashCache regardless
// of variant, so nodeReference can check/update it generically.
func hashCacheOf(n node) *hashCache {
	switch nd := n.(type) {
	case *leafNode:
		return &nd.hash
	case *extensionNode:
		return &nd.hash
	case *branchNode:
		return &nd.hash
	default:
		invariantViolation("hashCacheOf: unknown node type %T", n)
		return nil
	}
}

// nodeEncode builds the full RLP-shaped encoding of a single node, resolving
// its children (if any) through nodeReference rather than re-walking them.
func nodeEncode(n node, depth int, nodes *arena[node], values *arena[storedValue], h *hasher) []byte {
	switch nd := n.(type) {
	case *leafNode:
		return leafEncode(nd, depth, values)
	case *extensionNode:
		return extensionEncode(nd, depth, nodes, values, h)
	case *branchNode:
		return branchEncode(nd, depth, nodes, values, h)
	default:
		invariantViolation("nodeEncode: unknown node type %T", n)
		return nil
	}
}

func leafEncode(l *leafNode, depth int, values *arena[storedValue]) []byte {
	stored := values.mustGet(l.value)
	path := NewNibbleSlice(stored.key)
	path.OffsetAdd(depth)
	remaining := path.Rest()
	return encodeList(
		encodeByteString(encodePath(remaining, true)),
		encodeByteString(stored.value),
	)
}

func extensionEncode(e *extensionNode, depth int, nodes *arena[node], values *arena[storedValue], h *hasher) []byte {
	childRef := nodeReference(e.child, depth+len(e.prefix), nodes, values, h)
	return encodeList(
		encodeByteString(encodePath(e.prefix, false)),
		childRef,
	)
}

var emptyByteString = encodeByteString(nil)

func branchEncode(b *branchNode, depth int, nodes *arena[node], values *arena[storedValue], h *hasher) []byte {
	items := make([][]byte, 0, 17)
	for _, child := range b.choices {
		if child == invalidRef {
			items = append(items, emptyByteString)
			continue
		}
		items = append(items, nodeReference(child, depth+1, nodes, values, h))
	}
	if b.value == invalidRef {
		items = append(items, emptyByteString)
	} else {
		stored := values.mustGet(b.value)
		items = append(items, encodeByteString(stored.value))
	}
	return encodeList(items...)
}
