package trie

// nodeRef and valueRef are stable handles into the node and value arenas
// respectively. invalidRef denotes "no child" / "no value".
type nodeRef = uint32
type valueRef = uint32

// storedValue is what the value arena actually holds: the full original key
// (needed by leaf comparisons and by iteration to reconstruct keys) paired
// with the value bytes. The reference implementation keeps the same pairing
// in its ValuesStorage slab (original_source/src/nodes/leaf.rs).
type storedValue struct {
	key   []byte
	value []byte
}

// hashCache is the lazy, invalidatable digest slot every node variant
// carries (spec §4.4, §9 "lazy root hashing"). length == 0 means dirty —
// the cached bytes in buffer must be recomputed before use. This mirrors
// the reference implementation's `hash: (usize, Output<H>)` pair, where the
// leading usize of 0 signals "not computed", and the teacher's nodeFlag{hash,
// dirty} (trie/trie_node.go) which plays the identical caching role.
type hashCache struct {
	length int
	buffer [32]byte
}

func (h *hashCache) isDirty() bool {
	return h.length == 0
}

func (h *hashCache) get() []byte {
	return h.buffer[:h.length]
}

func (h *hashCache) set(digest []byte) {
	h.length = copy(h.buffer[:], digest)
}

// markDirty invalidates the cache. Any mutation to a node or to a node
// reachable below it must propagate this up to every ancestor still holding
// a reference to the mutated subtree (spec §9 "hash cache invalidation
// rule").
func (h *hashCache) markDirty() {
	h.length = 0
}

// node is the tagged union of trie node variants. Unlike the teacher's
// `node` interface (which carries cache()/encode()/fstring() for its
// RLP-backed DB format) this only needs a marker method: encoding lives in
// hasher.go, dispatch in insert.go/remove.go uses a type switch, matching
// the reference implementation's own `Node<P, V, H>` enum dispatch
// (original_source/src/node.rs).
type node interface {
	isNode()
}

// leafNode holds a value directly; it never has children. Its own key path
// is not stored in the node — it lives in the associated storedValue, same
// as the reference implementation's LeafNode{value_ref}.
type leafNode struct {
	value valueRef
	hash  hashCache
}

// extensionNode shares a nibble prefix among every key below it and always
// points at exactly one child, which is a branch. An extension may never
// point directly at another extension (they would merge into one) or at a
// leaf (the leaf would absorb the prefix instead) — invariant 5/6 in spec §3.3.
type extensionNode struct {
	prefix NibbleVec
	child  nodeRef
	hash   hashCache
}

// branchNode has up to 16 children, one per nibble value, plus an optional
// value for a key that terminates exactly at this depth. Invariant: a
// reachable branch always has at least two exits (two occupied children, or
// one child plus a value), otherwise insert/remove would have collapsed it (spec §3.3
// invariant 3, "branch-collapse-on-removal").
type branchNode struct {
	choices [16]nodeRef
	value   valueRef
	hash    hashCache
}

func (*leafNode) isNode()      {}
func (*extensionNode) isNode() {}
func (*branchNode) isNode()    {}

func newLeaf(value valueRef) *leafNode {
	return &leafNode{value: value}
}

func newExtension(prefix NibbleVec, child nodeRef) *extensionNode {
	return &extensionNode{prefix: prefix, child: child}
}

func newBranch() *branchNode {
	b := &branchNode{value: invalidRef}
	for i := range b.choices {
		b.choices[i] = invalidRef
	}
	return b
}

// childCount returns how many of the 16 choice slots are occupied.
func (b *branchNode) childCount() int {
	n := 0
	for _, c := range b.choices {
		if c != invalidRef {
			n++
		}
	}
	return n
}

// soleChild returns the nibble and ref of the single occupied choice slot,
// if exactly one is occupied and the branch has no internal value. Used by
// the remove engine's branch-collapse rule (spec §3.3 invariant 3).
func (b *branchNode) soleChild() (nibble Nibble, ref nodeRef, ok bool) {
	if b.value != invalidRef {
		return 0, invalidRef, false
	}
	count := 0
	var n Nibble
	var r nodeRef
	for i, c := range b.choices {
		if c != invalidRef {
			count++
			n = Nibble(i)
			r = c
		}
	}
	if count != 1 {
		return 0, invalidRef, false
	}
	return n, r, true
}
