package trie

// Trie is an authenticated, persistent key-value map: a Merkle Patricia
// Trie whose root hash is a cryptographic commitment to every (key, value)
// pair it holds, computed so as to be byte-for-byte compatible with the
// canonical Ethereum MPT wire format (spec §6). Nodes and values live in
// two independent arenas (arena.go) addressed by stable integer handles;
// Trie itself only ever holds the root handle.
//
// The zero value is not usable — construct with New or NewWithHashFunc, the
// way the teacher's trie.go requires going through New/NewEmpty rather than
// a bare struct literal.
type Trie struct {
	nodes  *arena[node]
	values *arena[storedValue]
	root   nodeRef
	hashFn HashFunc
}

// New returns an empty trie using the default Keccak-256 digest.
func New() *Trie {
	return NewWithHashFunc(DefaultHashFunc)
}

// NewWithHashFunc returns an empty trie using a caller-supplied digest
// constructor (spec §6 "pluggable cryptographic digest").
func NewWithHashFunc(fn HashFunc) *Trie {
	return &Trie{
		nodes:  newArena[node](),
		values: newArena[storedValue](),
		root:   invalidRef,
		hashFn: fn,
	}
}

// IsEmpty reports whether the trie holds no entries.
func (t *Trie) IsEmpty() bool {
	return t.root == invalidRef
}

// Len returns the number of key/value pairs stored.
func (t *Trie) Len() int {
	return t.values.len()
}

// Get looks up key, returning its value and true, or (nil, false) if absent
// (spec §7: an absent key is a sentinel result, never a panic or error).
func (t *Trie) Get(key []byte) ([]byte, bool) {
	if t.root == invalidRef {
		return nil, false
	}
	return t.getAt(t.root, NewNibbleSlice(key))
}

func (t *Trie) getAt(ref nodeRef, path NibbleSlice) ([]byte, bool) {
	switch nd := t.nodes.mustGet(ref).(type) {
	case *leafNode:
		stored := t.values.mustGet(nd.value)
		storedPath := NewNibbleSlice(stored.key)
		storedPath.OffsetAdd(path.Offset())
		if equalRest(path, storedPath) {
			return stored.value, true
		}
		return nil, false
	case *extensionNode:
		common := commonPrefixWithVec(path, nd.prefix)
		if common != len(nd.prefix) {
			return nil, false
		}
		path.OffsetAdd(common)
		return t.getAt(nd.child, path)
	case *branchNode:
		if path.IsEmpty() {
			if nd.value == invalidRef {
				return nil, false
			}
			return t.values.mustGet(nd.value).value, true
		}
		nib, _ := path.Next()
		child := nd.choices[nib]
		if child == invalidRef {
			return nil, false
		}
		return t.getAt(child, path)
	default:
		invariantViolation("getAt: unknown node type %T", nd)
		return nil, false
	}
}

// Insert adds or overwrites key's value, returning the value it replaced
// (spec §7: replace returns the prior value).
func (t *Trie) Insert(key, value []byte) (old []byte, hadOld bool) {
	newRoot, old, hadOld := t.insertAt(t.root, NewNibbleSlice(key), key, value)
	t.root = newRoot
	return old, hadOld
}

// Remove deletes key's entry, returning its value and true, or (nil, false)
// if it was absent.
func (t *Trie) Remove(key []byte) (old []byte, removed bool) {
	if t.root == invalidRef {
		return nil, false
	}
	newRoot, old, removed := t.removeAt(t.root, NewNibbleSlice(key))
	t.root = newRoot
	return old, removed
}

// ComputeHash returns the trie's root hash, or (zero, false) if the trie is
// empty (spec §4.1 "compute_hash() -> Option<Digest>": an empty root has no
// hash to report, not a stand-in digest of the empty encoding).
func (t *Trie) ComputeHash() (Hash, bool) {
	if t.root == invalidRef {
		return Hash{}, false
	}
	h := newHasher(t.hashFn)
	defer returnHasherToPool(h)
	encoded := nodeEncode(t.nodes.mustGet(t.root), 0, t.nodes, t.values, h)
	return h.digest(encoded), true
}

// Clone deep-copies the trie: both arenas are copied slot-for-slot so the
// clone shares no mutable state with the original (spec §5 "arenas are
// deep-copied"). Supplemented feature — see SPEC_FULL.md §7.2.
func (t *Trie) Clone() *Trie {
	return &Trie{
		nodes:  t.nodes.clone(cloneNode),
		values: t.values.clone(cloneStoredValue),
		root:   t.root,
		hashFn: t.hashFn,
	}
}

func cloneNode(n node) node {
	switch nd := n.(type) {
	case *leafNode:
		c := *nd
		return &c
	case *extensionNode:
		c := *nd
		c.prefix = append(NibbleVec(nil), nd.prefix...)
		return &c
	case *branchNode:
		c := *nd
		return &c
	default:
		invariantViolation("cloneNode: unknown node type %T", nd)
		return nil
	}
}

func cloneStoredValue(v storedValue) storedValue {
	return storedValue{
		key:   append([]byte(nil), v.key...),
		value: append([]byte(nil), v.value...),
	}
}
