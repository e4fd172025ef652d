package trie

// insertAt recursively inserts (key, value) into the subtree rooted at ref
// (invalidRef meaning an empty slot), returning the ref the caller should
// use for this slot — the same ref when a node was mutated in place, a
// fresh one when the subtree's shape changed — plus the previous value for
// this key, if any.
//
// The reference implementation's per-variant insert returns a
// (Node, InsertAction) pair, where InsertAction distinguishes "link a
// brand-new node into my slot" (Insert), "I mutated myself in place"
// (Replace), and "I don't know my own arena slot yet, caller must quantize
// me" (InsertSelf) — a dance forced by Rust's ownership rules around
// constructing a value that may need to reference its own future arena
// handle (original_source/src/node.rs's quantize_self). Go has no such
// constraint: a node is only ever linked into its parent's slot by the ref
// this function returns, so the three-way distinction collapses into one
// return value — the ref to use — and the three Rust variants become,
// respectively, "return a new ref", "return the same ref", and a case that
// never arises here because no Go node ever needs to see its own handle.
func (t *Trie) insertAt(ref nodeRef, path NibbleSlice, key, value []byte) (newRef nodeRef, old []byte, hadOld bool) {
	if ref == invalidRef {
		vref := t.values.insert(storedValue{key: key, value: value})
		return t.nodes.insert(node(newLeaf(vref))), nil, false
	}
	switch nd := t.nodes.mustGet(ref).(type) {
	case *leafNode:
		return t.insertLeaf(ref, nd, path, key, value)
	case *extensionNode:
		return t.insertExtension(ref, nd, path, key, value)
	case *branchNode:
		return t.insertBranch(ref, nd, path, key, value)
	default:
		invariantViolation("insertAt: unknown node type %T", nd)
		return invalidRef, nil, false
	}
}

// insertLeaf implements spec §4.3's leaf rules, ported from
// original_source/src/nodes/leaf.rs's `insert`. `offset` there (the shared
// prefix length between the stored and incoming paths) is computed here via
// commonPrefixLen; its three branches map directly onto the cases below.
func (t *Trie) insertLeaf(ref nodeRef, leaf *leafNode, path NibbleSlice, key, value []byte) (nodeRef, []byte, bool) {
	stored := t.values.mustGet(leaf.value)
	storedPath := NewNibbleSlice(stored.key)
	storedPath.OffsetAdd(path.Offset())

	if equalRest(path, storedPath) {
		old := stored.value
		t.values.set(leaf.value, storedValue{key: stored.key, value: value})
		leaf.hash.markDirty()
		return ref, old, true
	}

	common := commonPrefixLen(path, storedPath)
	branch := newBranch()
	branchRef := t.nodes.insert(node(branch))

	newRemaining := path.Len() - common
	storedRemaining := storedPath.Len() - common

	switch {
	case newRemaining == 0:
		// The incoming key is a strict prefix of the stored key (spec §9 Open
		// Question 1: this is the "[16] before [16,0]"-shaped regression).
		// It becomes the branch's own internal value; the existing leaf is
		// demoted below the branch and keeps its arena slot, now common+1
		// nibbles deeper.
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.value = vref
		nib := nibbleAt(stored.key, path.Offset()+common)
		branch.choices[nib] = ref
		leaf.hash.markDirty()

	case storedRemaining == 0:
		// Mirror case: the stored key is a strict prefix of the incoming key.
		// The stored value becomes the branch's internal value directly (no
		// node needed for it), and a brand new leaf holds the incoming key.
		branch.value = leaf.value
		t.nodes.tryRemove(ref)
		nib := nibbleAt(key, path.Offset()+common)
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.choices[nib] = t.nodes.insert(node(newLeaf(vref)))

	default:
		// General divergence: both keys continue past the branch, each as
		// its own leaf child.
		storedNib := nibbleAt(stored.key, path.Offset()+common)
		newNib := nibbleAt(key, path.Offset()+common)
		branch.choices[storedNib] = ref
		leaf.hash.markDirty()
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.choices[newNib] = t.nodes.insert(node(newLeaf(vref)))
	}

	result := branchRef
	if common > 0 {
		prefix := make(NibbleVec, common)
		for i := range prefix {
			prefix[i] = nibbleAt(key, path.Offset()+i)
		}
		result = t.nodes.insert(node(newExtension(prefix, branchRef)))
	}
	return result, nil, false
}

// insertExtension implements spec §4.3's extension rules, ported from
// original_source/src/nodes/extension.rs's `insert`.
func (t *Trie) insertExtension(ref nodeRef, ext *extensionNode, path NibbleSlice, key, value []byte) (nodeRef, []byte, bool) {
	common := commonPrefixWithVec(path, ext.prefix)

	if common == len(ext.prefix) {
		rest := path
		rest.OffsetAdd(common)
		newChild, old, hadOld := t.insertAt(ext.child, rest, key, value)
		ext.child = newChild
		ext.hash.markDirty()
		return ref, old, hadOld
	}

	left, mid, right := splitExtractAt(ext.prefix, common)

	branch := newBranch()
	branchRef := t.nodes.insert(node(branch))

	if len(right) == 0 {
		branch.choices[mid] = ext.child
	} else {
		branch.choices[mid] = t.nodes.insert(node(newExtension(append(NibbleVec(nil), right...), ext.child)))
	}

	afterCommon := path
	afterCommon.OffsetAdd(common)
	if afterCommon.IsEmpty() {
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.value = vref
	} else {
		nib, _ := afterCommon.Next()
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.choices[nib] = t.nodes.insert(node(newLeaf(vref)))
	}

	t.nodes.tryRemove(ref)

	result := branchRef
	if len(left) > 0 {
		result = t.nodes.insert(node(newExtension(append(NibbleVec(nil), left...), branchRef)))
	}
	return result, nil, false
}

// insertBranch implements spec §4.3's branch rules, ported from
// original_source/src/nodes/branch.rs's `insert`.
func (t *Trie) insertBranch(ref nodeRef, branch *branchNode, path NibbleSlice, key, value []byte) (nodeRef, []byte, bool) {
	branch.hash.markDirty()

	if path.IsEmpty() {
		if branch.value == invalidRef {
			vref := t.values.insert(storedValue{key: key, value: value})
			branch.value = vref
			return ref, nil, false
		}
		stored := t.values.mustGet(branch.value)
		old := stored.value
		t.values.set(branch.value, storedValue{key: stored.key, value: value})
		return ref, old, true
	}

	nib, _ := path.Next()
	child := branch.choices[nib]
	if child == invalidRef {
		vref := t.values.insert(storedValue{key: key, value: value})
		branch.choices[nib] = t.nodes.insert(node(newLeaf(vref)))
		return ref, nil, false
	}

	newChild, old, hadOld := t.insertAt(child, path, key, value)
	branch.choices[nib] = newChild
	return ref, old, hadOld
}
