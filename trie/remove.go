package trie

// removeAt recursively removes key's entry from the subtree rooted at ref,
// returning the ref to use for this slot (invalidRef if the subtree
// vanished entirely), the removed value, and whether anything was removed.
// Ported from original_source/src/nodes/{leaf,extension,branch}.rs's
// `remove`, with the same Go-vs-Rust simplification noted in insert.go:
// no InsertAction-style quantization is needed since every ref handed back
// here is immediately usable by the caller.
func (t *Trie) removeAt(ref nodeRef, path NibbleSlice) (newRef nodeRef, old []byte, removed bool) {
	if ref == invalidRef {
		return invalidRef, nil, false
	}
	switch nd := t.nodes.mustGet(ref).(type) {
	case *leafNode:
		return t.removeLeaf(ref, nd, path)
	case *extensionNode:
		return t.removeExtension(ref, nd, path)
	case *branchNode:
		return t.removeBranch(ref, nd, path)
	default:
		invariantViolation("removeAt: unknown node type %T", nd)
		return invalidRef, nil, false
	}
}

func (t *Trie) removeLeaf(ref nodeRef, leaf *leafNode, path NibbleSlice) (nodeRef, []byte, bool) {
	stored := t.values.mustGet(leaf.value)
	storedPath := NewNibbleSlice(stored.key)
	storedPath.OffsetAdd(path.Offset())
	if !equalRest(path, storedPath) {
		return ref, nil, false
	}
	old := stored.value
	t.values.tryRemove(leaf.value)
	t.nodes.tryRemove(ref)
	return invalidRef, old, true
}

func (t *Trie) removeExtension(ref nodeRef, ext *extensionNode, path NibbleSlice) (nodeRef, []byte, bool) {
	common := commonPrefixWithVec(path, ext.prefix)
	if common != len(ext.prefix) {
		return ref, nil, false
	}
	rest := path
	rest.OffsetAdd(common)
	newChild, old, removed := t.removeAt(ext.child, rest)
	if !removed {
		return ref, nil, false
	}
	if newChild == invalidRef {
		t.nodes.tryRemove(ref)
		return invalidRef, old, true
	}
	switch cn := t.nodes.mustGet(newChild).(type) {
	case *branchNode:
		ext.child = newChild
		ext.hash.markDirty()
		return ref, old, true
	case *leafNode:
		// An extension may never sit directly above a leaf (invariant §3.3):
		// the leaf already carries its full remaining path implicitly via
		// depth, so it simply absorbs this extension's position.
		t.nodes.tryRemove(ref)
		return newChild, old, true
	case *extensionNode:
		// Two adjoining extensions always merge into one (invariant §3.3).
		merged := append(append(NibbleVec(nil), ext.prefix...), cn.prefix...)
		t.nodes.tryRemove(ref)
		child := cn.child
		t.nodes.tryRemove(newChild)
		return t.nodes.insert(node(newExtension(merged, child))), old, true
	default:
		invariantViolation("removeExtension: unknown node type %T", cn)
		return invalidRef, nil, false
	}
}

func (t *Trie) removeBranch(ref nodeRef, branch *branchNode, path NibbleSlice) (nodeRef, []byte, bool) {
	if path.IsEmpty() {
		if branch.value == invalidRef {
			return ref, nil, false
		}
		old := t.values.mustGet(branch.value).value
		t.values.tryRemove(branch.value)
		branch.value = invalidRef
		branch.hash.markDirty()
		return t.collapseBranch(ref, branch), old, true
	}

	nib, _ := path.Next()
	child := branch.choices[nib]
	if child == invalidRef {
		return ref, nil, false
	}
	newChild, old, removed := t.removeAt(child, path)
	if !removed {
		return ref, nil, false
	}
	branch.choices[nib] = newChild
	branch.hash.markDirty()
	return t.collapseBranch(ref, branch), old, true
}

// collapseBranch enforces invariant §3.3: a live branch always has at least
// two "exits" (occupied child slots plus its own internal value, counted
// together). Ported from the single-remaining-child collapse logic in
// original_source/src/node/branch.rs's older (non-arena) `remove`, adapted
// to also fold in the internal-value exit that extension-bearing branches
// can have.
func (t *Trie) collapseBranch(ref nodeRef, branch *branchNode) nodeRef {
	childCount := branch.childCount()
	hasValue := branch.value != invalidRef
	exits := childCount
	if hasValue {
		exits++
	}

	switch {
	case exits >= 2:
		return ref
	case exits == 0:
		t.nodes.tryRemove(ref)
		return invalidRef
	default:
		t.nodes.tryRemove(ref)
		if hasValue {
			return t.nodes.insert(node(newLeaf(branch.value)))
		}
		nib, childRef, _ := branch.soleChild()
		switch cn := t.nodes.mustGet(childRef).(type) {
		case *leafNode:
			// The leaf moves up one nibble, so its cached encoding is stale.
			cn.hash.markDirty()
			return childRef
		case *branchNode:
			return t.nodes.insert(node(newExtension(NibbleVec{nib}, childRef)))
		case *extensionNode:
			merged := concatNibble(nib, cn.prefix)
			t.nodes.tryRemove(childRef)
			return t.nodes.insert(node(newExtension(merged, cn.child)))
		default:
			invariantViolation("collapseBranch: unknown node type %T", cn)
			return invalidRef
		}
	}
}
