package trie

// iterFrame is one branch node on the path from the root to the entry the
// Iterator is currently paused on, together with the next child slot to try
// when resuming. Ported from original_source/src/iter.rs's
// NodeState{node, state}; Go has no generator/Iterator-trait syntax, so the
// Rust coroutine becomes this explicit stack plus a pull-based Next method —
// the idiomatic Go shape for a resumable traversal.
type iterFrame struct {
	ref  nodeRef
	next int // next branch choice slot to try on resume, 0..16
}

// Iterator walks a Trie's entries in ascending key order. Because nibbles
// compare numerically and a shorter key that is a prefix of a longer one
// sorts first, visiting a branch's own value (if any) before its children,
// and children in nibble order, produces keys in byte-lexicographic order.
type Iterator struct {
	t     *Trie
	stack []iterFrame
	key   []byte
	value []byte
	valid bool
}

// Iterate returns an Iterator positioned at the first entry, if any.
func (t *Trie) Iterate() *Iterator {
	it := &Iterator{t: t}
	if t.root != invalidRef {
		it.valid = it.pushAndFind(t.root)
	}
	return it
}

// Next returns the current entry and advances past it. It returns
// ok == false once the walk is exhausted.
func (it *Iterator) Next() (key, value []byte, ok bool) {
	if !it.valid {
		return nil, nil, false
	}
	key, value = it.key, it.value
	it.valid = it.advance()
	return key, value, true
}

// pushAndFind descends from ref to the next entry in order, pushing a frame
// for every branch passed through, and records that entry in it.key/it.value.
func (it *Iterator) pushAndFind(ref nodeRef) bool {
	for {
		switch nd := it.t.nodes.mustGet(ref).(type) {
		case *leafNode:
			stored := it.t.values.mustGet(nd.value)
			it.key, it.value = stored.key, stored.value
			return true
		case *extensionNode:
			ref = nd.child
		case *branchNode:
			frame := iterFrame{ref: ref}
			if nd.value != invalidRef {
				stored := it.t.values.mustGet(nd.value)
				it.key, it.value = stored.key, stored.value
				it.stack = append(it.stack, frame)
				return true
			}
			for frame.next < 16 && nd.choices[frame.next] == invalidRef {
				frame.next++
			}
			if frame.next == 16 {
				invariantViolation("iterate: branch with no value and no children")
			}
			child := nd.choices[frame.next]
			frame.next++
			it.stack = append(it.stack, frame)
			ref = child
		default:
			invariantViolation("iterate: unknown node type %T", nd)
		}
	}
}

// advance resumes the topmost unfinished branch frame, descending into its
// next occupied child, or pops exhausted frames and retries the one below.
func (it *Iterator) advance() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		branch := it.t.nodes.mustGet(top.ref).(*branchNode)
		found := false
		for top.next < 16 {
			child := branch.choices[top.next]
			top.next++
			if child != invalidRef {
				if it.pushAndFind(child) {
					found = true
				}
				break
			}
		}
		if found {
			return true
		}
		if top.next >= 16 {
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
	return false
}
