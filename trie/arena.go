package trie

// invalidRef marks the absence of a handle — the Go analogue of the Rust
// original's `usize::MAX` sentinel used before a node/value has been placed
// in its arena (see original_source/src/nodes/leaf.rs's ValueRef handling).
const invalidRef = ^uint32(0)

// arena is a slab allocator: a growable slice of slots plus a free-list of
// vacated indices, so handles stay stable across unrelated insertions and
// removals and get reused rather than leaking. This replaces the Rust
// original's `slab::Slab<T>` (no Go library in the retrieved corpus exposes
// that exact stable-handle/free-list API, see DESIGN.md), using generics
// instead.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

type slot[T any] struct {
	value    T
	occupied bool
}

func newArena[T any]() *arena[T] {
	return &arena[T]{}
}

// insert places value in the arena and returns its stable handle.
func (a *arena[T]) insert(value T) uint32 {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx] = slot[T]{value: value, occupied: true}
		a.count++
		return idx
	}
	a.slots = append(a.slots, slot[T]{value: value, occupied: true})
	a.count++
	return uint32(len(a.slots) - 1)
}

// get returns the value at ref and whether it is present.
func (a *arena[T]) get(ref uint32) (T, bool) {
	if ref == invalidRef || int(ref) >= len(a.slots) || !a.slots[ref].occupied {
		var zero T
		return zero, false
	}
	return a.slots[ref].value, true
}

// mustGet returns the value at ref, panicking if it is absent — used at call
// sites where an absent handle means a corrupted tree, never a legitimate
// miss (see spec §7).
func (a *arena[T]) mustGet(ref uint32) T {
	v, ok := a.get(ref)
	if !ok {
		invariantViolation("dangling arena handle %d", ref)
	}
	return v
}

// set overwrites the value at an occupied ref.
func (a *arena[T]) set(ref uint32, value T) {
	if ref == invalidRef || int(ref) >= len(a.slots) || !a.slots[ref].occupied {
		invariantViolation("set on dangling arena handle %d", ref)
	}
	a.slots[ref].value = value
}

// tryRemove removes and returns the value at ref, freeing its slot for
// reuse. The insert/remove engine relies on this to detach a child, mutate
// it, and reinsert it under a (possibly different) handle — mirroring the
// Rust original's `nodes.try_remove(...).unwrap()` / `nodes.insert(...)`
// round-trip in nodes/branch.rs and nodes/extension.rs.
func (a *arena[T]) tryRemove(ref uint32) (T, bool) {
	var zero T
	if ref == invalidRef || int(ref) >= len(a.slots) || !a.slots[ref].occupied {
		return zero, false
	}
	v := a.slots[ref].value
	a.slots[ref] = slot[T]{}
	a.free = append(a.free, ref)
	a.count--
	return v, true
}

// len returns the number of occupied slots.
func (a *arena[T]) len() int {
	return a.count
}

// clone deep-copies the arena: every occupied slot's value is copied via
// copyFn, the free-list and slot layout are preserved so handles remain
// valid in the clone. Used by Trie.Clone (§5, supplemented in SPEC_FULL §7.2).
func (a *arena[T]) clone(copyFn func(T) T) *arena[T] {
	out := &arena[T]{
		slots: make([]slot[T], len(a.slots)),
		free:  append([]uint32(nil), a.free...),
		count: a.count,
	}
	for i, s := range a.slots {
		if s.occupied {
			out.slots[i] = slot[T]{value: copyFn(s.value), occupied: true}
		}
	}
	return out
}
