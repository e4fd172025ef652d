package trie

// Nibble is a 4-bit value in [0, 16), half of a key byte.
type Nibble = byte

// nibbleAt returns nibble i (0-indexed, high nibble first) of data.
func nibbleAt(data []byte, i int) Nibble {
	b := data[i>>1]
	if i&1 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// NibbleSlice is a read-only cursor over a key's nibble path: a reference to
// the raw key bytes plus an offset in nibbles. It never copies the
// underlying bytes.
type NibbleSlice struct {
	data   []byte
	offset int
}

// NewNibbleSlice builds a cursor over the full nibble path derived from key,
// starting at nibble 0.
func NewNibbleSlice(key []byte) NibbleSlice {
	return NibbleSlice{data: key}
}

// Len returns the number of nibbles remaining from the current offset.
func (s NibbleSlice) Len() int {
	return len(s.data)*2 - s.offset
}

// IsEmpty reports whether the cursor has been exhausted.
func (s NibbleSlice) IsEmpty() bool {
	return s.Len() == 0
}

// Offset returns the number of nibbles already consumed.
func (s NibbleSlice) Offset() int {
	return s.offset
}

// Peek returns the next nibble without consuming it.
func (s NibbleSlice) Peek() (Nibble, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return nibbleAt(s.data, s.offset), true
}

// Next consumes and returns the next nibble.
func (s *NibbleSlice) Next() (Nibble, bool) {
	n, ok := s.Peek()
	if ok {
		s.offset++
	}
	return n, ok
}

// OffsetAdd advances the cursor by n nibbles.
func (s *NibbleSlice) OffsetAdd(n int) {
	s.offset += n
}

// Rest materializes the remaining nibbles as an owned NibbleVec.
func (s NibbleSlice) Rest() NibbleVec {
	out := make(NibbleVec, s.Len())
	for i := range out {
		out[i] = nibbleAt(s.data, s.offset+i)
	}
	return out
}

// commonPrefixLen counts matching nibbles between two slices measured from
// each slice's own current offset. Both slices must have consumed the same
// number of nibbles so far (they are cursors into siblings at the same trie
// depth); a mismatch means the caller compared unrelated paths, which is a
// bug, not a recoverable condition.
func commonPrefixLen(a, b NibbleSlice) int {
	if a.offset != b.offset {
		invariantViolation("unaligned nibble slice comparison: offsets %d and %d", a.offset, b.offset)
	}
	max := a.Len()
	if l := b.Len(); l < max {
		max = l
	}
	n := 0
	for n < max && nibbleAt(a.data, a.offset+n) == nibbleAt(b.data, b.offset+n) {
		n++
	}
	return n
}

// equalRest reports whether the remaining nibbles of a and b are identical.
// Like commonPrefixLen, it requires both cursors to be at the same offset.
func equalRest(a, b NibbleSlice) bool {
	if a.Len() != b.Len() {
		return false
	}
	return commonPrefixLen(a, b) == a.Len()
}

// commonPrefixWithVec counts matching nibbles between a slice (from its
// current offset) and an owned nibble vector, without consuming the slice.
func commonPrefixWithVec(s NibbleSlice, v NibbleVec) int {
	max := s.Len()
	if len(v) < max {
		max = len(v)
	}
	n := 0
	for n < max && nibbleAt(s.data, s.offset+n) == v[n] {
		n++
	}
	return n
}

// NibbleVec is an owned, already-expanded nibble sequence: one Nibble per
// element. Unlike the reference implementation's bit-packed vector (which
// tracks half-byte alignment flags on both ends), a Go NibbleVec has no
// alignment cases to normalize — it is just a []Nibble — so the "renormalize
// to canonical empty" rule from the original design collapses to the zero
// value of the slice (nil, len 0), which every construction path below
// already produces.
type NibbleVec []Nibble

// splitExtractAt returns the prefix before i, the nibble at i, and the
// suffix after i. Used when an extension's prefix must be split around the
// first mismatching nibble.
func splitExtractAt(v NibbleVec, i int) (left NibbleVec, mid Nibble, right NibbleVec) {
	return v[:i], v[i], v[i+1:]
}

// equal reports whether two nibble vectors hold the same nibbles.
func (v NibbleVec) equal(other NibbleVec) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// concatNibble returns a freshly allocated vector holding nibble n followed
// by rest — used when a branch collapses and its slot nibble must
// be prepended to the surviving extension's prefix.
func concatNibble(n Nibble, rest NibbleVec) NibbleVec {
	out := make(NibbleVec, 0, len(rest)+1)
	out = append(out, n)
	out = append(out, rest...)
	return out
}
