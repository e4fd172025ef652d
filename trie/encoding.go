package trie

import "encoding/binary"

// encodePath hex-prefix encodes a nibble path the way the canonical trie
// wire format does: a flag nibble (leaf bit, odd-length bit) packed into
// the top nibble of the first byte, followed by the path's nibbles packed
// two to a byte. Grounded on hexToCompact in
// PigCharid-ethereum-codeAnalysis/trie/encoding.go, adapted to operate on a
// plain NibbleVec instead of a hex array carrying an explicit 16 terminator
// entry.
func encodePath(path NibbleVec, isLeaf bool) []byte {
	var flag byte
	if isLeaf {
		flag |= 0x2
	}
	odd := len(path)%2 == 1
	if odd {
		flag |= 0x1
	}
	out := make([]byte, 0, len(path)/2+1)
	if odd {
		out = append(out, flag<<4|path[0])
		path = path[1:]
	} else {
		out = append(out, flag<<4)
	}
	for i := 0; i < len(path); i += 2 {
		out = append(out, path[i]<<4|path[i+1])
	}
	return out
}

// decodePath reverses encodePath. Not needed by the hash pipeline (hashing
// is one-way), but kept — and tested — as the symmetric counterpart the
// encoding convention implies, matching compactToHex alongside hexToCompact
// in the same teacher file.
func decodePath(enc []byte) (path NibbleVec, isLeaf bool) {
	if len(enc) == 0 {
		invariantViolation("decodePath: empty input")
	}
	flagNibble := enc[0] >> 4
	isLeaf = flagNibble&0x2 != 0
	odd := flagNibble&0x1 != 0
	path = make(NibbleVec, 0, len(enc)*2)
	if odd {
		path = append(path, enc[0]&0x0F)
	}
	for _, b := range enc[1:] {
		path = append(path, b>>4, b&0x0F)
	}
	return path, isLeaf
}

// encodeByteString frames b as an RLP-shaped byte string: a single byte
// under 0x80 is its own encoding; otherwise a length-prefixed form, short
// (0x80+n) for n <= 55 bytes, long (0xB7+lenOfLen, then the length itself,
// big-endian minimal) beyond that. Spec §4.4.
func encodeByteString(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return framed(b, 0x80, 0xB7)
}

// encodeList frames the concatenation of already-encoded items as an
// RLP-shaped list: 0xC0+n for n <= 55 content bytes, 0xF7+lenOfLen beyond
// that. Spec §4.4.
func encodeList(items ...[]byte) []byte {
	total := 0
	for _, it := range items {
		total += len(it)
	}
	content := make([]byte, 0, total)
	for _, it := range items {
		content = append(content, it...)
	}
	return framed(content, 0xC0, 0xF7)
}

func framed(content []byte, shortBase, longBase byte) []byte {
	n := len(content)
	if n < 56 {
		out := make([]byte, 0, n+1)
		out = append(out, shortBase+byte(n))
		return append(out, content...)
	}
	lenBytes := bigEndianMinimal(uint64(n))
	out := make([]byte, 0, n+1+len(lenBytes))
	out = append(out, longBase+byte(len(lenBytes)))
	out = append(out, lenBytes...)
	return append(out, content...)
}

// bigEndianMinimal returns n's big-endian representation with leading zero
// bytes stripped (but never empty — zero itself encodes as a single 0x00
// byte).
func bigEndianMinimal(n uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	i := 0
	for i < 7 && buf[i] == 0 {
		i++
	}
	return buf[i:]
}
