package trie

import (
	"bytes"
	"testing"
)

func TestEncodePathLeafEven(t *testing.T) {
	got := encodePath(NibbleVec{1, 2, 3, 4}, true)
	want := []byte{0x20, 0x12, 0x34}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodePath = %x, want %x", got, want)
	}
}

func TestEncodePathLeafOdd(t *testing.T) {
	got := encodePath(NibbleVec{1, 2, 3}, true)
	want := []byte{0x31, 0x23}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodePath = %x, want %x", got, want)
	}
}

func TestEncodePathExtensionEven(t *testing.T) {
	got := encodePath(NibbleVec{1, 2, 3, 4}, false)
	want := []byte{0x00, 0x12, 0x34}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodePath = %x, want %x", got, want)
	}
}

func TestEncodePathExtensionOdd(t *testing.T) {
	got := encodePath(NibbleVec{1, 2, 3}, false)
	want := []byte{0x11, 0x23}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodePath = %x, want %x", got, want)
	}
}

func TestEncodeDecodePathRoundTrip(t *testing.T) {
	cases := []struct {
		path   NibbleVec
		isLeaf bool
	}{
		{NibbleVec{}, false},
		{NibbleVec{0xf}, true},
		{NibbleVec{1, 2, 3, 4, 5}, false},
		{NibbleVec{1, 2, 3, 4}, true},
	}
	for _, c := range cases {
		enc := encodePath(c.path, c.isLeaf)
		path, isLeaf := decodePath(enc)
		if isLeaf != c.isLeaf {
			t.Fatalf("decodePath(%x) leaf flag = %v, want %v", enc, isLeaf, c.isLeaf)
		}
		if !path.equal(c.path) {
			t.Fatalf("decodePath(%x) path = %v, want %v", enc, path, c.path)
		}
	}
}

func TestEncodeByteStringSingleByte(t *testing.T) {
	got := encodeByteString([]byte{0x42})
	want := []byte{0x42}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeByteString = %x, want %x", got, want)
	}
}

func TestEncodeByteStringSingleByteHighBit(t *testing.T) {
	// A single byte >= 0x80 does NOT get the bare-byte shortcut: it still
	// needs the 0x81 length prefix, since a lone 0x80+ byte would otherwise
	// be indistinguishable from a length prefix itself.
	got := encodeByteString([]byte{0x80})
	want := []byte{0x81, 0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeByteString = %x, want %x", got, want)
	}
}

func TestEncodeByteStringEmpty(t *testing.T) {
	got := encodeByteString(nil)
	want := []byte{0x80}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeByteString(nil) = %x, want %x", got, want)
	}
}

func TestEncodeByteStringShort(t *testing.T) {
	got := encodeByteString([]byte("dog"))
	want := append([]byte{0x83}, "dog"...)
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeByteString(\"dog\") = %x, want %x", got, want)
	}
}

func TestEncodeByteStringLong(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 56)
	got := encodeByteString(data)
	want := append([]byte{0xB8, 56}, data...)
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeByteString(56 bytes)[:2] = %x, want prefix %x", got[:2], want[:2])
	}
}

func TestEncodeListShort(t *testing.T) {
	got := encodeList([]byte{0x01}, []byte{0x02})
	want := []byte{0xC2, 0x01, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeList = %x, want %x", got, want)
	}
}

func TestBigEndianMinimal(t *testing.T) {
	if got := bigEndianMinimal(56); !bytes.Equal(got, []byte{56}) {
		t.Fatalf("bigEndianMinimal(56) = %x", got)
	}
	if got := bigEndianMinimal(256); !bytes.Equal(got, []byte{1, 0}) {
		t.Fatalf("bigEndianMinimal(256) = %x", got)
	}
}
