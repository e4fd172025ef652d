package trie

import "testing"

func TestIterateEmpty(t *testing.T) {
	tr := New()
	it := tr.Iterate()
	if _, _, ok := it.Next(); ok {
		t.Fatal("iterating an empty trie should yield nothing")
	}
}

func TestIterateOrdering(t *testing.T) {
	tr := New()
	entries := map[string]string{
		"dog":   "puppy",
		"doge":  "coin",
		"do":    "verb",
		"horse": "stallion",
	}
	for k, v := range entries {
		tr.Insert([]byte(k), []byte(v))
	}

	it := tr.Iterate()
	var gotKeys []string
	seen := map[string]string{}
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		gotKeys = append(gotKeys, string(k))
		seen[string(k)] = string(v)
	}

	if len(gotKeys) != len(entries) {
		t.Fatalf("iterated %d entries, want %d", len(gotKeys), len(entries))
	}
	for k, v := range entries {
		if seen[k] != v {
			t.Fatalf("iterated value for %q = %q, want %q", k, seen[k], v)
		}
	}
	for i := 1; i < len(gotKeys); i++ {
		if gotKeys[i-1] >= gotKeys[i] {
			t.Fatalf("keys not ascending: %q then %q", gotKeys[i-1], gotKeys[i])
		}
	}
}

func TestIterateSingleEntry(t *testing.T) {
	tr := New()
	tr.Insert([]byte("only"), []byte("value"))
	it := tr.Iterate()
	k, v, ok := it.Next()
	if !ok || string(k) != "only" || string(v) != "value" {
		t.Fatalf("Next() = (%q, %q, %v), want (\"only\", \"value\", true)", k, v, ok)
	}
	if _, _, ok := it.Next(); ok {
		t.Fatal("expected iteration to end after the single entry")
	}
}

func TestIteratePrefixKeyOrdersFirst(t *testing.T) {
	tr := New()
	tr.Insert([]byte("key1"), []byte("short"))
	tr.Insert([]byte("key1aa"), []byte("long"))

	it := tr.Iterate()
	k, _, ok := it.Next()
	if !ok || string(k) != "key1" {
		t.Fatalf("first key = %q, want \"key1\" (shorter prefix sorts first)", k)
	}
	k, _, ok = it.Next()
	if !ok || string(k) != "key1aa" {
		t.Fatalf("second key = %q, want \"key1aa\"", k)
	}
}
