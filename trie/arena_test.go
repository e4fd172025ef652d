package trie

import "testing"

func TestArenaInsertGet(t *testing.T) {
	a := newArena[string]()
	r := a.insert("hello")
	got, ok := a.get(r)
	if !ok || got != "hello" {
		t.Fatalf("get(%d) = (%q, %v), want (\"hello\", true)", r, got, ok)
	}
	if a.len() != 1 {
		t.Fatalf("len() = %d, want 1", a.len())
	}
}

func TestArenaGetMissing(t *testing.T) {
	a := newArena[string]()
	if _, ok := a.get(0); ok {
		t.Fatal("get on empty arena should report absent")
	}
	if _, ok := a.get(invalidRef); ok {
		t.Fatal("get(invalidRef) should report absent")
	}
}

func TestArenaHandleReuse(t *testing.T) {
	a := newArena[int]()
	r1 := a.insert(1)
	r2 := a.insert(2)
	v, ok := a.tryRemove(r1)
	if !ok || v != 1 {
		t.Fatalf("tryRemove(r1) = (%d, %v), want (1, true)", v, ok)
	}
	if a.len() != 1 {
		t.Fatalf("len() after remove = %d, want 1", a.len())
	}
	r3 := a.insert(3)
	if r3 != r1 {
		t.Fatalf("expected freed slot %d to be reused, got %d", r1, r3)
	}
	got, ok := a.get(r2)
	if !ok || got != 2 {
		t.Fatalf("unrelated handle r2 should survive removal/reuse, got (%d, %v)", got, ok)
	}
}

func TestArenaMustGetPanicsOnDangling(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on dangling handle")
		}
	}()
	a := newArena[int]()
	a.mustGet(42)
}

func TestArenaClone(t *testing.T) {
	a := newArena[[]byte]()
	r := a.insert([]byte("abc"))
	clone := a.clone(func(b []byte) []byte { return append([]byte(nil), b...) })

	orig, _ := a.get(r)
	orig[0] = 'z'

	cloned, ok := clone.get(r)
	if !ok || string(cloned) != "abc" {
		t.Fatalf("clone should be unaffected by mutation of original, got %q", cloned)
	}
}
