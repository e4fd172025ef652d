package trie

import "fmt"

// invariantViolation reports a broken internal invariant: a dangling arena
// handle, an unaligned nibble comparison, an unknown node type, a branch with
// no exits met during iteration. These are bugs, never recoverable
// conditions, so they are never surfaced as an error return (see spec §7).
// The kind of an extension's child is not checked: no call site reports an
// extension that points at another extension or at a leaf.
func invariantViolation(format string, args ...interface{}) {
	panic(fmt.Sprintf("merkle-patricia-tree: "+format, args...))
}
