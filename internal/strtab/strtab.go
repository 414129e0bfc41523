// Package strtab interns strings into small numeric handles. Every place
// the IR or trigger format wants a string - a display message, a WAV
// filename, a mission objectives blurb - carries a uint32 id instead of
// the string itself; this package is where that id is minted and resolved
// back.
package strtab

import "github.com/dolthub/swiss"

// Table is an append-only string interner: the same string always maps to
// the same id, and ids are handed out in first-seen order so a downstream
// STR chunk writer can serialize Strings() directly by index.
type Table struct {
	ids     *swiss.Map[string, uint32]
	strings []string
}

// New returns an empty table sized for an initial capacity hint.
func New(sizeHint int) *Table {
	if sizeHint < 1 {
		sizeHint = 1
	}
	return &Table{ids: swiss.NewMap[string, uint32](uint32(sizeHint))}
}

// Intern returns s's handle, minting a new one the first time s is seen.
func (t *Table) Intern(s string) uint32 {
	if id, ok := t.ids.Get(s); ok {
		return id
	}
	id := uint32(len(t.strings))
	t.strings = append(t.strings, s)
	t.ids.Put(s, id)
	return id
}

// Lookup resolves a handle back to its string.
func (t *Table) Lookup(id uint32) (string, bool) {
	if int(id) >= len(t.strings) {
		return "", false
	}
	return t.strings[id], true
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int { return len(t.strings) }

// Strings returns every interned string in handle order (index i has
// handle i), ready for a STR chunk writer to serialize as-is.
func (t *Table) Strings() []string {
	out := make([]string, len(t.strings))
	copy(out, t.strings)
	return out
}
