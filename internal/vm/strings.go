package vm

import (
	"golang.org/x/text/unicode/norm"

	"playground/internal/source"
)

// StringTable is the runtime string heap. Every string entering it is
// normalised to NFC, so equal text compares equal by id.
type StringTable struct {
	in *source.Interner
}

// constants[0] - пустой сентинел пула, его пропускаем
func newStringTable(constants []string) *StringTable {
	t := &StringTable{in: source.NewInterner()}
	for _, s := range constants[min(1, len(constants)):] {
		t.Intern(s)
	}
	return t
}

// Intern normalises s and returns its id.
func (t *StringTable) Intern(s string) source.StringID {
	return t.in.Intern(norm.NFC.String(s))
}

// Lookup resolves a string-table reference.
func (t *StringTable) Lookup(id source.StringID) (string, bool) {
	return t.in.Lookup(id)
}

func (t *StringTable) Len() int {
	return t.in.Len() - 1
}
