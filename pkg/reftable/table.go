package reftable

import "strings"

const (
	// Unknown is returned for codes missing from a table.
	Unknown = "Unknown"

	unknownCodePrefix = "Unknown: "
)

// Entry is a single code to label mapping.
type Entry struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// Table is an immutable, ordered code to label mapping.
type Table struct {
	name    string
	entries []Entry
	index   map[string]string
}

// New builds a table from entries. Duplicate codes keep the position of their
// first occurrence and the label of their last one.
func New(name string, entries []Entry) *Table {
	t := &Table{
		name:    name,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]string, len(entries)),
	}
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.Code]; ok {
			t.entries[i].Label = e.Label
			t.index[e.Code] = e.Label
			continue
		}
		pos[e.Code] = len(t.entries)
		t.entries = append(t.entries, e)
		t.index[e.Code] = e.Label
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of distinct codes.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup returns the label for an exact code.
func (t *Table) Lookup(code string) (string, bool) {
	label, ok := t.index[code]
	return label, ok
}

// Get returns the label for code, or Unknown.
func (t *Table) Get(code string) string {
	return t.GetOr(code, Unknown)
}

// GetOr returns the label for code, or fallback.
func (t *Table) GetOr(code, fallback string) string {
	if label, ok := t.index[code]; ok {
		return label
	}
	return fallback
}

// GetOrCode returns the label for code, or "Unknown: <code>".
func (t *Table) GetOrCode(code string) string {
	return t.GetOr(code, unknownCodePrefix+code)
}

// Find resolves a partial code. It returns the label of the first entry whose
// code contains code; failing that, the first entry whose code is contained
// in code.
func (t *Table) Find(code string) (string, bool) {
	for _, e := range t.entries {
		if strings.Contains(e.Code, code) {
			return e.Label, true
		}
	}
	for _, e := range t.entries {
		if strings.Contains(code, e.Code) {
			return e.Label, true
		}
	}
	return "", false
}
