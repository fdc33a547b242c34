// Package intern provides a shared string table. Parsing many
// documents with recurring keys through one Table keeps a single copy
// of each distinct string.
package intern

import "sync"

// Table deduplicates strings. The zero value is ready to use and safe
// for concurrent interning.
type Table struct {
	mu sync.RWMutex
	m  map[string]string
}

func New() *Table {
	return &Table{}
}

// Intern returns the canonical copy of s, storing it on first sight.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	c, ok := t.m[s]
	t.mu.RUnlock()
	if ok {
		return c
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.m[s]; ok {
		return c
	}
	if t.m == nil {
		t.m = make(map[string]string)
	}
	t.m[s] = s
	return s
}

// Len returns the number of distinct strings held.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}
