package tree

import (
	"errors"
	"fmt"
	"iter"
)

// ErrDuplicateKey is returned by Table.Set when the key is already present.
var ErrDuplicateKey = errors.New("tree: duplicate key")

// Table maps string keys to nodes. Lookup goes through a map; iteration
// follows insertion order.
type Table struct {
	keys    []string
	entries map[string]Node
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{entries: map[string]Node{}}
}

// Get returns the node stored at key.
func (t *Table) Get(key string) (Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.entries[key]
	return n, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// All iterates over entries in insertion order.
func (t *Table) All() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if t == nil {
			return
		}
		for _, k := range t.keys {
			if !yield(k, t.entries[k]) {
				return
			}
		}
	}
}

// Set adds key to the table. Like Array.Append it exists for builders; a
// document handed to a Manifest is read-only.
func (t *Table) Set(key string, n Node) error {
	if _, dup := t.entries[key]; dup {
		return fmt.Errorf("%w %q", ErrDuplicateKey, key)
	}
	if t.entries == nil {
		t.entries = map[string]Node{}
	}
	t.keys = append(t.keys, key)
	t.entries[key] = n
	return nil
}

// Document is an already-parsed tree rooted at a table.
type Document struct {
	root *Table
}

// NewDocument wraps root. A nil root yields an empty document.
func NewDocument(root *Table) *Document {
	if root == nil {
		root = NewTable()
	}
	return &Document{root: root}
}

// Root returns the root table.
func (d *Document) Root() *Table { return d.root }

// Get looks up a top-level key.
func (d *Document) Get(key string) (Node, bool) { return d.root.Get(key) }
