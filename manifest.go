package vistoml

import (
	"fmt"
	"strings"

	"github.com/reoring/vistoml/tree"
)

// Manifest is a read-only view of one project manifest document. Every
// value it returns borrows from the document.
type Manifest struct {
	doc *tree.Document
}

// New wraps doc. A nil doc behaves as an empty document.
func New(doc *tree.Document) *Manifest {
	if doc == nil {
		doc = tree.NewDocument(nil)
	}
	return &Manifest{doc: doc}
}

// Document returns the wrapped document.
func (m *Manifest) Document() *tree.Document { return m.doc }

// Lookup resolves a dotted path by indexing into tables from the root.
// Failures are *QueryError values, except for an empty path (ErrEmptyPath)
// and nil nodes (*InvariantError).
func (m *Manifest) Lookup(path ...string) (tree.Node, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	var cur tree.Node = m.doc.Root()
	for depth, key := range path {
		switch node := cur.(type) {
		case *tree.Table:
			next, ok := node.Get(key)
			if !ok {
				return nil, vacant(depth)
			}
			if _, ok := KindName(next); !ok {
				return nil, newInvariant("lookup", strings.Join(path[:depth+1], "."), "nil node")
			}
			cur = next
		case *tree.String, *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Array:
			return nil, conflict(depth-1, kindName(node))
		default:
			return nil, newInvariant("lookup", strings.Join(path[:depth], "."), fmt.Sprintf("unexpected node %T", cur))
		}
	}
	return cur, nil
}

// GetString returns the string at path. A node of another kind is a
// Conflict whose Depth is the index of the last segment, len(path)-1, the
// same numbering Lookup uses for the segment that failed.
func (m *Manifest) GetString(path ...string) (string, error) {
	n, err := m.Lookup(path...)
	if err != nil {
		return "", err
	}
	if s, ok := n.(*tree.String); ok {
		return s.Value, nil
	}
	return "", conflict(len(path)-1, kindName(n))
}

// GetStringArray returns the strings of the array at path. The array kind
// is decided by its first element; an empty array yields an empty slice.
func (m *Manifest) GetStringArray(path ...string) ([]string, error) {
	n, err := m.Lookup(path...)
	if err != nil {
		return nil, err
	}
	arr, ok := n.(*tree.Array)
	if !ok {
		return nil, conflict(len(path)-1, kindName(n))
	}
	if arr.Len() == 0 {
		return []string{}, nil
	}
	name, ok := KindName(arr.At(0))
	if !ok {
		return nil, newInvariant("get string array", strings.Join(path, ".")+"[0]", "nil node")
	}
	if name != KindString {
		return nil, conflict(len(path)-1, name)
	}
	out := make([]string, 0, arr.Len())
	for i, e := range arr.All() {
		s, ok := e.(*tree.String)
		if !ok || s == nil {
			return nil, newInvariant("get string array", fmt.Sprintf("%s[%d]", strings.Join(path, "."), i),
				"element is "+tree.KindOf(e).String()+" in an array of strings")
		}
		out = append(out, s.Value)
	}
	return out, nil
}
