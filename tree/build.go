package tree

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Str returns a string node.
func Str(v string) *String { return &String{Value: v} }

// Int returns an integer node.
func Int(v int64) *Integer { return &Integer{Value: v} }

// Flt returns a float node.
func Flt(v float64) *Float { return &Float{Value: v} }

// Bool returns a boolean node.
func Bool(v bool) *Boolean { return &Boolean{Value: v} }

// Date returns a datetime node.
func Date(v time.Time) *Datetime { return &Datetime{Value: v} }

// Arr is shorthand for NewArray.
func Arr(elems ...Node) *Array { return NewArray(elems...) }

// Entry is a key/node pair for Tbl.
type Entry struct {
	Key  string
	Node Node
}

// KV builds an Entry.
func KV(key string, n Node) Entry { return Entry{Key: key, Node: n} }

// Tbl builds a table from entries in order. A repeated key keeps the first
// value; use Table.Set to detect duplicates.
func Tbl(entries ...Entry) *Table {
	t := NewTable()
	for _, e := range entries {
		_ = t.Set(e.Key, e.Node)
	}
	return t
}

// Doc builds a document whose root holds entries.
func Doc(entries ...Entry) *Document { return NewDocument(Tbl(entries...)) }

// FromValue converts decoded Go values into nodes. Maps are emitted with
// sorted keys since Go maps carry no order.
func FromValue(v any) (Node, error) {
	switch t := v.(type) {
	case string:
		return Str(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint32:
		return Int(int64(t)), nil
	case float32:
		return Flt(float64(t)), nil
	case float64:
		return Flt(t), nil
	case time.Time:
		return Date(t), nil
	case []any:
		arr := NewArray()
		for i, e := range t {
			n, err := FromValue(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.Append(n)
		}
		return arr, nil
	case []map[string]any:
		arr := NewArray()
		for i, e := range t {
			n, err := FromValue(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.Append(n)
		}
		return arr, nil
	case map[string]any:
		tbl := NewTable()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			n, err := FromValue(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			if err := tbl.Set(k, n); err != nil {
				return nil, err
			}
		}
		return tbl, nil
	case nil:
		return nil, fmt.Errorf("tree: null has no node representation")
	default:
		return nil, fmt.Errorf("tree: unsupported value of type %T", v)
	}
}
