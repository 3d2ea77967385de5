package tree

import (
	"iter"
	"time"
)

// Kind identifies a Node variant.
type Kind int

const (
	KindInvalid Kind = iota // nil or foreign node; never produced by this package
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindTable
)

// String returns the lower-case kind name used in error reports.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindArray:
		return "array"
	case KindTable:
		return "table"
	default:
		return "invalid"
	}
}

// Node is a closed sum type over the seven document node variants. The
// unexported marker keeps implementations inside this package.
type Node interface {
	Kind() Kind
	node()
}

// KindOf reports the kind of n, or KindInvalid when n is nil.
func KindOf(n Node) Kind {
	if n == nil {
		return KindInvalid
	}
	switch v := n.(type) {
	case *String:
		if v == nil {
			return KindInvalid
		}
	case *Integer:
		if v == nil {
			return KindInvalid
		}
	case *Float:
		if v == nil {
			return KindInvalid
		}
	case *Boolean:
		if v == nil {
			return KindInvalid
		}
	case *Datetime:
		if v == nil {
			return KindInvalid
		}
	case *Array:
		if v == nil {
			return KindInvalid
		}
	case *Table:
		if v == nil {
			return KindInvalid
		}
	}
	return n.Kind()
}

// String is a string scalar.
type String struct{ Value string }

// Integer is a 64-bit integer scalar.
type Integer struct{ Value int64 }

// Float is a 64-bit float scalar.
type Float struct{ Value float64 }

// Boolean is a boolean scalar.
type Boolean struct{ Value bool }

// Datetime is a date, time or datetime scalar.
type Datetime struct{ Value time.Time }

// Array is an ordered list of nodes. Elements need not share a kind.
type Array struct {
	elems []Node
}

func (*String) Kind() Kind   { return KindString }
func (*Integer) Kind() Kind  { return KindInteger }
func (*Float) Kind() Kind    { return KindFloat }
func (*Boolean) Kind() Kind  { return KindBoolean }
func (*Datetime) Kind() Kind { return KindDatetime }
func (*Array) Kind() Kind    { return KindArray }
func (*Table) Kind() Kind    { return KindTable }

func (*String) node()   {}
func (*Integer) node()  {}
func (*Float) node()    {}
func (*Boolean) node()  {}
func (*Datetime) node() {}
func (*Array) node()    {}
func (*Table) node()    {}

// NewArray returns an array holding elems. The slice is retained.
func NewArray(elems ...Node) *Array { return &Array{elems: elems} }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns the i-th element.
func (a *Array) At(i int) Node { return a.elems[i] }

// All iterates over the elements in order.
func (a *Array) All() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		for i, e := range a.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Append adds elements to the end of the array. It is meant for drivers
// building a document; a published document must not be mutated.
func (a *Array) Append(elems ...Node) { a.elems = append(a.elems, elems...) }
