package vistoml

import "github.com/reoring/vistoml/tree"

// Kind names used in PathError.Expected/Got.
const (
	KindString        = "string"
	KindInteger       = "integer"
	KindFloat         = "float"
	KindBoolean       = "boolean"
	KindDatetime      = "datetime"
	KindArray         = "array"
	KindTable         = "table"
	KindArrayOfTables = "array of tables"
)

// KindName returns the kind name of n. The second result is false for nil
// nodes, which a well-formed document never contains.
func KindName(n tree.Node) (string, bool) {
	switch n.(type) {
	case *tree.String, *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Array, *tree.Table:
		if k := tree.KindOf(n); k != tree.KindInvalid {
			return k.String(), true
		}
		return "", false
	default:
		return "", false
	}
}

// kindName is KindName for nodes already known to be well formed.
func kindName(n tree.Node) string {
	name, _ := KindName(n)
	return name
}

// ArrayKindName names an array by its first element ("array of integers").
// Empty arrays have no kind and yield "". The second result is false when
// the first element is nil.
func ArrayKindName(a *tree.Array) (string, bool) {
	if a.Len() == 0 {
		return "", true
	}
	switch tree.KindOf(a.At(0)) {
	case tree.KindString:
		return "array of strings", true
	case tree.KindInteger:
		return "array of integers", true
	case tree.KindFloat:
		return "array of floats", true
	case tree.KindBoolean:
		return "array of booleans", true
	case tree.KindDatetime:
		return "array of datetimes", true
	case tree.KindArray:
		return "array of arrays", true
	case tree.KindTable:
		return KindArrayOfTables, true
	default:
		return "", false
	}
}
