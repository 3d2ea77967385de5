package vistoml

import "github.com/reoring/vistoml/tree"

// TargetKind is the kind of a build-output target.
type TargetKind string

const (
	TargetLib     TargetKind = "lib"
	TargetBin     TargetKind = "bin"
	TargetBench   TargetKind = "bench"
	TargetTest    TargetKind = "test"
	TargetExample TargetKind = "example"
)

// OutputTarget is one build-output target. The flags start from the kind's
// defaults (see DefaultTarget) and are overridden by the entry.
type OutputTarget struct {
	Kind    TargetKind
	Name    *string
	Path    *string
	Test    bool
	Doctest bool
	Bench   bool
	Doc     bool
	Plugin  bool
	Harness bool
}

// DefaultTarget returns a target of the given kind with its default flags.
func DefaultTarget(kind TargetKind) OutputTarget {
	t := OutputTarget{Kind: kind, Test: true, Bench: true, Harness: true}
	switch kind {
	case TargetLib:
		t.Doctest = true
		t.Doc = true
	case TargetBin:
		t.Doc = true
	case TargetBench:
		t.Test = false
	case TargetTest, TargetExample:
		t.Bench = false
	}
	return t
}

// readTarget applies the fields of entry to t, stopping at the first field
// of the wrong kind.
func readTarget(src string, entry *tree.Table, t OutputTarget) (OutputTarget, *PathError) {
	var perr *PathError
	str := func(field string) *string {
		if perr != nil {
			return nil
		}
		n, ok := entry.Get(field)
		if !ok {
			return nil
		}
		if s, ok := n.(*tree.String); ok && s != nil {
			v := s.Value
			return &v
		}
		perr = &PathError{Path: src + "." + field, Expected: KindString, Got: kindName(n)}
		return nil
	}
	flag := func(field string, dst *bool) {
		if perr != nil {
			return
		}
		n, ok := entry.Get(field)
		if !ok {
			return
		}
		if b, ok := n.(*tree.Boolean); ok && b != nil {
			*dst = b.Value
			return
		}
		perr = &PathError{Path: src + "." + field, Expected: KindBoolean, Got: kindName(n)}
	}
	t.Name = str("name")
	t.Path = str("path")
	flag("test", &t.Test)
	flag("doctest", &t.Doctest)
	flag("bench", &t.Bench)
	flag("doc", &t.Doc)
	flag("plugin", &t.Plugin)
	flag("harness", &t.Harness)
	if perr != nil {
		return OutputTarget{}, perr
	}
	return t, nil
}

type targetCollector struct {
	targets []OutputTarget
	errs    PathErrors
	broken  *InvariantError
}

func (c *targetCollector) invariant(path, detail string) {
	if c.broken == nil {
		c.broken = newInvariant("output targets", path, detail)
	}
}

func (c *targetCollector) table(kind TargetKind, n tree.Node) {
	src := string(kind)
	switch v := n.(type) {
	case *tree.Table:
		if v == nil {
			c.invariant(src, "nil node")
			return
		}
		for field, e := range v.All() {
			if _, ok := KindName(e); !ok {
				c.invariant(src+"."+field, "nil node")
				return
			}
		}
		t, perr := readTarget(src, v, DefaultTarget(kind))
		if perr != nil {
			c.errs = append(c.errs, *perr)
			return
		}
		c.targets = append(c.targets, t)
	case *tree.String, *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Array:
		got, ok := KindName(v)
		if !ok {
			c.invariant(src, "nil node")
			return
		}
		c.errs = append(c.errs, PathError{Path: src, Expected: KindTable, Got: got})
	default:
		c.invariant(src, "nil node")
	}
}

func (c *targetCollector) array(kind TargetKind, n tree.Node) {
	src := string(kind)
	switch v := n.(type) {
	case *tree.Array:
		if v == nil {
			c.invariant(src, "nil node")
			return
		}
		got, ok := ArrayKindName(v)
		if !ok {
			c.invariant(src+"[0]", "nil node")
			return
		}
		if got != "" && got != KindArrayOfTables {
			c.errs = append(c.errs, PathError{Path: src, Expected: KindArrayOfTables, Got: got})
			return
		}
		for _, e := range v.All() {
			c.table(kind, e)
		}
	case *tree.String, *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Table:
		got, ok := KindName(v)
		if !ok {
			c.invariant(src, "nil node")
			return
		}
		c.errs = append(c.errs, PathError{Path: src, Expected: KindArray, Got: got})
	default:
		c.invariant(src, "nil node")
	}
}

// OutputTargets returns the lib target and every bin, bench, test and
// example target, in that order. Like Dependencies, any violation turns
// the whole result into PathErrors.
func (m *Manifest) OutputTargets() ([]OutputTarget, error) {
	c := &targetCollector{}
	if n, ok := m.doc.Get("lib"); ok {
		c.table(TargetLib, n)
	}
	for _, kind := range []TargetKind{TargetBin, TargetBench, TargetTest, TargetExample} {
		if n, ok := m.doc.Get(string(kind)); ok {
			c.array(kind, n)
		}
	}
	if c.broken != nil {
		return nil, c.broken
	}
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return c.targets, nil
}
