package vistoml

import "github.com/reoring/vistoml/tree"

// Dependency is one declared dependency. Optional fields are nil when
// absent. Target is nil for unconditional dependencies and names the
// platform key for entries under target.<T>.dependencies.
type Dependency struct {
	Name    string
	Version *string
	Git     *string
	Path    *string
	Target  *string
}

func simpleDependency(name string, target *string, version string) Dependency {
	return Dependency{Name: name, Version: &version, Target: target}
}

// complexDependency reads version, git and path from t. Values of the wrong
// kind are treated as absent and never reported; output target fields are
// strict by contrast.
func complexDependency(name string, target *string, t *tree.Table) Dependency {
	return Dependency{
		Name:    name,
		Version: optionalString(t, "version"),
		Git:     optionalString(t, "git"),
		Path:    optionalString(t, "path"),
		Target:  target,
	}
}

func optionalString(t *tree.Table, key string) *string {
	n, _ := t.Get(key)
	if s, ok := n.(*tree.String); ok && s != nil {
		v := s.Value
		return &v
	}
	return nil
}

// depCollector accumulates results and violations of one extraction pass.
type depCollector struct {
	deps   []Dependency
	errs   PathErrors
	broken *InvariantError
}

func (c *depCollector) invariant(path, detail string) {
	if c.broken == nil {
		c.broken = newInvariant("dependencies", path, detail)
	}
}

// collect classifies every entry of a dependencies table found at prefix.
func (c *depCollector) collect(prefix string, target *string, n tree.Node) {
	switch v := n.(type) {
	case *tree.Table:
		for name, entry := range v.All() {
			path := prefix + "." + name
			if name == "" {
				// flat records reserve the empty buffer for absent fields
				c.invariant(path, "empty dependency name")
				continue
			}
			switch e := entry.(type) {
			case *tree.String:
				if e == nil {
					c.invariant(path, "nil node")
					continue
				}
				c.deps = append(c.deps, simpleDependency(name, target, e.Value))
			case *tree.Table:
				if e == nil {
					c.invariant(path, "nil node")
					continue
				}
				c.deps = append(c.deps, complexDependency(name, target, e))
			case *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Array:
				got, ok := KindName(e)
				if !ok {
					c.invariant(path, "nil node")
					continue
				}
				c.errs = append(c.errs, PathError{Path: path, Expected: KindString, Got: got})
			default:
				c.invariant(path, "nil node")
			}
		}
	case *tree.String, *tree.Integer, *tree.Float, *tree.Boolean, *tree.Datetime, *tree.Array:
		got, ok := KindName(v)
		if !ok {
			c.invariant(prefix, "nil node")
			return
		}
		c.errs = append(c.errs, PathError{Path: prefix, Expected: KindTable, Got: got})
	default:
		c.invariant(prefix, "nil node")
	}
}

// Dependencies returns every dependency declared under the root
// dependencies table and under target.<T>.dependencies. Every violation in
// the document is collected; if there is at least one, the result is nil
// and the error is PathErrors. A broken tree, or a dependency whose name is
// the empty key, yields an *InvariantError.
func (m *Manifest) Dependencies() ([]Dependency, error) {
	c := &depCollector{}
	if n, ok := m.doc.Get("dependencies"); ok {
		c.collect("dependencies", nil, n)
	}
	if n, ok := m.doc.Get("target"); ok {
		if targets, ok := n.(*tree.Table); ok && targets != nil {
			for name, entry := range targets.All() {
				tbl, ok := entry.(*tree.Table)
				if !ok || tbl == nil {
					continue
				}
				if deps, ok := tbl.Get("dependencies"); ok {
					c.collect("target."+name+".dependencies", &name, deps)
				}
			}
		}
	}
	if c.broken != nil {
		return nil, c.broken
	}
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return c.deps, nil
}
