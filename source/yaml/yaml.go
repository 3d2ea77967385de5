// Package yaml builds manifest documents from YAML via gopkg.in/yaml.v3.
// Mapping order is preserved; null values and non-string keys are errors.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/vistoml/tree"
)

var (
	ErrNotMapping = errors.New("yaml: document root is not a mapping")
	ErrNull       = errors.New("yaml: null has no document representation")
	ErrEmpty      = errors.New("yaml: empty input")
)

// Decode builds a document from the first YAML document in data.
func Decode(data []byte) (*tree.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return FromNode(&root)
}

// FromNode converts a decoded yaml.Node (document or mapping) into a
// document.
func FromNode(n *yaml.Node) (*tree.Document, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, ErrEmpty
		}
		n = n.Content[0]
	}
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w (line %d)", ErrNotMapping, n.Line)
	}
	c := &converter{}
	root, err := c.mapping(n)
	if err != nil {
		return nil, err
	}
	return tree.NewDocument(root), nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

type converter struct {
	path []string
}

func (c *converter) fail(n *yaml.Node, err error) error {
	p := strings.Join(c.path, ".")
	if p == "" {
		p = "<root>"
	}
	return fmt.Errorf("%s (line %d): %w", p, n.Line, err)
}

func (c *converter) node(n *yaml.Node) (tree.Node, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.MappingNode:
		return c.mapping(n)
	case yaml.SequenceNode:
		arr := tree.NewArray()
		for i, e := range n.Content {
			c.path = append(c.path, "["+strconv.Itoa(i)+"]")
			v, err := c.node(e)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
			c.path = c.path[:len(c.path)-1]
		}
		return arr, nil
	case yaml.ScalarNode:
		return c.scalar(n)
	default:
		return nil, c.fail(n, fmt.Errorf("yaml: unsupported node kind %d", n.Kind))
	}
}

func (c *converter) mapping(n *yaml.Node) (*tree.Table, error) {
	t := tree.NewTable()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := deref(n.Content[i]), n.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.ShortTag() == "!!null" {
			return nil, c.fail(k, errors.New("yaml: mapping keys must be scalars"))
		}
		if k.ShortTag() == "!!merge" {
			return nil, c.fail(k, errors.New("yaml: merge keys are not supported"))
		}
		c.path = append(c.path, k.Value)
		val, err := c.node(v)
		if err != nil {
			return nil, err
		}
		if err := t.Set(k.Value, val); err != nil {
			return nil, c.fail(k, err)
		}
		c.path = c.path[:len(c.path)-1]
	}
	return t, nil
}

func (c *converter) scalar(n *yaml.Node) (tree.Node, error) {
	switch n.ShortTag() {
	case "!!str", "!!binary":
		return tree.Str(n.Value), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, c.fail(n, err)
		}
		return tree.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, c.fail(n, err)
		}
		return tree.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, c.fail(n, err)
		}
		return tree.Flt(f), nil
	case "!!timestamp":
		var ts time.Time
		if err := n.Decode(&ts); err != nil {
			return nil, c.fail(n, err)
		}
		return tree.Date(ts), nil
	case "!!null":
		return nil, c.fail(n, ErrNull)
	default:
		return tree.Str(n.Value), nil
	}
}
