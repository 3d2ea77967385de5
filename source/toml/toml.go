// Package toml builds manifest documents from TOML text via
// github.com/BurntSushi/toml. Table order follows the order in which keys
// first appear in the input.
package toml

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/reoring/vistoml/tree"
)

// Decode parses data and converts it into a document.
func Decode(data string) (*tree.Document, error) {
	var raw map[string]any
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, err
	}
	c := &converter{order: map[string]int{}}
	// Implicit parent tables are not listed by MetaData.Keys, so every
	// prefix inherits the position of its first descendant.
	for i, k := range md.Keys() {
		for n := 1; n <= len(k); n++ {
			p := strings.Join(k[:n], "\x00")
			if _, seen := c.order[p]; !seen {
				c.order[p] = i
			}
		}
	}
	root, err := c.table(nil, raw)
	if err != nil {
		return nil, err
	}
	return tree.NewDocument(root), nil
}

type converter struct {
	order map[string]int
}

// position returns where path first appeared, or -1 when unknown.
func (c *converter) position(path []string) int {
	if i, ok := c.order[strings.Join(path, "\x00")]; ok {
		return i
	}
	return -1
}

// table converts m; path omits array indices so that every element of an
// array of tables shares its key order.
func (c *converter) table(path []string, m map[string]any) (*tree.Table, error) {
	path = slices.Clip(path)
	keys := slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		pa, pb := c.position(append(path, a)), c.position(append(path, b))
		switch {
		case pa < 0 && pb < 0:
			return strings.Compare(a, b)
		case pa < 0:
			return 1
		case pb < 0:
			return -1
		}
		return cmp.Or(cmp.Compare(pa, pb), strings.Compare(a, b))
	})
	t := tree.NewTable()
	for _, k := range keys {
		child := append(path, k)
		n, err := c.value(child, m[k])
		if err != nil {
			return nil, err
		}
		if err := t.Set(k, n); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (c *converter) value(path []string, v any) (tree.Node, error) {
	switch t := v.(type) {
	case map[string]any:
		return c.table(path, t)
	case []map[string]any:
		arr := tree.NewArray()
		for _, e := range t {
			n, err := c.table(path, e)
			if err != nil {
				return nil, err
			}
			arr.Append(n)
		}
		return arr, nil
	case []any:
		arr := tree.NewArray()
		for i, e := range t {
			n, err := c.value(path, e)
			if err != nil {
				return nil, fmt.Errorf("%s[%s]: %w", strings.Join(path, "."), strconv.Itoa(i), err)
			}
			arr.Append(n)
		}
		return arr, nil
	case time.Time:
		return tree.Date(t), nil
	default:
		n, err := tree.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(path, "."), err)
		}
		return n, nil
	}
}
