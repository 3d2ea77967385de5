package json

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/vistoml/internal/engine"
	"github.com/reoring/vistoml/tree"
)

func TestDecode_PreservesOrderAndKinds(t *testing.T) {
	doc, err := Decode([]byte(`{
		"zeta": "1.0",
		"alpha": {"n": 3, "f": 1.5, "ok": true},
		"list": ["a", {"x": 1}]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "list"}, doc.Root().Keys())

	alpha, ok := doc.Get("alpha")
	require.True(t, ok)
	tbl := alpha.(*tree.Table)
	assert.Equal(t, []string{"n", "f", "ok"}, tbl.Keys())
	n, _ := tbl.Get("n")
	assert.Equal(t, tree.KindInteger, tree.KindOf(n))
	f, _ := tbl.Get("f")
	assert.Equal(t, tree.KindFloat, tree.KindOf(f))

	list, _ := doc.Get("list")
	arr := list.(*tree.Array)
	require.Equal(t, 2, arr.Len())
	assert.Equal(t, tree.KindTable, tree.KindOf(arr.At(1)))
}

func TestDecode_RejectsNullAndDuplicates(t *testing.T) {
	_, err := Decode([]byte(`{"a": {"b": null}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, eng.ErrNull))
	var be *eng.BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "a.b", be.Path)
	assert.Greater(t, be.Offset, int64(0))
	assert.Contains(t, be.Error(), "offset")

	_, err = Decode([]byte(`{"a": 1, "a": 2}`))
	assert.True(t, errors.Is(err, tree.ErrDuplicateKey))
}

func TestDecode_RootMustBeObject(t *testing.T) {
	_, err := Decode([]byte(`[1, 2]`))
	assert.True(t, errors.Is(err, eng.ErrNotTable))
}

func TestDecode_MaxDepth(t *testing.T) {
	_, err := Decode([]byte(`{"a": {"b": {"c": 1}}}`), Options{MaxDepth: 2})
	assert.True(t, errors.Is(err, eng.ErrMaxDepth))

	_, err = Decode([]byte(`{"a": {"b": 1}}`), Options{MaxDepth: 2})
	assert.NoError(t, err)
}
