package yaml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vistoml/tree"
)

func TestDecode_Manifest(t *testing.T) {
	doc, err := Decode([]byte(`
dependencies:
  serde: "1.0"
  rand:
    git: https://example.com/rand
released: 2016-03-01T10:00:00Z
bin:
  - name: tool
    doc: false
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"dependencies", "released", "bin"}, doc.Root().Keys())

	deps, _ := doc.Get("dependencies")
	assert.Equal(t, []string{"serde", "rand"}, deps.(*tree.Table).Keys())

	rel, _ := doc.Get("released")
	assert.Equal(t, tree.KindDatetime, tree.KindOf(rel))

	bin, _ := doc.Get("bin")
	entry := bin.(*tree.Array).At(0).(*tree.Table)
	doc2, _ := entry.Get("doc")
	assert.Equal(t, false, doc2.(*tree.Boolean).Value)
}

func TestDecode_ScalarKinds(t *testing.T) {
	doc, err := Decode([]byte("i: 7\nf: 2.5\nb: true\ns: text\nq: \"7\"\n"))
	require.NoError(t, err)
	want := map[string]tree.Kind{
		"i": tree.KindInteger,
		"f": tree.KindFloat,
		"b": tree.KindBoolean,
		"s": tree.KindString,
		"q": tree.KindString,
	}
	for k, kind := range want {
		n, ok := doc.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, kind, tree.KindOf(n), k)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("a:\n  b: ~\n"))
	assert.True(t, errors.Is(err, ErrNull))
	assert.Contains(t, err.Error(), "a.b")

	_, err = Decode([]byte("- 1\n- 2\n"))
	assert.True(t, errors.Is(err, ErrNotMapping))

	_, err = Decode(nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}
