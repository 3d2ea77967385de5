package vistoml_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vistoml"
	js "github.com/reoring/vistoml/jsonschema"
)

func TestJSONSchema_Defaults(t *testing.T) {
	s := vistoml.JSONSchema()
	lib := s.Properties["lib"]
	require.NotNil(t, lib)
	assert.Equal(t, true, lib.Properties["doctest"].Default)

	bench := s.Properties["bench"].Items
	assert.Equal(t, false, bench.Properties["test"].Default)
	assert.Len(t, s.Properties["dependencies"].AdditionalProperties.(*js.Schema).OneOf, 2)
}

func TestJSONSchema_Marshal(t *testing.T) {
	b, err := js.Marshal(vistoml.JSONSchema())
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, js.Draft, back["$schema"])
	props := back["properties"].(map[string]any)
	for _, k := range []string{"dependencies", "target", "lib", "bin", "bench", "test", "example"} {
		assert.Contains(t, props, k)
	}
	// every section is optional in a manifest
	assert.NotContains(t, string(b), `"required"`)
}
