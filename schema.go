package vistoml

import (
	js "github.com/reoring/vistoml/jsonschema"
)

// JSONSchema describes the parts of a manifest that Dependencies and
// OutputTargets check. Unknown keys are always allowed.
func JSONSchema() *js.Schema {
	str := func() *js.Schema { return &js.Schema{Type: "string"} }

	dep := &js.Schema{OneOf: []*js.Schema{
		str(),
		{
			Type: "object",
			Properties: map[string]*js.Schema{
				"version": str(),
				"git":     str(),
				"path":    str(),
			},
		},
	}}
	deps := &js.Schema{Type: "object", AdditionalProperties: dep}

	target := func(kind TargetKind) *js.Schema {
		d := DefaultTarget(kind)
		flag := func(def bool) *js.Schema { return &js.Schema{Type: "boolean", Default: def} }
		return &js.Schema{
			Type: "object",
			Properties: map[string]*js.Schema{
				"name":    str(),
				"path":    str(),
				"test":    flag(d.Test),
				"doctest": flag(d.Doctest),
				"bench":   flag(d.Bench),
				"doc":     flag(d.Doc),
				"plugin":  flag(d.Plugin),
				"harness": flag(d.Harness),
			},
		}
	}
	list := func(kind TargetKind) *js.Schema { return &js.Schema{Type: "array", Items: target(kind)} }

	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"dependencies": deps,
			"target": {
				Type: "object",
				AdditionalProperties: &js.Schema{
					Type:       "object",
					Properties: map[string]*js.Schema{"dependencies": deps},
				},
			},
			"lib":     target(TargetLib),
			"bin":     list(TargetBin),
			"bench":   list(TargetBench),
			"test":    list(TargetTest),
			"example": list(TargetExample),
		},
	}
}
