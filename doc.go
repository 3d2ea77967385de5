// Package vistoml reads project metadata out of an already-parsed manifest
// document.
//
// It provides:
//
// - Dotted-path lookup with Vacant/Conflict reporting (Manifest.Lookup, GetString, GetStringArray)
// - Dependency extraction, including target.<triple>.dependencies (Manifest.Dependencies)
// - Build-output target extraction with per-kind flag defaults (Manifest.OutputTargets)
// - A JSON Schema description of the manifest shape that is checked (JSONSchema)
//
// Extractors never fail fast: every violation in the document is collected
// into PathErrors, and a pass with any violation returns no results.
// Violated invariants (a nil node in the tree) are reported as
// *InvariantError, which unwraps to ErrInternal.
//
// Design policy:
// - Keep only public APIs in the root package; the document model lives in tree/.
// - Document construction from TOML/JSON/YAML lives under source/.
// - The foreign-call boundary (owned/borrowed buffers, failure containment) lives in capi/.
//
// Typical usage:
//
//	doc, err := toml.Decode(data)
//	m := vistoml.New(doc)
//	deps, err := m.Dependencies()
//	if pe, ok := vistoml.AsPathErrors(err); ok {
//		// report every violation
//	}
package vistoml
