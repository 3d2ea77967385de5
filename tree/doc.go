// Package tree is the in-memory document model read by vistoml: tables,
// arrays and the five scalar kinds of a TOML-like file.
//
// Nodes are pointers to one of *String, *Integer, *Float, *Boolean,
// *Datetime, *Array or *Table. Type switches over Node are expected to list
// all seven and treat anything else (including nil) as KindInvalid.
//
// Construction is the job of a parser or of the source/... drivers; once a
// Document is handed out it is never mutated, so concurrent readers need no
// locking.
package tree
