// Package capi is the foreign-call boundary of vistoml.
//
// Results cross the boundary as flat {handle, int32 length} buffers with an
// explicit ownership discipline:
//
//   - OwnedSlice: a fresh copy whose ownership moves to the caller. The
//     caller releases it exactly once (Free* or Release). Releasing the
//     empty buffer is a no-op; releasing twice is detected and reported
//     as StatusInvalidHandle/ErrReleased.
//   - BorrowedSlice: an alias of document memory registered under the
//     lease of an open manifest. It is never released and stops resolving
//     (ErrExpired) once CloseManifest runs.
//
// Go memory cannot be handed out as raw pointers, so handles index a table
// owned by the Runtime. Every entry point is wrapped so that a panic or a
// violated invariant comes back as StatusFailed, distinct from
// StatusSchemaError and StatusQueryError.
package capi
