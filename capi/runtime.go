package capi

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/reoring/vistoml"
	"github.com/reoring/vistoml/tree"
)

// ManifestHandle identifies a manifest opened on a Runtime. Zero is never
// issued.
type ManifestHandle uint64

type openManifest struct {
	m     *vistoml.Manifest
	lease *lease
}

// Runtime owns the handle table for buffers and manifests. It is safe for
// concurrent use.
type Runtime struct {
	cfg  Config
	log  *slog.Logger
	heap *heap

	mu        sync.Mutex
	next      ManifestHandle
	manifests map[ManifestHandle]*openManifest
}

// New returns a Runtime configured by cfg.
func New(cfg Config) *Runtime {
	if cfg.Logger == nil {
		cfg.Logger = defaultLogger()
	}
	return &Runtime{
		cfg:       cfg,
		log:       cfg.Logger,
		heap:      newHeap(),
		manifests: map[ManifestHandle]*openManifest{},
	}
}

var defaultRuntime = sync.OnceValue(func() *Runtime { return New(ConfigFromEnv()) })

// Default returns the process-wide Runtime, configured from the
// environment on first use.
func Default() *Runtime { return defaultRuntime() }

// LiveBuffers reports how many owned buffers have not been released.
func (rt *Runtime) LiveBuffers() int { return rt.heap.live() }

func (rt *Runtime) manifest(h ManifestHandle) (*openManifest, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	om, ok := rt.manifests[h]
	return om, ok
}

// OpenManifest wraps doc and writes its handle to out. The document must
// stay unmodified until CloseManifest. A nil doc is StatusInvalidArgument;
// out is left untouched on any failure.
func (rt *Runtime) OpenManifest(doc *tree.Document, out *ManifestHandle) Status {
	const op = "open manifest"
	return rt.contain(op, func() Status {
		if doc == nil || out == nil {
			return rt.fail(op, ErrNilArgument)
		}
		rt.mu.Lock()
		defer rt.mu.Unlock()
		rt.next++
		h := rt.next
		rt.manifests[h] = &openManifest{m: vistoml.New(doc), lease: rt.heap.newLease()}
		rt.log.Debug("capi: manifest opened", "handle", uint64(h))
		*out = h
		return StatusOK
	})
}

// CloseManifest ends the manifest and expires every buffer borrowed from
// it. Owned buffers are unaffected.
func (rt *Runtime) CloseManifest(h ManifestHandle) Status {
	return rt.contain("close manifest", func() Status {
		rt.mu.Lock()
		om, ok := rt.manifests[h]
		delete(rt.manifests, h)
		rt.mu.Unlock()
		if !ok {
			return rt.fail("close manifest", ErrInvalidHandle)
		}
		rt.heap.endLease(om.lease)
		rt.log.Debug("capi: manifest closed", "handle", uint64(h))
		return StatusOK
	})
}

// query writes a query error for qerr, or maps err to a failure status.
func (rt *Runtime) query(op string, err error, qerr *RawQueryError) Status {
	var qe *vistoml.QueryError
	if errors.As(err, &qe) {
		*qerr = rawQueryError(rt.heap, qe)
		return StatusQueryError
	}
	return rt.fail(op, err)
}

// GetString writes the string at path into out, borrowed from the
// document. On StatusQueryError, qerr describes where lookup stopped.
func (rt *Runtime) GetString(h ManifestHandle, path []string, out *BorrowedSlice[byte], qerr *RawQueryError) Status {
	const op = "get string"
	return rt.contain(op, func() Status {
		if out == nil || qerr == nil {
			return rt.fail(op, ErrNilArgument)
		}
		om, ok := rt.manifest(h)
		if !ok {
			return rt.fail(op, ErrInvalidHandle)
		}
		s, err := om.m.GetString(path...)
		if err != nil {
			return rt.query(op, err, qerr)
		}
		b, err := borrowString(rt.heap, om.lease, s)
		if err != nil {
			return rt.fail(op, err)
		}
		*out = b
		return StatusOK
	})
}

// GetStringArray writes the strings of the array at path into out. Both
// the outer buffer and each element borrow from the document.
func (rt *Runtime) GetStringArray(h ManifestHandle, path []string, out *BorrowedSlice[BorrowedSlice[byte]], qerr *RawQueryError) Status {
	const op = "get string array"
	return rt.contain(op, func() Status {
		if out == nil || qerr == nil {
			return rt.fail(op, ErrNilArgument)
		}
		om, ok := rt.manifest(h)
		if !ok {
			return rt.fail(op, ErrInvalidHandle)
		}
		ss, err := om.m.GetStringArray(path...)
		if err != nil {
			return rt.query(op, err, qerr)
		}
		b, err := borrowStrings(rt.heap, om.lease, ss)
		if err != nil {
			return rt.fail(op, err)
		}
		*out = b
		return StatusOK
	})
}

// extracted hands either results or path errors to the caller, never both.
func extracted[S, T any, P interface {
	*T
	releaser
}](rt *Runtime, op string, results []S, err error, conv func(*heap, S) (T, error),
	out *OwnedSlice[T], errs *OwnedSlice[RawPathError]) Status {
	if err != nil {
		pe, ok := vistoml.AsPathErrors(err)
		if !ok {
			return rt.fail(op, err)
		}
		raw, cerr := convertAll(rt.heap, []vistoml.PathError(pe), rawPathError)
		if cerr != nil {
			return rt.fail(op, cerr)
		}
		*errs = raw
		return StatusSchemaError
	}
	raw, cerr := convertAll[S, T, P](rt.heap, results, conv)
	if cerr != nil {
		return rt.fail(op, cerr)
	}
	*out = raw
	return StatusOK
}

// GetDependencies writes every dependency into out, or every schema
// violation into errs (StatusSchemaError). Both are owned by the caller:
// release them with FreeDependencies and FreePathErrors.
func (rt *Runtime) GetDependencies(h ManifestHandle, out *OwnedSlice[RawDependency], errs *OwnedSlice[RawPathError]) Status {
	const op = "get dependencies"
	return rt.contain(op, func() Status {
		if out == nil || errs == nil {
			return rt.fail(op, ErrNilArgument)
		}
		om, ok := rt.manifest(h)
		if !ok {
			return rt.fail(op, ErrInvalidHandle)
		}
		deps, err := om.m.Dependencies()
		return extracted(rt, op, deps, err, rawDependency, out, errs)
	})
}

// GetOutputTargets is GetDependencies for build-output targets.
func (rt *Runtime) GetOutputTargets(h ManifestHandle, out *OwnedSlice[RawOutputTarget], errs *OwnedSlice[RawPathError]) Status {
	const op = "get output targets"
	return rt.contain(op, func() Status {
		if out == nil || errs == nil {
			return rt.fail(op, ErrNilArgument)
		}
		om, ok := rt.manifest(h)
		if !ok {
			return rt.fail(op, ErrInvalidHandle)
		}
		targets, err := om.m.OutputTargets()
		return extracted(rt, op, targets, err, rawOutputTarget, out, errs)
	})
}

func free[T any](rt *Runtime, op string, s *OwnedSlice[T]) Status {
	return rt.contain(op, func() Status {
		if s == nil {
			return StatusOK
		}
		if err := s.release(rt.heap); err != nil {
			return rt.fail(op, err)
		}
		return StatusOK
	})
}

// FreeString releases an owned string. Empty buffers are a no-op.
func (rt *Runtime) FreeString(s *OwnedSlice[byte]) Status { return free(rt, "free string", s) }

// FreeDependencies releases the array and every string in it.
func (rt *Runtime) FreeDependencies(s *OwnedSlice[RawDependency]) Status {
	return free(rt, "free dependencies", s)
}

// FreeOutputTargets releases the array and every string in it.
func (rt *Runtime) FreeOutputTargets(s *OwnedSlice[RawOutputTarget]) Status {
	return free(rt, "free output targets", s)
}

// FreePathErrors releases the array and every owned path in it.
func (rt *Runtime) FreePathErrors(s *OwnedSlice[RawPathError]) Status {
	return free(rt, "free path errors", s)
}
