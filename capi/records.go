package capi

import (
	"errors"

	"github.com/reoring/vistoml"
)

// RawDependency is the flat projection of vistoml.Dependency. Name is never
// empty; the other fields are empty when absent.
type RawDependency struct {
	Name    OwnedSlice[byte]
	Version OwnedSlice[byte]
	Git     OwnedSlice[byte]
	Path    OwnedSlice[byte]
	Target  OwnedSlice[byte]
}

func (r *RawDependency) release(h *heap) error {
	return errors.Join(
		r.Name.release(h),
		r.Version.release(h),
		r.Git.release(h),
		r.Path.release(h),
		r.Target.release(h),
	)
}

func rawDependency(h *heap, d vistoml.Dependency) (RawDependency, error) {
	var r RawDependency
	var err error
	fill := func(dst *OwnedSlice[byte], s *string) {
		if err == nil {
			*dst, err = ownOptional(h, s)
		}
	}
	fill(&r.Name, &d.Name)
	fill(&r.Version, d.Version)
	fill(&r.Git, d.Git)
	fill(&r.Path, d.Path)
	fill(&r.Target, d.Target)
	if err != nil {
		_ = r.release(h)
		return RawDependency{}, err
	}
	return r, nil
}

// RawOutputTarget is the flat projection of vistoml.OutputTarget.
type RawOutputTarget struct {
	Kind    OwnedSlice[byte]
	Name    OwnedSlice[byte]
	Path    OwnedSlice[byte]
	Test    bool
	Doctest bool
	Bench   bool
	Doc     bool
	Plugin  bool
	Harness bool
}

func (r *RawOutputTarget) release(h *heap) error {
	return errors.Join(r.Kind.release(h), r.Name.release(h), r.Path.release(h))
}

func rawOutputTarget(h *heap, t vistoml.OutputTarget) (RawOutputTarget, error) {
	r := RawOutputTarget{
		Test:    t.Test,
		Doctest: t.Doctest,
		Bench:   t.Bench,
		Doc:     t.Doc,
		Plugin:  t.Plugin,
		Harness: t.Harness,
	}
	var err error
	if r.Kind, err = ownString(h, string(t.Kind)); err == nil {
		if r.Name, err = ownOptional(h, t.Name); err == nil {
			r.Path, err = ownOptional(h, t.Path)
		}
	}
	if err != nil {
		_ = r.release(h)
		return RawOutputTarget{}, err
	}
	return r, nil
}

// RawPathError is the flat projection of vistoml.PathError. Expected and
// Got borrow static kind names and are never released.
type RawPathError struct {
	Path     OwnedSlice[byte]
	Expected BorrowedSlice[byte]
	Got      BorrowedSlice[byte]
}

func (r *RawPathError) release(h *heap) error { return r.Path.release(h) }

func rawPathError(h *heap, e vistoml.PathError) (RawPathError, error) {
	path, err := ownString(h, e.Path)
	if err != nil {
		return RawPathError{}, err
	}
	return RawPathError{Path: path, Expected: h.staticName(e.Expected), Got: h.staticName(e.Got)}, nil
}

// RawQueryError is the flat projection of vistoml.QueryError. Kind is empty
// for vacant entries.
type RawQueryError struct {
	Vacant bool
	Depth  int32
	Kind   BorrowedSlice[byte]
}

func rawQueryError(h *heap, e *vistoml.QueryError) RawQueryError {
	r := RawQueryError{Vacant: e.Reason == vistoml.Vacant, Depth: int32(e.Depth)}
	if !r.Vacant {
		r.Kind = h.staticName(e.Found)
	}
	return r
}

// convertAll projects every element, releasing the partial result if one
// conversion fails.
func convertAll[S, T any, P interface {
	*T
	releaser
}](h *heap, src []S, conv func(*heap, S) (T, error)) (OwnedSlice[T], error) {
	out := make([]T, 0, len(src))
	for _, s := range src {
		t, err := conv(h, s)
		if err != nil {
			releaseAll[T, P](h, out)
			return OwnedSlice[T]{}, err
		}
		out = append(out, t)
	}
	o, err := ownSlice(h, out)
	if err != nil {
		releaseAll[T, P](h, out)
	}
	return o, err
}
