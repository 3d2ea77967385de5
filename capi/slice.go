package capi

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// RawSlice is the flat {pointer, length} pair handed across the boundary.
// It carries no terminator and no capacity. The empty slice is {0, 0}.
type RawSlice[T any] struct {
	Ptr Handle
	Len int32
}

// IsEmpty reports whether r is the null slice.
func (r RawSlice[T]) IsEmpty() bool { return r.Ptr == 0 }

func (r RawSlice[T]) load(h *heap) ([]T, error) {
	if r.IsEmpty() {
		return nil, nil
	}
	data, n, err := h.load(r.Ptr)
	if err != nil {
		return nil, err
	}
	out, ok := data.([]T)
	if !ok || n != int(r.Len) {
		return nil, fmt.Errorf("%w: handle %d does not hold %d elements of %T", ErrInvalidHandle, r.Ptr, r.Len, out)
	}
	return out, nil
}

func checkLen(n int) (int32, error) {
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrTooLarge, n)
	}
	return int32(n), nil
}

// releaser is implemented by element types that hold owned buffers of
// their own.
type releaser interface {
	release(h *heap) error
}

// OwnedSlice is a buffer whose ownership was transferred to the caller.
// It must be released exactly once through its Runtime; the zero value is
// the empty buffer and releasing it is a no-op.
type OwnedSlice[T any] struct {
	data RawSlice[T]
}

// Raw exposes the flat layout.
func (o OwnedSlice[T]) Raw() RawSlice[T] { return o.data }

// Len returns the element count.
func (o OwnedSlice[T]) Len() int { return int(o.data.Len) }

// IsEmpty reports whether o is the empty buffer.
func (o OwnedSlice[T]) IsEmpty() bool { return o.data.IsEmpty() }

// Load returns the elements. The slice belongs to the caller until Release.
func (o OwnedSlice[T]) Load(rt *Runtime) ([]T, error) { return o.data.load(rt.heap) }

// Release frees o and every owned buffer nested in its elements, then
// resets o to the empty buffer so the same variable cannot be released
// twice. Releasing a copy of an already released slice returns ErrReleased.
func (o *OwnedSlice[T]) Release(rt *Runtime) error { return o.release(rt.heap) }

func (o *OwnedSlice[T]) release(h *heap) error {
	if o.data.IsEmpty() {
		return nil
	}
	elems, err := o.data.load(h)
	if err != nil {
		return err
	}
	var errs []error
	for i := range elems {
		if r, ok := any(&elems[i]).(releaser); ok {
			errs = append(errs, r.release(h))
		}
	}
	errs = append(errs, h.free(o.data.Ptr))
	o.data = RawSlice[T]{}
	return errors.Join(errs...)
}

// ownSlice copies src into a fresh block owned by the caller.
func ownSlice[T any](h *heap, src []T) (OwnedSlice[T], error) {
	if len(src) == 0 {
		return OwnedSlice[T]{}, nil
	}
	n, err := checkLen(len(src))
	if err != nil {
		return OwnedSlice[T]{}, err
	}
	block := make([]T, len(src))
	copy(block, src)
	return OwnedSlice[T]{data: RawSlice[T]{Ptr: h.alloc(block, len(block)), Len: n}}, nil
}

func ownString(h *heap, s string) (OwnedSlice[byte], error) {
	return ownSlice(h, unsafe.Slice(unsafe.StringData(s), len(s)))
}

func ownOptional(h *heap, s *string) (OwnedSlice[byte], error) {
	if s == nil {
		return OwnedSlice[byte]{}, nil
	}
	return ownString(h, *s)
}

// BorrowedSlice aliases memory owned elsewhere, normally a document held
// by an open manifest. It is valid until that manifest is closed and has no
// release operation. Elements of nested borrowed slices follow the same
// lease.
type BorrowedSlice[T any] struct {
	data RawSlice[T]
}

// Raw exposes the flat layout.
func (b BorrowedSlice[T]) Raw() RawSlice[T] { return b.data }

// Len returns the element count.
func (b BorrowedSlice[T]) Len() int { return int(b.data.Len) }

// IsEmpty reports whether b is the empty buffer.
func (b BorrowedSlice[T]) IsEmpty() bool { return b.data.IsEmpty() }

// Load returns the aliased elements. They must not be modified, and they
// are only meaningful while the lease is alive: ErrExpired afterwards.
func (b BorrowedSlice[T]) Load(rt *Runtime) ([]T, error) { return b.data.load(rt.heap) }

func borrowSlice[T any](h *heap, l *lease, src []T) (BorrowedSlice[T], error) {
	if len(src) == 0 {
		return BorrowedSlice[T]{}, nil
	}
	n, err := checkLen(len(src))
	if err != nil {
		return BorrowedSlice[T]{}, err
	}
	hd, err := h.borrow(l, src, len(src))
	if err != nil {
		return BorrowedSlice[T]{}, err
	}
	return BorrowedSlice[T]{data: RawSlice[T]{Ptr: hd, Len: n}}, nil
}

// borrowString aliases the bytes backing s.
func borrowString(h *heap, l *lease, s string) (BorrowedSlice[byte], error) {
	return borrowSlice(h, l, unsafe.Slice(unsafe.StringData(s), len(s)))
}

func borrowStrings(h *heap, l *lease, ss []string) (BorrowedSlice[BorrowedSlice[byte]], error) {
	elems := make([]BorrowedSlice[byte], len(ss))
	for i, s := range ss {
		b, err := borrowString(h, l, s)
		if err != nil {
			return BorrowedSlice[BorrowedSlice[byte]]{}, err
		}
		elems[i] = b
	}
	return borrowSlice(h, l, elems)
}

// OwnedString copies s into an owned buffer.
func OwnedString(rt *Runtime, s string) (OwnedSlice[byte], error) { return ownString(rt.heap, s) }

// OwnedStrings copies ss into an owned buffer of owned strings. On failure
// nothing stays allocated.
func OwnedStrings(rt *Runtime, ss []string) (OwnedSlice[OwnedSlice[byte]], error) {
	elems := make([]OwnedSlice[byte], 0, len(ss))
	for _, s := range ss {
		o, err := ownString(rt.heap, s)
		if err != nil {
			releaseAll(rt.heap, elems)
			return OwnedSlice[OwnedSlice[byte]]{}, err
		}
		elems = append(elems, o)
	}
	out, err := ownSlice(rt.heap, elems)
	if err != nil {
		releaseAll(rt.heap, elems)
	}
	return out, err
}

// LoadString copies an owned byte buffer back into a string.
func LoadString(rt *Runtime, o OwnedSlice[byte]) (string, error) {
	b, err := o.Load(rt)
	return string(b), err
}

// LoadStrings copies an owned buffer of owned strings back into strings.
func LoadStrings(rt *Runtime, o OwnedSlice[OwnedSlice[byte]]) ([]string, error) {
	elems, err := o.Load(rt)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		if out[i], err = LoadString(rt, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BorrowedString reads a borrowed byte buffer as a string.
func BorrowedString(rt *Runtime, b BorrowedSlice[byte]) (string, error) {
	data, err := b.Load(rt)
	return string(data), err
}

// BorrowedStrings reads a borrowed buffer of borrowed strings.
func BorrowedStrings(rt *Runtime, b BorrowedSlice[BorrowedSlice[byte]]) ([]string, error) {
	elems, err := b.Load(rt)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		if out[i], err = BorrowedString(rt, e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// releaseAll frees built-up elements after a failed conversion.
func releaseAll[T any, P interface {
	*T
	releaser
}](h *heap, elems []T) {
	for i := range elems {
		_ = P(&elems[i]).release(h)
	}
}

// staticName borrows a kind name under the static lease, which never ends.
// Each distinct name is registered once.
func (h *heap) staticName(s string) BorrowedSlice[byte] {
	if s == "" {
		return BorrowedSlice[byte]{}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if b, ok := h.names[s]; ok {
		return b
	}
	data := unsafe.Slice(unsafe.StringData(s), len(s))
	hd := h.issue(&cell{data: data, len: len(s), lease: h.static})
	b := BorrowedSlice[byte]{data: RawSlice[byte]{Ptr: hd, Len: int32(len(s))}}
	h.names[s] = b
	return b
}
