package capi

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrReleased: the owned buffer was already released.
	ErrReleased = errors.New("capi: buffer already released")
	// ErrInvalidHandle: the handle was never issued by this runtime.
	ErrInvalidHandle = errors.New("capi: invalid handle")
	// ErrExpired: the borrowed buffer outlived its manifest.
	ErrExpired = errors.New("capi: borrowed buffer expired")
	// ErrNotOwned: release was attempted on a borrowed buffer.
	ErrNotOwned = errors.New("capi: buffer is borrowed, not owned")
	// ErrNilArgument: a required out parameter or document was nil.
	ErrNilArgument = errors.New("capi: nil argument")
	// ErrTooLarge: the data does not fit a 32-bit length.
	ErrTooLarge = errors.New("capi: buffer length exceeds int32")
)

// Handle is an opaque reference to a buffer held by a Runtime. Zero is the
// null handle. Handles are never reused.
type Handle uint64

// lease bounds the lifetime of borrowed buffers.
type lease struct {
	handles []Handle
	alive   bool
	static  bool
}

type cell struct {
	data  any
	len   int
	lease *lease // nil for owned buffers
}

// expired replaces cells whose lease has ended.
var expired = &cell{}

// heap is the handle table behind owned and borrowed buffers.
type heap struct {
	mu     sync.Mutex
	next   Handle
	cells  map[Handle]*cell
	static *lease
	names  map[string]BorrowedSlice[byte]
}

func newHeap() *heap {
	return &heap{
		cells:  map[Handle]*cell{},
		static: &lease{alive: true, static: true},
		names:  map[string]BorrowedSlice[byte]{},
	}
}

func (h *heap) issue(c *cell) Handle {
	h.next++
	h.cells[h.next] = c
	return h.next
}

// alloc takes ownership of data on behalf of the caller.
func (h *heap) alloc(data any, n int) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.issue(&cell{data: data, len: n})
}

// borrow registers data under l without copying it.
func (h *heap) borrow(l *lease, data any, n int) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !l.alive {
		return 0, ErrExpired
	}
	hd := h.issue(&cell{data: data, len: n, lease: l})
	if !l.static {
		l.handles = append(l.handles, hd)
	}
	return hd, nil
}

func (h *heap) lookup(hd Handle) (*cell, error) {
	c, ok := h.cells[hd]
	switch {
	case ok && c == expired:
		return nil, ErrExpired
	case ok:
		return c, nil
	case hd == 0 || hd > h.next:
		return nil, fmt.Errorf("%w %d", ErrInvalidHandle, hd)
	default:
		return nil, ErrReleased
	}
}

func (h *heap) load(hd Handle) (any, int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, err := h.lookup(hd)
	if err != nil {
		return nil, 0, err
	}
	return c.data, c.len, nil
}

// free drops an owned cell. The handle stays dead forever.
func (h *heap) free(hd Handle) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, err := h.lookup(hd)
	if err != nil {
		return err
	}
	if c.lease != nil {
		return ErrNotOwned
	}
	delete(h.cells, hd)
	return nil
}

func (h *heap) newLease() *lease { return &lease{alive: true} }

// endLease expires every buffer borrowed under l.
func (h *heap) endLease(l *lease) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l.static || !l.alive {
		return
	}
	l.alive = false
	for _, hd := range l.handles {
		h.cells[hd] = expired
	}
	l.handles = nil
}

// live reports the number of owned cells, for leak checks.
func (h *heap) live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.cells {
		if c != expired && c.lease == nil {
			n++
		}
	}
	return n
}
