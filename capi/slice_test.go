package capi

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T) (*Runtime, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(Config{Logger: logger}), buf
}

func TestOwnedStrings_RoundTrip(t *testing.T) {
	rt, _ := newTestRuntime(t)
	in := []string{"serde", "", "ünïcödé", "a.b.c"}

	owned, err := OwnedStrings(rt, in)
	require.NoError(t, err)
	assert.Equal(t, len(in), owned.Len())
	// outer block plus three non-empty strings
	assert.Equal(t, 4, rt.LiveBuffers())

	out, err := LoadStrings(rt, owned)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, owned.Release(rt))
	assert.True(t, owned.IsEmpty())
	assert.Equal(t, 0, rt.LiveBuffers())
}

func TestOwnedSlice_ReleaseOnlyOnce(t *testing.T) {
	rt, _ := newTestRuntime(t)
	s, err := OwnedString(rt, "once")
	require.NoError(t, err)
	dup := s

	require.NoError(t, s.Release(rt))
	// the released variable is reset, so releasing it again is harmless
	require.NoError(t, s.Release(rt))

	// a stale copy is caught instead of freeing anything twice
	err = dup.Release(rt)
	assert.True(t, errors.Is(err, ErrReleased), "got %v", err)
	_, err = LoadString(rt, dup)
	assert.True(t, errors.Is(err, ErrReleased))
}

func TestOwnedSlice_EmptyIsNoop(t *testing.T) {
	rt, _ := newTestRuntime(t)
	var empty OwnedSlice[byte]
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, RawSlice[byte]{}, empty.Raw())
	assert.NoError(t, empty.Release(rt))
	assert.Equal(t, StatusOK, rt.FreeString(&empty))
	assert.Equal(t, StatusOK, rt.FreeString(nil))

	s, err := OwnedString(rt, "")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	got, err := LoadString(rt, s)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestOwnedSlice_ForgedHandle(t *testing.T) {
	rt, _ := newTestRuntime(t)
	forged := OwnedSlice[byte]{data: RawSlice[byte]{Ptr: 999, Len: 3}}
	_, err := forged.Load(rt)
	assert.True(t, errors.Is(err, ErrInvalidHandle))
	assert.Equal(t, StatusInvalidHandle, rt.FreeString(&forged))
}

func TestOwnedSlice_CopiesSource(t *testing.T) {
	rt, _ := newTestRuntime(t)
	src := []int{1, 2, 3}
	o, err := ownSlice(rt.heap, src)
	require.NoError(t, err)
	src[0] = 42
	got, err := o.Load(rt)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	require.NoError(t, o.Release(rt))
}

func TestBorrowedSlice_ExpiresWithLease(t *testing.T) {
	rt, _ := newTestRuntime(t)
	l := rt.heap.newLease()
	b, err := borrowStrings(rt.heap, l, []string{"x", "yz"})
	require.NoError(t, err)

	got, err := BorrowedStrings(rt, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "yz"}, got)

	rt.heap.endLease(l)
	_, err = BorrowedStrings(rt, b)
	assert.True(t, errors.Is(err, ErrExpired))

	_, err = borrowString(rt.heap, l, "late")
	assert.True(t, errors.Is(err, ErrExpired))
}

func TestBorrowedSlice_CannotBeFreed(t *testing.T) {
	rt, _ := newTestRuntime(t)
	b := rt.heap.staticName("integer")
	assert.True(t, errors.Is(rt.heap.free(b.Raw().Ptr), ErrNotOwned))

	again := rt.heap.staticName("integer")
	assert.Equal(t, b, again, "static names are registered once")
	s, err := BorrowedString(rt, b)
	require.NoError(t, err)
	assert.Equal(t, "integer", s)
}

func TestCheckLen(t *testing.T) {
	if strconv.IntSize == 32 {
		t.Skip("int cannot exceed int32")
	}
	tooBig := int64(math.MaxInt32) + 1
	_, err := checkLen(int(tooBig))
	assert.True(t, errors.Is(err, ErrTooLarge))
	n, err := checkLen(12)
	require.NoError(t, err)
	assert.Equal(t, int32(12), n)
}
