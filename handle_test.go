package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdoptNilPointerPanics(t *testing.T) {
	require.Panics(t, func() { adoptRef(0) })
	require.Panics(t, func() { retainRef(0) })
}

func TestUseAfterReleasePanics(t *testing.T) {
	r := &ref{ptr: 0xdead, released: true}
	require.Panics(t, func() { r.get() })
}

func TestBorrowedReleaseIsNoOp(t *testing.T) {
	r := borrowRef(0xdead)
	r.release() // must not reach the native library
	require.Equal(t, uintptr(0xdead), r.get())
}

func TestReleaseIsIdempotent(t *testing.T) {
	// an already released handle must not release again
	r := &ref{ptr: 0xdead, released: true}
	r.release()
	r.release()
}
