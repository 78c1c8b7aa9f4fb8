//go:build windows

package cblite

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Win64 passes any struct wider than 8 bytes by pointer to a caller-owned
// copy, and returns one through a hidden pointer in the first argument
// slot. Callers keep the pointed-to copies alive across the call.

func appendSliceArg(args []uintptr, s *fl_slice_t) []uintptr {
	return append(args, uintptr(unsafe.Pointer(s)))
}

func appendSliceResultArg(args []uintptr, s *fl_slice_result_t) []uintptr {
	return append(args, uintptr(unsafe.Pointer(s)))
}

func callSliceReturn(fn uintptr, args ...uintptr) fl_slice_t {
	var out fl_slice_t
	callArgs := append([]uintptr{uintptr(unsafe.Pointer(&out))}, args...)
	purego.SyscallN(fn, callArgs...)
	return out
}

func callSliceResultReturn(fn uintptr, args ...uintptr) fl_slice_result_t {
	var out fl_slice_result_t
	callArgs := append([]uintptr{uintptr(unsafe.Pointer(&out))}, args...)
	purego.SyscallN(fn, callArgs...)
	return out
}
