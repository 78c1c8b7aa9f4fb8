//go:build darwin || linux || freebsd

package cblite

import "github.com/ebitengine/purego"

// On the System V and AAPCS64 calling conventions an FLSlice-sized struct
// (two pointer words) travels in two integer registers, both as an argument
// and as a return value. SyscallN exposes exactly those two result
// registers, so struct-by-value crossings that RegisterLibFunc cannot
// marshal off darwin are flattened here.

func appendSliceArg(args []uintptr, s *fl_slice_t) []uintptr {
	return append(args, s.buf, s.size)
}

func appendSliceResultArg(args []uintptr, s *fl_slice_result_t) []uintptr {
	return append(args, s.buf, s.size)
}

func callSliceReturn(fn uintptr, args ...uintptr) fl_slice_t {
	r1, r2, _ := purego.SyscallN(fn, args...)
	return fl_slice_t{buf: r1, size: r2}
}

func callSliceResultReturn(fn uintptr, args ...uintptr) fl_slice_result_t {
	r1, r2, _ := purego.SyscallN(fn, args...)
	return fl_slice_result_t{buf: r1, size: r2}
}
