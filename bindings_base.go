package cblite

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// define opaque pointers as-is and accept them as exact arguments
type cbl_refcounted_t struct{}
type cbl_listener_token_t struct{}

type cblRefCounted *cbl_refcounted_t
type cblListenerToken *cbl_listener_token_t

// define all necessary private C structs
// private C structs MUST have fields with low level types (e.g. uintptr, numbers)

// fl_slice_t is a borrowed length-prefixed view into memory the callee does
// not own. It is valid only for the duration of the native call receiving it.
type fl_slice_t struct {
	buf  uintptr // const void*
	size uintptr // size_t
}

// fl_slice_result_t is a heap buffer owned by the caller after the native
// call returns. It must be copied into Go memory and released exactly once.
type fl_slice_result_t struct {
	buf  uintptr // void*
	size uintptr // size_t
}

// cbl_error_t mirrors CBLError.
type cbl_error_t struct {
	domain   uint8 // CBLErrorDomain
	_        [3]byte
	code     int32  // int32_t
	internal uint32 // unsigned
}

// then, define C extern methods
var (
	// always use c_ structs here - never mix them with exported public types
	c_CBL_Retain func(
		ref uintptr, // CBLRefCounted*
	) uintptr

	c_CBL_Release func(
		ref uintptr, // CBLRefCounted*
	)

	c_CBL_InstanceCount func() uint32

	c_CBL_DumpInstances func()

	c_CBLListener_Remove func(
		token uintptr, // CBLListenerToken*
	)

	// Bound through raw symbols and SyscallN (see bindings_abi_*.go): the C
	// signature passes or returns an FLSlice-sized struct by value, which
	// purego.RegisterLibFunc marshals on darwin only.
	c_CBLError_Message func(
		err unsafe.Pointer, // const CBLError*
	) fl_slice_result_t

	c_FLSliceResult_Release func(
		s fl_slice_result_t,
	)

	c_CBLLog_SetCallback func(
		callback uintptr, // CBLLogCallback
	)

	c_CBLLog_SetCallbackLevel func(
		level uint8, // CBLLogLevel
	)

	c_CBLLog_SetConsoleLevel func(
		level uint8, // CBLLogLevel
	)
)

// goBool narrows a raw return register to the C bool it carries; only the
// low byte is meaningful.
func goBool(r uintptr) bool {
	return byte(r) != 0
}

// mustSymbol resolves a native symbol address or panics, matching
// RegisterLibFunc's behavior for symbols missing from the loaded library.
func mustSymbol(handle uintptr, name string) uintptr {
	addr, err := lookupSymbol(handle, name)
	if err != nil {
		panic(fmt.Sprintf("cblite: missing native symbol %s: %v", name, err))
	}
	return addr
}

// implement a function to register extern methods from loaded lib
// DO NOT load lib - as it will be done externally
func register_cbl_base(handle uintptr) {
	purego.RegisterLibFunc(&c_CBL_Retain, handle, "CBL_Retain")
	purego.RegisterLibFunc(&c_CBL_Release, handle, "CBL_Release")
	purego.RegisterLibFunc(&c_CBL_InstanceCount, handle, "CBL_InstanceCount")
	purego.RegisterLibFunc(&c_CBL_DumpInstances, handle, "CBL_DumpInstances")
	purego.RegisterLibFunc(&c_CBLListener_Remove, handle, "CBLListener_Remove")
	purego.RegisterLibFunc(&c_CBLLog_SetCallback, handle, "CBLLog_SetCallback")
	purego.RegisterLibFunc(&c_CBLLog_SetCallbackLevel, handle, "CBLLog_SetCallbackLevel")
	purego.RegisterLibFunc(&c_CBLLog_SetConsoleLevel, handle, "CBLLog_SetConsoleLevel")

	errorMessage := mustSymbol(handle, "CBLError_Message")
	c_CBLError_Message = func(err unsafe.Pointer) fl_slice_result_t {
		return callSliceResultReturn(errorMessage, uintptr(err))
	}
	sliceResultRelease := mustSymbol(handle, "FLSliceResult_Release")
	c_FLSliceResult_Release = func(s fl_slice_result_t) {
		purego.SyscallN(sliceResultRelease, appendSliceResultArg(nil, &s)...)
		runtime.KeepAlive(&s)
	}
}

// Slice marshaling helpers

// makeSliceBytes copies a Go string into a byte buffer and returns the
// buffer together with a borrowed slice pointing at it. The returned byte
// slice must be kept alive (runtime.KeepAlive) across the native call.
func makeSliceBytes(s string) ([]byte, fl_slice_t) {
	if len(s) == 0 {
		return nil, fl_slice_t{}
	}
	b := []byte(s)
	return b, fl_slice_t{buf: uintptr(unsafe.Pointer(&b[0])), size: uintptr(len(b))}
}

// makeSlice returns a borrowed slice over existing Go bytes. The caller must
// keep the backing slice alive across the native call.
func makeSlice(b []byte) fl_slice_t {
	if len(b) == 0 {
		return fl_slice_t{}
	}
	return fl_slice_t{buf: uintptr(unsafe.Pointer(&b[0])), size: uintptr(len(b))}
}

func copyFLBytes(s fl_slice_t) []byte {
	if s.buf == 0 || s.size == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(s.buf)), int(s.size))
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

func copyFLString(s fl_slice_t) string {
	b := copyFLBytes(s)
	if len(b) == 0 {
		return ""
	}
	return string(b)
}

// takeSliceResultBytes adopts an owned native buffer: copies it into Go
// memory and releases the native allocation.
func takeSliceResultBytes(r fl_slice_result_t) []byte {
	if r.buf == 0 {
		return nil
	}
	b := copyFLBytes(fl_slice_t{buf: r.buf, size: r.size})
	c_FLSliceResult_Release(r)
	return b
}

func takeSliceResultString(r fl_slice_result_t) string {
	b := takeSliceResultBytes(r)
	if len(b) == 0 {
		return ""
	}
	return string(b)
}

// retain increments the native reference count and returns the pointer.
func cbl_retain(ref uintptr) uintptr {
	return c_CBL_Retain(ref)
}

// release decrements the native reference count, freeing the object when it
// reaches zero. The pointer must not be used afterwards.
func cbl_release(ref uintptr) {
	if ref == 0 {
		return
	}
	c_CBL_Release(ref)
}

// InstanceCount returns the total number of Couchbase Lite objects currently
// alive in the native library. Useful in tests to detect reference leaks.
func InstanceCount() uint {
	return uint(c_CBL_InstanceCount())
}

// DumpInstances logs information about every native object still alive, via
// the native library's own logging. Debug builds of libcblite only.
func DumpInstances() {
	c_CBL_DumpInstances()
}
