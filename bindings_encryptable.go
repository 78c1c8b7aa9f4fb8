package cblite

import (
	"runtime"

	"github.com/ebitengine/purego"
)

type cbl_encryptable_t struct{}

type cblEncryptable *cbl_encryptable_t

var (
	c_CBLEncryptable_CreateWithNull func() uintptr // CBLEncryptable*

	c_CBLEncryptable_CreateWithBool func(
		value bool,
	) uintptr

	c_CBLEncryptable_CreateWithInt func(
		value int64,
	) uintptr

	c_CBLEncryptable_CreateWithUInt func(
		value uint64,
	) uintptr

	c_CBLEncryptable_CreateWithFloat func(
		value float32,
	) uintptr

	c_CBLEncryptable_CreateWithDouble func(
		value float64,
	) uintptr

	c_CBLEncryptable_CreateWithString func(
		value fl_slice_t,
	) uintptr

	c_CBLEncryptable_CreateWithValue func(
		value uintptr, // FLValue
	) uintptr

	c_CBLEncryptable_CreateWithArray func(
		value uintptr, // FLArray
	) uintptr

	c_CBLEncryptable_CreateWithDict func(
		value uintptr, // FLDict
	) uintptr

	c_CBLEncryptable_Value func(
		encryptable uintptr, // const CBLEncryptable*
	) uintptr // FLValue

	c_CBLEncryptable_Properties func(
		encryptable uintptr, // const CBLEncryptable*
	) uintptr // FLDict
)

func register_cbl_encryptable(handle uintptr) {
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithNull, handle, "CBLEncryptable_CreateWithNull")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithBool, handle, "CBLEncryptable_CreateWithBool")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithInt, handle, "CBLEncryptable_CreateWithInt")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithUInt, handle, "CBLEncryptable_CreateWithUInt")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithFloat, handle, "CBLEncryptable_CreateWithFloat")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithDouble, handle, "CBLEncryptable_CreateWithDouble")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithValue, handle, "CBLEncryptable_CreateWithValue")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithArray, handle, "CBLEncryptable_CreateWithArray")
	purego.RegisterLibFunc(&c_CBLEncryptable_CreateWithDict, handle, "CBLEncryptable_CreateWithDict")
	purego.RegisterLibFunc(&c_CBLEncryptable_Value, handle, "CBLEncryptable_Value")
	purego.RegisterLibFunc(&c_CBLEncryptable_Properties, handle, "CBLEncryptable_Properties")

	createWithString := mustSymbol(handle, "CBLEncryptable_CreateWithString")
	c_CBLEncryptable_CreateWithString = func(value fl_slice_t) uintptr {
		r1, _, _ := purego.SyscallN(createWithString, appendSliceArg(nil, &value)...)
		runtime.KeepAlive(&value)
		return r1
	}
}
