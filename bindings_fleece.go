package cblite

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// define all necessary constants first
type fl_value_type_t int32

const (
	fl_undefined fl_value_type_t = -1
	fl_null      fl_value_type_t = 0
	fl_boolean   fl_value_type_t = 1
	fl_number    fl_value_type_t = 2
	fl_string    fl_value_type_t = 3
	fl_data      fl_value_type_t = 4
	fl_array     fl_value_type_t = 5
	fl_dict      fl_value_type_t = 6
)

// fl_dict_iterator_t reserves storage for the caller-allocated FLDictIterator
// struct. The native library fills it in; the fields are private to Fleece.
type fl_dict_iterator_t struct {
	_ [8]uintptr
}

// then, define C extern methods
var (
	c_FLValue_GetType func(
		value uintptr, // FLValue
	) int32

	c_FLValue_AsBool func(
		value uintptr, // FLValue
	) bool

	c_FLValue_AsInt func(
		value uintptr, // FLValue
	) int64

	c_FLValue_AsDouble func(
		value uintptr, // FLValue
	) float64

	// Raw-symbol bound: FLSlice-sized struct argument or return.
	c_FLValue_AsString func(
		value uintptr, // FLValue
	) fl_slice_t

	c_FLValue_ToJSON func(
		value uintptr, // FLValue
	) fl_slice_result_t

	c_FLValue_Release func(
		value uintptr, // FLValue
	)

	c_FLDict_Count func(
		dict uintptr, // FLDict
	) uint32

	c_FLDict_Get func(
		dict uintptr, // FLDict
		key fl_slice_t,
	) uintptr // FLValue

	c_FLDictIterator_Begin func(
		dict uintptr, // FLDict
		iter unsafe.Pointer, // FLDictIterator*
	)

	c_FLDictIterator_GetKeyString func(
		iter unsafe.Pointer, // FLDictIterator*
	) fl_slice_t

	c_FLDictIterator_GetValue func(
		iter unsafe.Pointer, // FLDictIterator*
	) uintptr // FLValue

	c_FLDictIterator_Next func(
		iter unsafe.Pointer, // FLDictIterator*
	) bool

	c_FLMutableDict_New func() uintptr // FLMutableDict

	c_FLMutableDict_Set func(
		dict uintptr, // FLMutableDict
		key fl_slice_t,
	) uintptr // FLSlot

	c_FLMutableDict_Remove func(
		dict uintptr, // FLMutableDict
		key fl_slice_t,
	)

	c_FLSlot_SetBool func(
		slot uintptr, // FLSlot
		value bool,
	)

	c_FLSlot_SetInt func(
		slot uintptr, // FLSlot
		value int64,
	)

	c_FLSlot_SetDouble func(
		slot uintptr, // FLSlot
		value float64,
	)

	c_FLSlot_SetString func(
		slot uintptr, // FLSlot
		value fl_slice_t,
	)

	c_FLSlot_SetValue func(
		slot uintptr, // FLSlot
		value uintptr, // FLValue
	)

	c_FLArray_Count func(
		array uintptr, // FLArray
	) uint32

	c_FLArray_Get func(
		array uintptr, // FLArray
		index uint32,
	) uintptr // FLValue

	c_FLMutableArray_New func() uintptr // FLMutableArray

	c_FLMutableArray_Append func(
		array uintptr, // FLMutableArray
	) uintptr // FLSlot
)

func register_cbl_fleece(handle uintptr) {
	purego.RegisterLibFunc(&c_FLValue_GetType, handle, "FLValue_GetType")
	purego.RegisterLibFunc(&c_FLValue_AsBool, handle, "FLValue_AsBool")
	purego.RegisterLibFunc(&c_FLValue_AsInt, handle, "FLValue_AsInt")
	purego.RegisterLibFunc(&c_FLValue_AsDouble, handle, "FLValue_AsDouble")
	purego.RegisterLibFunc(&c_FLValue_Release, handle, "FLValue_Release")
	purego.RegisterLibFunc(&c_FLDict_Count, handle, "FLDict_Count")
	purego.RegisterLibFunc(&c_FLDictIterator_Begin, handle, "FLDictIterator_Begin")
	purego.RegisterLibFunc(&c_FLDictIterator_GetValue, handle, "FLDictIterator_GetValue")
	purego.RegisterLibFunc(&c_FLDictIterator_Next, handle, "FLDictIterator_Next")
	purego.RegisterLibFunc(&c_FLMutableDict_New, handle, "FLMutableDict_New")
	purego.RegisterLibFunc(&c_FLSlot_SetBool, handle, "FLSlot_SetBool")
	purego.RegisterLibFunc(&c_FLSlot_SetInt, handle, "FLSlot_SetInt")
	purego.RegisterLibFunc(&c_FLSlot_SetDouble, handle, "FLSlot_SetDouble")
	purego.RegisterLibFunc(&c_FLSlot_SetValue, handle, "FLSlot_SetValue")
	purego.RegisterLibFunc(&c_FLArray_Count, handle, "FLArray_Count")
	purego.RegisterLibFunc(&c_FLArray_Get, handle, "FLArray_Get")
	purego.RegisterLibFunc(&c_FLMutableArray_New, handle, "FLMutableArray_New")
	purego.RegisterLibFunc(&c_FLMutableArray_Append, handle, "FLMutableArray_Append")

	asString := mustSymbol(handle, "FLValue_AsString")
	c_FLValue_AsString = func(value uintptr) fl_slice_t {
		return callSliceReturn(asString, value)
	}
	toJSON := mustSymbol(handle, "FLValue_ToJSON")
	c_FLValue_ToJSON = func(value uintptr) fl_slice_result_t {
		return callSliceResultReturn(toJSON, value)
	}
	dictGet := mustSymbol(handle, "FLDict_Get")
	c_FLDict_Get = func(dict uintptr, key fl_slice_t) uintptr {
		r1, _, _ := purego.SyscallN(dictGet, appendSliceArg([]uintptr{dict}, &key)...)
		runtime.KeepAlive(&key)
		return r1
	}
	iterKeyString := mustSymbol(handle, "FLDictIterator_GetKeyString")
	c_FLDictIterator_GetKeyString = func(iter unsafe.Pointer) fl_slice_t {
		return callSliceReturn(iterKeyString, uintptr(iter))
	}
	dictSet := mustSymbol(handle, "FLMutableDict_Set")
	c_FLMutableDict_Set = func(dict uintptr, key fl_slice_t) uintptr {
		r1, _, _ := purego.SyscallN(dictSet, appendSliceArg([]uintptr{dict}, &key)...)
		runtime.KeepAlive(&key)
		return r1
	}
	dictRemove := mustSymbol(handle, "FLMutableDict_Remove")
	c_FLMutableDict_Remove = func(dict uintptr, key fl_slice_t) {
		purego.SyscallN(dictRemove, appendSliceArg([]uintptr{dict}, &key)...)
		runtime.KeepAlive(&key)
	}
	slotSetString := mustSymbol(handle, "FLSlot_SetString")
	c_FLSlot_SetString = func(slot uintptr, value fl_slice_t) {
		purego.SyscallN(slotSetString, appendSliceArg([]uintptr{slot}, &value)...)
		runtime.KeepAlive(&value)
	}
}
