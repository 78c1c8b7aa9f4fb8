package cblite

import (
	"runtime"
	"unsafe"
)

// ValueType enumerates the data types a Fleece value can hold.
type ValueType int32

const (
	ValueUndefined ValueType = ValueType(fl_undefined)
	ValueNull      ValueType = ValueType(fl_null)
	ValueBoolean   ValueType = ValueType(fl_boolean)
	ValueNumber    ValueType = ValueType(fl_number)
	ValueString    ValueType = ValueType(fl_string)
	ValueData      ValueType = ValueType(fl_data)
	ValueArray     ValueType = ValueType(fl_array)
	ValueDict      ValueType = ValueType(fl_dict)
)

// Value is a borrowed view of a Fleece value. It is valid only while the
// object it was read from (document, dict, encryptable) is alive.
type Value struct {
	ptr uintptr
}

func (v Value) IsNil() bool { return v.ptr == 0 }

func (v Value) Type() ValueType {
	if v.ptr == 0 {
		return ValueUndefined
	}
	return ValueType(c_FLValue_GetType(v.ptr))
}

func (v Value) AsBool() bool {
	if v.ptr == 0 {
		return false
	}
	return c_FLValue_AsBool(v.ptr)
}

func (v Value) AsInt64() int64 {
	if v.ptr == 0 {
		return 0
	}
	return c_FLValue_AsInt(v.ptr)
}

func (v Value) AsFloat64() float64 {
	if v.ptr == 0 {
		return 0
	}
	return c_FLValue_AsDouble(v.ptr)
}

func (v Value) AsString() string {
	if v.ptr == 0 {
		return ""
	}
	return copyFLString(c_FLValue_AsString(v.ptr))
}

// ToJSON serializes the value with the native JSON encoder.
func (v Value) ToJSON() string {
	if v.ptr == 0 {
		return ""
	}
	return takeSliceResultString(c_FLValue_ToJSON(v.ptr))
}

// Dict is a borrowed view of an immutable Fleece dictionary.
type Dict struct {
	ptr uintptr
}

func (d Dict) IsNil() bool { return d.ptr == 0 }

func (d Dict) Count() uint {
	if d.ptr == 0 {
		return 0
	}
	return uint(c_FLDict_Count(d.ptr))
}

func (d Dict) Get(key string) Value {
	if d.ptr == 0 {
		return Value{}
	}
	keyBytes, keySlice := makeSliceBytes(key)
	v := c_FLDict_Get(d.ptr, keySlice)
	runtime.KeepAlive(keyBytes)
	return Value{ptr: v}
}

// Keys returns the dictionary's keys in iteration order.
func (d Dict) Keys() []string {
	if d.ptr == 0 {
		return nil
	}
	var iter fl_dict_iterator_t
	c_FLDictIterator_Begin(d.ptr, unsafe.Pointer(&iter))
	var keys []string
	for {
		if c_FLDictIterator_GetValue(unsafe.Pointer(&iter)) == 0 {
			break
		}
		keys = append(keys, copyFLString(c_FLDictIterator_GetKeyString(unsafe.Pointer(&iter))))
		if !c_FLDictIterator_Next(unsafe.Pointer(&iter)) {
			break
		}
	}
	return keys
}

func (d Dict) ToJSON() string {
	if d.ptr == 0 {
		return ""
	}
	return takeSliceResultString(c_FLValue_ToJSON(d.ptr))
}

// Array is a borrowed view of an immutable Fleece array.
type Array struct {
	ptr uintptr
}

func (a Array) Count() uint {
	if a.ptr == 0 {
		return 0
	}
	return uint(c_FLArray_Count(a.ptr))
}

func (a Array) Get(index uint) Value {
	if a.ptr == 0 {
		return Value{}
	}
	return Value{ptr: c_FLArray_Get(a.ptr, uint32(index))}
}

// Strings flattens the array into its string elements.
func (a Array) Strings() []string {
	n := a.Count()
	if n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		out = append(out, a.Get(i).AsString())
	}
	return out
}

// flRef tracks ownership of one Fleece reference count. It is shared by
// pointer between every copy of the wrapper carrying it, so releasing any
// copy invalidates them all.
type flRef struct {
	ptr      uintptr
	owned    bool
	released bool
}

func (r *flRef) get() uintptr {
	if r.released {
		panic("cblite: use of released Fleece container")
	}
	return r.ptr
}

func (r *flRef) release() {
	if r == nil || !r.owned || r.released {
		return
	}
	c_FLValue_Release(r.ptr)
	r.released = true
}

// MutableDict wraps a mutable Fleece dictionary. Owned instances hold one
// Fleece reference count and must be released; instances handed out by a
// document (MutableProperties) are owned by the document and their Release
// is a no-op.
type MutableDict struct {
	ref *flRef
}

// NewMutableDict creates a new empty mutable dictionary, owned by the caller.
func NewMutableDict() MutableDict {
	return MutableDict{ref: &flRef{ptr: c_FLMutableDict_New(), owned: true}}
}

func newMutableDictFromMap(m map[string]string) MutableDict {
	d := NewMutableDict()
	for k, v := range m {
		d.SetString(k, v)
	}
	return d
}

func (d MutableDict) get() uintptr {
	return d.ref.get()
}

func (d MutableDict) SetBool(key string, value bool) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLSlot_SetBool(c_FLMutableDict_Set(d.get(), keySlice), value)
	runtime.KeepAlive(keyBytes)
}

func (d MutableDict) SetInt64(key string, value int64) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLSlot_SetInt(c_FLMutableDict_Set(d.get(), keySlice), value)
	runtime.KeepAlive(keyBytes)
}

func (d MutableDict) SetFloat64(key string, value float64) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLSlot_SetDouble(c_FLMutableDict_Set(d.get(), keySlice), value)
	runtime.KeepAlive(keyBytes)
}

func (d MutableDict) SetString(key, value string) {
	keyBytes, keySlice := makeSliceBytes(key)
	valBytes, valSlice := makeSliceBytes(value)
	// FLSlot_SetString copies the bytes into the dict.
	c_FLSlot_SetString(c_FLMutableDict_Set(d.get(), keySlice), valSlice)
	runtime.KeepAlive(keyBytes)
	runtime.KeepAlive(valBytes)
}

func (d MutableDict) SetValue(key string, value Value) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLSlot_SetValue(c_FLMutableDict_Set(d.get(), keySlice), value.ptr)
	runtime.KeepAlive(keyBytes)
}

func (d MutableDict) Remove(key string) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLMutableDict_Remove(d.get(), keySlice)
	runtime.KeepAlive(keyBytes)
}

// AsDict returns an immutable view of the same dictionary.
func (d MutableDict) AsDict() Dict {
	return Dict{ptr: d.get()}
}

func (d MutableDict) Count() uint          { return d.AsDict().Count() }
func (d MutableDict) Get(key string) Value { return d.AsDict().Get(key) }
func (d MutableDict) ToJSON() string       { return d.AsDict().ToJSON() }

// Release gives up the owned Fleece reference. The release state lives in a
// shared handle, so copies of the wrapper are invalidated too. No-op for
// dictionaries owned by a document.
func (d MutableDict) Release() {
	d.ref.release()
}

// MutableArray wraps a mutable Fleece array owned by the caller.
type MutableArray struct {
	ref *flRef
}

func NewMutableArray() MutableArray {
	return MutableArray{ref: &flRef{ptr: c_FLMutableArray_New(), owned: true}}
}

func newMutableArrayFromStrings(values []string) MutableArray {
	a := NewMutableArray()
	for _, v := range values {
		a.AppendString(v)
	}
	return a
}

func (a MutableArray) get() uintptr {
	return a.ref.get()
}

func (a MutableArray) AppendString(value string) {
	valBytes, valSlice := makeSliceBytes(value)
	c_FLSlot_SetString(c_FLMutableArray_Append(a.get()), valSlice)
	runtime.KeepAlive(valBytes)
}

// AsArray returns an immutable view of the same array.
func (a MutableArray) AsArray() Array {
	return Array{ptr: a.get()}
}

func (a MutableArray) Count() uint { return a.AsArray().Count() }

func (a MutableArray) Release() {
	a.ref.release()
}

// takeStringArray adopts a native FLMutableArray result (e.g. from
// CBLDatabase_ScopeNames), copies its string elements out and releases it.
func takeStringArray(ptr uintptr) []string {
	if ptr == 0 {
		return nil
	}
	out := Array{ptr: ptr}.Strings()
	c_FLValue_Release(ptr)
	return out
}
