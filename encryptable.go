package cblite

import "runtime"

// Encryptable marks one document property value for end-to-end encryption.
// Stored in a document, it serializes as a dictionary the replicator's
// property encryptor transforms on push and the decryptor restores on pull.
// Enterprise edition only.
type Encryptable struct {
	ref *ref
}

func NewEncryptableWithNull() *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithNull())}
}

func NewEncryptableWithBool(value bool) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithBool(value))}
}

func NewEncryptableWithInt64(value int64) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithInt(value))}
}

func NewEncryptableWithUint64(value uint64) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithUInt(value))}
}

func NewEncryptableWithFloat32(value float32) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithFloat(value))}
}

func NewEncryptableWithFloat64(value float64) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithDouble(value))}
}

func NewEncryptableWithString(value string) *Encryptable {
	valBytes, valSlice := makeSliceBytes(value)
	ptr := c_CBLEncryptable_CreateWithString(valSlice)
	runtime.KeepAlive(valBytes)
	return &Encryptable{ref: adoptRef(ptr)}
}

func NewEncryptableWithValue(value Value) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithValue(value.ptr))}
}

func NewEncryptableWithArray(value Array) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithArray(value.ptr))}
}

func NewEncryptableWithDict(value Dict) *Encryptable {
	return &Encryptable{ref: adoptRef(c_CBLEncryptable_CreateWithDict(value.ptr))}
}

// Value returns the plaintext value wrapped by the encryptable.
func (e *Encryptable) Value() Value {
	return Value{ptr: c_CBLEncryptable_Value(e.ref.get())}
}

// Properties returns the dictionary form the encryptable serializes as.
func (e *Encryptable) Properties() Dict {
	return Dict{ptr: c_CBLEncryptable_Properties(e.ref.get())}
}

// SetEncryptable stores the encryptable under key. The dictionary retains
// it; the caller keeps its own reference.
func (d MutableDict) SetEncryptable(key string, value *Encryptable) {
	keyBytes, keySlice := makeSliceBytes(key)
	c_FLSlot_SetValue(c_FLMutableDict_Set(d.get(), keySlice), value.ref.get())
	runtime.KeepAlive(keyBytes)
}

// Clone returns an independently owned handle over the same native
// encryptable.
func (e *Encryptable) Clone() *Encryptable {
	return &Encryptable{ref: e.ref.retained()}
}

// Release gives up this handle's native reference.
func (e *Encryptable) Release() {
	e.ref.release()
}
