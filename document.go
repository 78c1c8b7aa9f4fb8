package cblite

import "runtime"

// Document wraps a native CBLDocument. Documents created locally are
// mutable; documents read back from a database are mutable copies as well
// (they come from CBLDatabase_GetMutableDocument). Release must be called
// when the document is no longer needed.
type Document struct {
	ref *ref
}

// NewDocument creates an in-memory document with a generated id.
func NewDocument() *Document {
	return &Document{ref: adoptRef(c_CBLDocument_Create())}
}

// NewDocumentWithID creates an in-memory document with the given id.
func NewDocumentWithID(id string) *Document {
	idBytes, idSlice := makeSliceBytes(id)
	ptr := c_CBLDocument_CreateWithID(idSlice)
	runtime.KeepAlive(idBytes)
	return &Document{ref: adoptRef(ptr)}
}

func adoptDocument(ptr uintptr) *Document {
	return &Document{ref: adoptRef(ptr)}
}

func borrowDocument(ptr uintptr) *Document {
	if ptr == 0 {
		return nil
	}
	return &Document{ref: borrowRef(ptr)}
}

// ID returns the document id.
func (d *Document) ID() string {
	return copyFLString(c_CBLDocument_ID(d.ref.get()))
}

// RevisionID returns the current revision id, or "" for an unsaved document.
func (d *Document) RevisionID() string {
	return copyFLString(c_CBLDocument_RevisionID(d.ref.get()))
}

// Sequence returns the database sequence the current revision was assigned,
// or 0 for an unsaved document.
func (d *Document) Sequence() uint64 {
	return c_CBLDocument_Sequence(d.ref.get())
}

// Properties returns a read-only view of the document body. The view is
// valid only while the document is alive.
func (d *Document) Properties() Dict {
	return Dict{ptr: c_CBLDocument_Properties(d.ref.get())}
}

// MutableProperties returns the document's body as a mutable dictionary.
// The dictionary is owned by the document; releasing it is a no-op.
func (d *Document) MutableProperties() MutableDict {
	return MutableDict{ref: &flRef{ptr: c_CBLDocument_MutableProperties(d.ref.get())}}
}

// SetProperties replaces the document body with the given dictionary. The
// document retains the dictionary; the caller keeps its own reference.
func (d *Document) SetProperties(props MutableDict) {
	c_CBLDocument_SetProperties(d.ref.get(), props.get())
}

// ToJSON serializes the document body as JSON.
func (d *Document) ToJSON() string {
	return takeSliceResultString(c_CBLDocument_CreateJSON(d.ref.get()))
}

// SetJSON replaces the document body by parsing the given JSON object.
func (d *Document) SetJSON(json string) error {
	jsonBytes, jsonSlice := makeSliceBytes(json)
	var cerr cbl_error_t
	ok := c_CBLDocument_SetJSON(d.ref.get(), jsonSlice, errOut(&cerr))
	runtime.KeepAlive(jsonBytes)
	return checkBool(ok, &cerr)
}

// Clone returns an independently owned handle over the same native document.
// Both handles must be released.
func (d *Document) Clone() *Document {
	return &Document{ref: d.ref.retained()}
}

// Same reports whether two handles refer to the same native document.
func (d *Document) Same(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.ref.get() == other.ref.get()
}

// Release gives up this handle's native reference. Using the document
// afterwards panics.
func (d *Document) Release() {
	d.ref.release()
}
