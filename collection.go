package cblite

import (
	"runtime"
	"time"
)

// Names of the default scope and collection every database starts with.
const (
	DefaultScopeName      = "_default"
	DefaultCollectionName = "_default"
)

// Scope wraps a native CBLScope. Scopes exist implicitly: a scope appears
// when its first collection is created and vanishes when its last one is
// deleted.
type Scope struct {
	ref *ref
}

func wrapScope(ptr uintptr, cerr *cbl_error_t) (*Scope, error) {
	if ptr == 0 {
		if cerr.code == 0 {
			return nil, ErrNotFound
		}
		return nil, errorFromC(cerr)
	}
	return &Scope{ref: adoptRef(ptr)}, nil
}

// Name returns the scope name.
func (s *Scope) Name() string {
	return copyFLString(c_CBLScope_Name(s.ref.get()))
}

// CollectionNames lists the collections in this scope.
func (s *Scope) CollectionNames() ([]string, error) {
	var cerr cbl_error_t
	names := c_CBLScope_CollectionNames(s.ref.get(), errOut(&cerr))
	if err := checkError(&cerr); err != nil {
		return nil, err
	}
	return takeStringArray(names), nil
}

// Collection returns the named collection in this scope, or ErrNotFound.
func (s *Scope) Collection(name string) (*Collection, error) {
	nameBytes, nameSlice := makeSliceBytes(name)
	var cerr cbl_error_t
	ptr := c_CBLScope_Collection(s.ref.get(), nameSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	return wrapCollection(ptr, &cerr)
}

// Clone returns an independently owned handle over the same native scope.
func (s *Scope) Clone() *Scope {
	return &Scope{ref: s.ref.retained()}
}

// Same reports whether two handles refer to the same native scope.
func (s *Scope) Same(other *Scope) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ref.get() == other.ref.get()
}

// Release gives up this handle's native reference.
func (s *Scope) Release() {
	s.ref.release()
}

// Collection wraps a native CBLCollection, a named group of documents
// inside a scope.
type Collection struct {
	ref *ref
}

func wrapCollection(ptr uintptr, cerr *cbl_error_t) (*Collection, error) {
	if ptr == 0 {
		if cerr.code == 0 {
			return nil, ErrNotFound
		}
		return nil, errorFromC(cerr)
	}
	return &Collection{ref: adoptRef(ptr)}, nil
}

func borrowCollection(ptr uintptr) *Collection {
	if ptr == 0 {
		return nil
	}
	return &Collection{ref: borrowRef(ptr)}
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return copyFLString(c_CBLCollection_Name(c.ref.get()))
}

// Scope returns the scope the collection belongs to.
func (c *Collection) Scope() *Scope {
	// CBLCollection_Scope hands back a new reference
	return &Scope{ref: adoptRef(c_CBLCollection_Scope(c.ref.get()))}
}

// Count returns the number of (undeleted) documents in the collection.
func (c *Collection) Count() uint64 {
	return c_CBLCollection_Count(c.ref.get())
}

// GetDocument fetches the document with the given id, or ErrNotFound.
func (c *Collection) GetDocument(id string) (*Document, error) {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ptr := c_CBLCollection_GetMutableDocument(c.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return wrapDocument(ptr, &cerr)
}

// SaveDocument saves with last-write-wins conflict handling.
func (c *Collection) SaveDocument(doc *Document) error {
	return c.SaveDocumentWithConcurrencyControl(doc, LastWriteWins)
}

func (c *Collection) SaveDocumentWithConcurrencyControl(doc *Document, control ConcurrencyControl) error {
	var cerr cbl_error_t
	ok := c_CBLCollection_SaveDocumentWithConcurrencyControl(c.ref.get(), doc.ref.get(), uint8(control), errOut(&cerr))
	return checkBool(ok, &cerr)
}

// SaveDocumentResolving saves the document, invoking handler for each
// conflict the same way Database.SaveDocumentResolving does.
func (c *Collection) SaveDocumentResolving(doc *Document, handler ConflictHandler) error {
	ctxID := callbacks.add(handler)
	defer callbacks.remove(ctxID)
	var cerr cbl_error_t
	ok := c_CBLCollection_SaveDocumentWithConflictHandler(c.ref.get(), doc.ref.get(), conflictHandlerTrampoline, ctxID, errOut(&cerr))
	return checkBool(ok, &cerr)
}

func (c *Collection) DeleteDocument(doc *Document) error {
	return c.DeleteDocumentWithConcurrencyControl(doc, LastWriteWins)
}

func (c *Collection) DeleteDocumentWithConcurrencyControl(doc *Document, control ConcurrencyControl) error {
	var cerr cbl_error_t
	ok := c_CBLCollection_DeleteDocumentWithConcurrencyControl(c.ref.get(), doc.ref.get(), uint8(control), errOut(&cerr))
	return checkBool(ok, &cerr)
}

func (c *Collection) PurgeDocument(doc *Document) error {
	var cerr cbl_error_t
	return checkBool(c_CBLCollection_PurgeDocument(c.ref.get(), doc.ref.get(), errOut(&cerr)), &cerr)
}

func (c *Collection) PurgeDocumentByID(id string) error {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ok := c_CBLCollection_PurgeDocumentByID(c.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return checkBool(ok, &cerr)
}

func (c *Collection) DocumentExpiration(id string) (time.Time, error) {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ts := c_CBLCollection_GetDocumentExpiration(c.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	if err := checkError(&cerr); err != nil {
		return time.Time{}, err
	}
	return timeFromTimestamp(ts), nil
}

func (c *Collection) SetDocumentExpiration(id string, when time.Time) error {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ok := c_CBLCollection_SetDocumentExpiration(c.ref.get(), idSlice, timestampFromTime(when), errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return checkBool(ok, &cerr)
}

// AddChangeListener registers a listener invoked after documents in this
// collection change.
func (c *Collection) AddChangeListener(listener CollectionChangeListener) *ListenerToken {
	ctxID := callbacks.add(listener)
	token := c_CBLCollection_AddChangeListener(c.ref.get(), collectionChangeTrampoline, ctxID)
	return newListenerToken(token, ctxID)
}

// AddDocumentChangeListener registers a listener invoked after the one named
// document in this collection changes.
func (c *Collection) AddDocumentChangeListener(id string, listener CollectionDocumentChangeListener) *ListenerToken {
	idBytes, idSlice := makeSliceBytes(id)
	ctxID := callbacks.add(listener)
	token := c_CBLCollection_AddDocumentChangeListener(c.ref.get(), idSlice, collectionDocumentChangeTrampoline, ctxID)
	runtime.KeepAlive(idBytes)
	return newListenerToken(token, ctxID)
}

// Clone returns an independently owned handle over the same native
// collection.
func (c *Collection) Clone() *Collection {
	return &Collection{ref: c.ref.retained()}
}

// Same reports whether two handles refer to the same native collection.
func (c *Collection) Same(other *Collection) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ref.get() == other.ref.get()
}

// Release gives up this handle's native reference.
func (c *Collection) Release() {
	c.ref.release()
}
