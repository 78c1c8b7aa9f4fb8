package cblite

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// cbl_collection_change_t mirrors CBLCollectionChange, the payload handed to
// collection change listeners.
type cbl_collection_change_t struct {
	collection uintptr // const CBLCollection*
	numDocs    uint32  // unsigned
	_          [4]byte // padding to 8-byte alignment
	docIDs     uintptr // FLString*
}

// cbl_document_change_t mirrors CBLDocumentChange, the payload handed to
// collection document change listeners.
type cbl_document_change_t struct {
	collection uintptr // const CBLCollection*
	docID      fl_slice_t
}

var (
	c_CBLCollection_Scope func(
		collection uintptr, // CBLCollection*
	) uintptr // CBLScope*

	c_CBLCollection_Name func(
		collection uintptr, // CBLCollection*
	) fl_slice_t

	c_CBLCollection_Count func(
		collection uintptr, // const CBLCollection*
	) uint64

	c_CBLCollection_GetMutableDocument func(
		collection uintptr, // CBLCollection*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLDocument*

	c_CBLCollection_SaveDocumentWithConcurrencyControl func(
		collection uintptr, // CBLCollection*
		doc uintptr, // CBLDocument*
		concurrency uint8, // CBLConcurrencyControl
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_SaveDocumentWithConflictHandler func(
		collection uintptr, // CBLCollection*
		doc uintptr, // CBLDocument*
		handler uintptr, // CBLConflictHandler
		context uintptr, // void*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_DeleteDocumentWithConcurrencyControl func(
		collection uintptr, // CBLCollection*
		doc uintptr, // CBLDocument*
		concurrency uint8, // CBLConcurrencyControl
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_PurgeDocument func(
		collection uintptr, // CBLCollection*
		doc uintptr, // CBLDocument*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_PurgeDocumentByID func(
		collection uintptr, // CBLCollection*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_GetDocumentExpiration func(
		collection uintptr, // CBLCollection*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) int64 // CBLTimestamp

	c_CBLCollection_SetDocumentExpiration func(
		collection uintptr, // CBLCollection*
		docID fl_slice_t,
		expiration int64, // CBLTimestamp
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLCollection_AddChangeListener func(
		collection uintptr, // const CBLCollection*
		listener uintptr, // CBLCollectionChangeListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*

	c_CBLCollection_AddDocumentChangeListener func(
		collection uintptr, // const CBLCollection*
		docID fl_slice_t,
		listener uintptr, // CBLCollectionDocumentChangeListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*

	c_CBLScope_Name func(
		scope uintptr, // CBLScope*
	) fl_slice_t

	c_CBLScope_CollectionNames func(
		scope uintptr, // CBLScope*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // FLMutableArray

	c_CBLScope_Collection func(
		scope uintptr, // CBLScope*
		collectionName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLCollection*
)

func register_cbl_collection(handle uintptr) {
	purego.RegisterLibFunc(&c_CBLCollection_Scope, handle, "CBLCollection_Scope")
	purego.RegisterLibFunc(&c_CBLCollection_Count, handle, "CBLCollection_Count")
	purego.RegisterLibFunc(&c_CBLCollection_SaveDocumentWithConcurrencyControl, handle, "CBLCollection_SaveDocumentWithConcurrencyControl")
	purego.RegisterLibFunc(&c_CBLCollection_SaveDocumentWithConflictHandler, handle, "CBLCollection_SaveDocumentWithConflictHandler")
	purego.RegisterLibFunc(&c_CBLCollection_DeleteDocumentWithConcurrencyControl, handle, "CBLCollection_DeleteDocumentWithConcurrencyControl")
	purego.RegisterLibFunc(&c_CBLCollection_PurgeDocument, handle, "CBLCollection_PurgeDocument")
	purego.RegisterLibFunc(&c_CBLCollection_AddChangeListener, handle, "CBLCollection_AddChangeListener")
	purego.RegisterLibFunc(&c_CBLScope_CollectionNames, handle, "CBLScope_CollectionNames")

	name := mustSymbol(handle, "CBLCollection_Name")
	c_CBLCollection_Name = func(collection uintptr) fl_slice_t {
		return callSliceReturn(name, collection)
	}
	getDoc := mustSymbol(handle, "CBLCollection_GetMutableDocument")
	c_CBLCollection_GetMutableDocument = func(collection uintptr, docID fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{collection}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(getDoc, args...)
		runtime.KeepAlive(&docID)
		return r1
	}
	purgeByID := mustSymbol(handle, "CBLCollection_PurgeDocumentByID")
	c_CBLCollection_PurgeDocumentByID = func(collection uintptr, docID fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{collection}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(purgeByID, args...)
		runtime.KeepAlive(&docID)
		return goBool(r1)
	}
	getExpiration := mustSymbol(handle, "CBLCollection_GetDocumentExpiration")
	c_CBLCollection_GetDocumentExpiration = func(collection uintptr, docID fl_slice_t, errorOut unsafe.Pointer) int64 {
		args := appendSliceArg([]uintptr{collection}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(getExpiration, args...)
		runtime.KeepAlive(&docID)
		return int64(r1)
	}
	setExpiration := mustSymbol(handle, "CBLCollection_SetDocumentExpiration")
	c_CBLCollection_SetDocumentExpiration = func(collection uintptr, docID fl_slice_t, expiration int64, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{collection}, &docID)
		args = append(args, uintptr(expiration), uintptr(errorOut))
		r1, _, _ := purego.SyscallN(setExpiration, args...)
		runtime.KeepAlive(&docID)
		return goBool(r1)
	}
	docListener := mustSymbol(handle, "CBLCollection_AddDocumentChangeListener")
	c_CBLCollection_AddDocumentChangeListener = func(collection uintptr, docID fl_slice_t, listener, context uintptr) uintptr {
		args := appendSliceArg([]uintptr{collection}, &docID)
		args = append(args, listener, context)
		r1, _, _ := purego.SyscallN(docListener, args...)
		runtime.KeepAlive(&docID)
		return r1
	}
	scopeName := mustSymbol(handle, "CBLScope_Name")
	c_CBLScope_Name = func(scope uintptr) fl_slice_t {
		return callSliceReturn(scopeName, scope)
	}
	scopeCollection := mustSymbol(handle, "CBLScope_Collection")
	c_CBLScope_Collection = func(scope uintptr, collectionName fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{scope}, &collectionName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(scopeCollection, args...)
		runtime.KeepAlive(&collectionName)
		return r1
	}
}
