package cblite

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// define opaque pointers as-is and accept them as exact arguments
type cbl_database_t struct{}
type cbl_scope_t struct{}
type cbl_collection_t struct{}

type cblDatabase *cbl_database_t
type cblScope *cbl_scope_t
type cblCollection *cbl_collection_t

// define all necessary private C structs
// cbl_encryption_key_t mirrors CBLEncryptionKey.
type cbl_encryption_key_t struct {
	algorithm uint32 // CBLEncryptionAlgorithm
	bytes     [32]byte
}

// cbl_database_config_t mirrors CBLDatabaseConfiguration (enterprise layout,
// which includes the encryption key).
type cbl_database_config_t struct {
	directory     fl_slice_t
	encryptionKey cbl_encryption_key_t
	_             [4]byte // padding to 8-byte alignment
}

// then, define C extern methods
var (
	c_CBL_DatabaseExists func(
		name fl_slice_t,
		inDirectory fl_slice_t,
	) bool

	c_CBL_DeleteDatabase func(
		name fl_slice_t,
		inDirectory fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLEncryptionKey_FromPassword func(
		key unsafe.Pointer, // CBLEncryptionKey*
		password fl_slice_t,
	) bool

	c_CBLDatabase_Open func(
		name fl_slice_t,
		config unsafe.Pointer, // const CBLDatabaseConfiguration*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLDatabase*

	c_CBLDatabase_Close func(
		db uintptr, // CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_Delete func(
		db uintptr, // CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_PerformMaintenance func(
		db uintptr, // CBLDatabase*
		maintenanceType uint32, // CBLMaintenanceType
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_BeginTransaction func(
		db uintptr, // CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_EndTransaction func(
		db uintptr, // CBLDatabase*
		commit bool,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_ChangeEncryptionKey func(
		db uintptr, // CBLDatabase*
		key unsafe.Pointer, // const CBLEncryptionKey*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_Name func(
		db uintptr, // const CBLDatabase*
	) fl_slice_t

	c_CBLDatabase_Path func(
		db uintptr, // const CBLDatabase*
	) fl_slice_result_t

	c_CBLDatabase_Count func(
		db uintptr, // const CBLDatabase*
	) uint64

	c_CBLDatabase_ScopeNames func(
		db uintptr, // const CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // FLMutableArray

	c_CBLDatabase_CollectionNames func(
		db uintptr, // const CBLDatabase*
		scopeName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // FLMutableArray

	c_CBLDatabase_Scope func(
		db uintptr, // const CBLDatabase*
		scopeName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLScope*

	c_CBLDatabase_Collection func(
		db uintptr, // const CBLDatabase*
		collectionName fl_slice_t,
		scopeName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLCollection*

	c_CBLDatabase_CreateCollection func(
		db uintptr, // CBLDatabase*
		collectionName fl_slice_t,
		scopeName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLCollection*

	c_CBLDatabase_DeleteCollection func(
		db uintptr, // CBLDatabase*
		collectionName fl_slice_t,
		scopeName fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_DefaultScope func(
		db uintptr, // const CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLScope*

	c_CBLDatabase_DefaultCollection func(
		db uintptr, // const CBLDatabase*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLCollection*

	c_CBLDatabase_AddChangeListener func(
		db uintptr, // const CBLDatabase*
		listener uintptr, // CBLDatabaseChangeListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*

	c_CBLDatabase_BufferNotifications func(
		db uintptr, // CBLDatabase*
		callback uintptr, // CBLNotificationsReadyCallback
		context uintptr, // void*
	)

	c_CBLDatabase_SendNotifications func(
		db uintptr, // CBLDatabase*
	)

	c_CBLDatabase_GetMutableDocument func(
		db uintptr, // CBLDatabase*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLDocument*

	c_CBLDatabase_SaveDocumentWithConcurrencyControl func(
		db uintptr, // CBLDatabase*
		doc uintptr, // CBLDocument*
		concurrency uint8, // CBLConcurrencyControl
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_SaveDocumentWithConflictHandler func(
		db uintptr, // CBLDatabase*
		doc uintptr, // CBLDocument*
		handler uintptr, // CBLConflictHandler
		context uintptr, // void*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_DeleteDocumentWithConcurrencyControl func(
		db uintptr, // CBLDatabase*
		doc uintptr, // CBLDocument*
		concurrency uint8, // CBLConcurrencyControl
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_PurgeDocument func(
		db uintptr, // CBLDatabase*
		doc uintptr, // CBLDocument*
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_PurgeDocumentByID func(
		db uintptr, // CBLDatabase*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_GetDocumentExpiration func(
		db uintptr, // CBLDatabase*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) int64 // CBLTimestamp, ms since epoch

	c_CBLDatabase_SetDocumentExpiration func(
		db uintptr, // CBLDatabase*
		docID fl_slice_t,
		expiration int64, // CBLTimestamp
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLDatabase_AddDocumentChangeListener func(
		db uintptr, // const CBLDatabase*
		docID fl_slice_t,
		listener uintptr, // CBLDocumentChangeListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*
)

func register_cbl_database(handle uintptr) {
	purego.RegisterLibFunc(&c_CBLDatabase_Close, handle, "CBLDatabase_Close")
	purego.RegisterLibFunc(&c_CBLDatabase_Delete, handle, "CBLDatabase_Delete")
	purego.RegisterLibFunc(&c_CBLDatabase_PerformMaintenance, handle, "CBLDatabase_PerformMaintenance")
	purego.RegisterLibFunc(&c_CBLDatabase_BeginTransaction, handle, "CBLDatabase_BeginTransaction")
	purego.RegisterLibFunc(&c_CBLDatabase_EndTransaction, handle, "CBLDatabase_EndTransaction")
	purego.RegisterLibFunc(&c_CBLDatabase_ChangeEncryptionKey, handle, "CBLDatabase_ChangeEncryptionKey")
	purego.RegisterLibFunc(&c_CBLDatabase_Count, handle, "CBLDatabase_Count")
	purego.RegisterLibFunc(&c_CBLDatabase_ScopeNames, handle, "CBLDatabase_ScopeNames")
	purego.RegisterLibFunc(&c_CBLDatabase_DefaultScope, handle, "CBLDatabase_DefaultScope")
	purego.RegisterLibFunc(&c_CBLDatabase_DefaultCollection, handle, "CBLDatabase_DefaultCollection")
	purego.RegisterLibFunc(&c_CBLDatabase_AddChangeListener, handle, "CBLDatabase_AddChangeListener")
	purego.RegisterLibFunc(&c_CBLDatabase_BufferNotifications, handle, "CBLDatabase_BufferNotifications")
	purego.RegisterLibFunc(&c_CBLDatabase_SendNotifications, handle, "CBLDatabase_SendNotifications")
	purego.RegisterLibFunc(&c_CBLDatabase_SaveDocumentWithConcurrencyControl, handle, "CBLDatabase_SaveDocumentWithConcurrencyControl")
	purego.RegisterLibFunc(&c_CBLDatabase_SaveDocumentWithConflictHandler, handle, "CBLDatabase_SaveDocumentWithConflictHandler")
	purego.RegisterLibFunc(&c_CBLDatabase_DeleteDocumentWithConcurrencyControl, handle, "CBLDatabase_DeleteDocumentWithConcurrencyControl")
	purego.RegisterLibFunc(&c_CBLDatabase_PurgeDocument, handle, "CBLDatabase_PurgeDocument")

	exists := mustSymbol(handle, "CBL_DatabaseExists")
	c_CBL_DatabaseExists = func(name, inDirectory fl_slice_t) bool {
		args := appendSliceArg(nil, &name)
		args = appendSliceArg(args, &inDirectory)
		r1, _, _ := purego.SyscallN(exists, args...)
		runtime.KeepAlive(&name)
		runtime.KeepAlive(&inDirectory)
		return goBool(r1)
	}
	deleteDB := mustSymbol(handle, "CBL_DeleteDatabase")
	c_CBL_DeleteDatabase = func(name, inDirectory fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg(nil, &name)
		args = appendSliceArg(args, &inDirectory)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(deleteDB, args...)
		runtime.KeepAlive(&name)
		runtime.KeepAlive(&inDirectory)
		return goBool(r1)
	}
	keyFromPassword := mustSymbol(handle, "CBLEncryptionKey_FromPassword")
	c_CBLEncryptionKey_FromPassword = func(key unsafe.Pointer, password fl_slice_t) bool {
		r1, _, _ := purego.SyscallN(keyFromPassword, appendSliceArg([]uintptr{uintptr(key)}, &password)...)
		runtime.KeepAlive(&password)
		return goBool(r1)
	}
	open := mustSymbol(handle, "CBLDatabase_Open")
	c_CBLDatabase_Open = func(name fl_slice_t, config, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg(nil, &name)
		args = append(args, uintptr(config), uintptr(errorOut))
		r1, _, _ := purego.SyscallN(open, args...)
		runtime.KeepAlive(&name)
		return r1
	}
	name := mustSymbol(handle, "CBLDatabase_Name")
	c_CBLDatabase_Name = func(db uintptr) fl_slice_t {
		return callSliceReturn(name, db)
	}
	path := mustSymbol(handle, "CBLDatabase_Path")
	c_CBLDatabase_Path = func(db uintptr) fl_slice_result_t {
		return callSliceResultReturn(path, db)
	}
	collectionNames := mustSymbol(handle, "CBLDatabase_CollectionNames")
	c_CBLDatabase_CollectionNames = func(db uintptr, scopeName fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{db}, &scopeName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(collectionNames, args...)
		runtime.KeepAlive(&scopeName)
		return r1
	}
	scope := mustSymbol(handle, "CBLDatabase_Scope")
	c_CBLDatabase_Scope = func(db uintptr, scopeName fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{db}, &scopeName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(scope, args...)
		runtime.KeepAlive(&scopeName)
		return r1
	}
	collection := mustSymbol(handle, "CBLDatabase_Collection")
	c_CBLDatabase_Collection = func(db uintptr, collectionName, scopeName fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{db}, &collectionName)
		args = appendSliceArg(args, &scopeName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(collection, args...)
		runtime.KeepAlive(&collectionName)
		runtime.KeepAlive(&scopeName)
		return r1
	}
	createCollection := mustSymbol(handle, "CBLDatabase_CreateCollection")
	c_CBLDatabase_CreateCollection = func(db uintptr, collectionName, scopeName fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{db}, &collectionName)
		args = appendSliceArg(args, &scopeName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(createCollection, args...)
		runtime.KeepAlive(&collectionName)
		runtime.KeepAlive(&scopeName)
		return r1
	}
	deleteCollection := mustSymbol(handle, "CBLDatabase_DeleteCollection")
	c_CBLDatabase_DeleteCollection = func(db uintptr, collectionName, scopeName fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{db}, &collectionName)
		args = appendSliceArg(args, &scopeName)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(deleteCollection, args...)
		runtime.KeepAlive(&collectionName)
		runtime.KeepAlive(&scopeName)
		return goBool(r1)
	}
	getDoc := mustSymbol(handle, "CBLDatabase_GetMutableDocument")
	c_CBLDatabase_GetMutableDocument = func(db uintptr, docID fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg([]uintptr{db}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(getDoc, args...)
		runtime.KeepAlive(&docID)
		return r1
	}
	purgeByID := mustSymbol(handle, "CBLDatabase_PurgeDocumentByID")
	c_CBLDatabase_PurgeDocumentByID = func(db uintptr, docID fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{db}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(purgeByID, args...)
		runtime.KeepAlive(&docID)
		return goBool(r1)
	}
	getExpiration := mustSymbol(handle, "CBLDatabase_GetDocumentExpiration")
	c_CBLDatabase_GetDocumentExpiration = func(db uintptr, docID fl_slice_t, errorOut unsafe.Pointer) int64 {
		args := appendSliceArg([]uintptr{db}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(getExpiration, args...)
		runtime.KeepAlive(&docID)
		return int64(r1)
	}
	setExpiration := mustSymbol(handle, "CBLDatabase_SetDocumentExpiration")
	c_CBLDatabase_SetDocumentExpiration = func(db uintptr, docID fl_slice_t, expiration int64, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{db}, &docID)
		args = append(args, uintptr(expiration), uintptr(errorOut))
		r1, _, _ := purego.SyscallN(setExpiration, args...)
		runtime.KeepAlive(&docID)
		return goBool(r1)
	}
	docListener := mustSymbol(handle, "CBLDatabase_AddDocumentChangeListener")
	c_CBLDatabase_AddDocumentChangeListener = func(db uintptr, docID fl_slice_t, listener, context uintptr) uintptr {
		args := appendSliceArg([]uintptr{db}, &docID)
		args = append(args, listener, context)
		r1, _, _ := purego.SyscallN(docListener, args...)
		runtime.KeepAlive(&docID)
		return r1
	}
}
