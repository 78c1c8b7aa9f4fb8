package cblite

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// Go closure types accepted by the listener and callback APIs. Handles passed
// to listeners are borrowed: they are valid only for the duration of the call
// and must not be retained or released by the listener body. Use Clone to
// keep one beyond the callback.
type (
	DatabaseChangeListener           func(db *Database, docIDs []string)
	DocumentChangeListener           func(db *Database, docID string)
	CollectionChangeListener         func(col *Collection, docIDs []string)
	CollectionDocumentChangeListener func(col *Collection, docID string)
	ConflictHandler                  func(documentBeingSaved, conflictingDocument *Document) bool
	NotificationsReadyCallback       func(db *Database)
	ReplicatorChangeListener         func(repl *Replicator, status ReplicatorStatus)
	DocumentReplicationListener      func(repl *Replicator, isPush bool, documents []ReplicatedDocument)
	ReplicationFilter                func(doc *Document, flags DocumentFlags) bool
	ConflictResolver                 func(docID string, local, remote *Document) *Document
	PropertyEncryptor                func(docID string, properties Dict, keyPath string, input []byte) (output []byte, algorithm, kid string, err error)
	PropertyDecryptor                func(docID string, properties Dict, keyPath string, input []byte, algorithm, kid string) ([]byte, error)
	LogCallback                      func(domain LogDomain, level LogLevel, message string)
)

// replicationContext bundles every closure one replicator configuration can
// carry. A single registry id covers them all; the id doubles as the native
// config's context pointer.
type replicationContext struct {
	pushFilter       ReplicationFilter
	pullFilter       ReplicationFilter
	conflictResolver ConflictResolver
}

// copyFLStringArray copies a native FLString[numStrings] array into Go
// strings. Used for the doc id lists change listeners receive.
func copyFLStringArray(ptr uintptr, numStrings uint32) []string {
	if ptr == 0 || numStrings == 0 {
		return nil
	}
	native := unsafe.Slice((*fl_slice_t)(unsafe.Pointer(ptr)), int(numStrings))
	out := make([]string, 0, numStrings)
	for _, s := range native {
		out = append(out, copyFLString(s))
	}
	return out
}

// Every trampoline below is created exactly once at package init. The native
// side calls them with a registry id in the context slot; a missing registry
// entry means the listener raced its own removal and the delivery is dropped.
//
// By-value FLString/FLSlice arguments arrive as two pointer-sized words
// (buffer, length). No trampoline may return a struct: NewCallback cannot
// compile one, which is why the property encryption callbacks (FLSliceResult
// returns) have no trampoline and are rejected by NewReplicator.
var (
	databaseChangeTrampoline = purego.NewCallback(func(ctx, db, numDocs, docIDs uintptr) {
		fn, ok := callbacks.lookup(ctx).(DatabaseChangeListener)
		if !ok {
			return
		}
		fn(borrowDatabase(db), copyFLStringArray(docIDs, uint32(numDocs)))
	})

	documentChangeTrampoline = purego.NewCallback(func(ctx, db, docIDBuf, docIDLen uintptr) {
		fn, ok := callbacks.lookup(ctx).(DocumentChangeListener)
		if !ok {
			return
		}
		fn(borrowDatabase(db), copyFLString(fl_slice_t{buf: docIDBuf, size: docIDLen}))
	})

	notificationsReadyTrampoline = purego.NewCallback(func(ctx, db uintptr) {
		fn, ok := callbacks.lookup(ctx).(NotificationsReadyCallback)
		if !ok {
			return
		}
		fn(borrowDatabase(db))
	})

	collectionChangeTrampoline = purego.NewCallback(func(ctx, changePtr uintptr) {
		fn, ok := callbacks.lookup(ctx).(CollectionChangeListener)
		if !ok || changePtr == 0 {
			return
		}
		change := (*cbl_collection_change_t)(unsafe.Pointer(changePtr))
		fn(borrowCollection(change.collection), copyFLStringArray(change.docIDs, change.numDocs))
	})

	collectionDocumentChangeTrampoline = purego.NewCallback(func(ctx, changePtr uintptr) {
		fn, ok := callbacks.lookup(ctx).(CollectionDocumentChangeListener)
		if !ok || changePtr == 0 {
			return
		}
		change := (*cbl_document_change_t)(unsafe.Pointer(changePtr))
		fn(borrowCollection(change.collection), copyFLString(change.docID))
	})

	conflictHandlerTrampoline = purego.NewCallback(func(ctx, docBeingSaved, conflicting uintptr) uintptr {
		fn, ok := callbacks.lookup(ctx).(ConflictHandler)
		if !ok {
			return 0
		}
		if fn(borrowDocument(docBeingSaved), borrowDocument(conflicting)) {
			return 1
		}
		return 0
	})

	replicatorChangeTrampoline = purego.NewCallback(func(ctx, repl, statusPtr uintptr) {
		fn, ok := callbacks.lookup(ctx).(ReplicatorChangeListener)
		if !ok || statusPtr == 0 {
			return
		}
		status := (*cbl_replicator_status_t)(unsafe.Pointer(statusPtr))
		fn(borrowReplicator(repl), replicatorStatusFromC(status))
	})

	documentReplicationTrampoline = purego.NewCallback(func(ctx, repl, isPush, numDocuments, documents uintptr) {
		fn, ok := callbacks.lookup(ctx).(DocumentReplicationListener)
		if !ok {
			return
		}
		fn(borrowReplicator(repl), isPush != 0, replicatedDocumentsFromC(documents, uint32(numDocuments)))
	})

	pushFilterTrampoline = purego.NewCallback(func(ctx, doc, flags uintptr) uintptr {
		rc, ok := callbacks.lookup(ctx).(*replicationContext)
		if !ok || rc.pushFilter == nil {
			return 1
		}
		if rc.pushFilter(borrowDocument(doc), DocumentFlags(flags)) {
			return 1
		}
		return 0
	})

	pullFilterTrampoline = purego.NewCallback(func(ctx, doc, flags uintptr) uintptr {
		rc, ok := callbacks.lookup(ctx).(*replicationContext)
		if !ok || rc.pullFilter == nil {
			return 1
		}
		if rc.pullFilter(borrowDocument(doc), DocumentFlags(flags)) {
			return 1
		}
		return 0
	})

	conflictResolverTrampoline = purego.NewCallback(func(ctx, docIDBuf, docIDLen, local, remote uintptr) uintptr {
		rc, ok := callbacks.lookup(ctx).(*replicationContext)
		if !ok || rc.conflictResolver == nil {
			// default resolution keeps the remote revision
			return remote
		}
		resolved := rc.conflictResolver(
			copyFLString(fl_slice_t{buf: docIDBuf, size: docIDLen}),
			borrowDocument(local),
			borrowDocument(remote),
		)
		if resolved == nil {
			return 0
		}
		ptr := resolved.ref.get()
		if ptr != local && ptr != remote {
			// merged documents are released by the replicator; balance the
			// reference the resolver's caller still owns
			cbl_retain(ptr)
		}
		return ptr
	})

	logTrampoline = purego.NewCallback(func(domain, level, msgBuf, msgLen uintptr) {
		fn := currentLogCallback()
		if fn == nil {
			return
		}
		fn(LogDomain(domain), LogLevel(level), copyFLString(fl_slice_t{buf: msgBuf, size: msgLen}))
	})
)
