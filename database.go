package cblite

import (
	"runtime"
	"time"
	"unsafe"
)

// ConcurrencyControl selects how a save or delete behaves when the document
// has been modified since it was read.
type ConcurrencyControl uint8

const (
	LastWriteWins  ConcurrencyControl = 0
	FailOnConflict ConcurrencyControl = 1
)

// MaintenanceType selects the CBLDatabase_PerformMaintenance operation.
type MaintenanceType uint32

const (
	MaintenanceCompact        MaintenanceType = 0
	MaintenanceReindex        MaintenanceType = 1
	MaintenanceIntegrityCheck MaintenanceType = 2
	MaintenanceOptimize       MaintenanceType = 3
	MaintenanceFullOptimize   MaintenanceType = 4
)

// EncryptionAlgorithm identifies the database encryption cipher.
type EncryptionAlgorithm uint32

const (
	EncryptionNone   EncryptionAlgorithm = 0
	EncryptionAES256 EncryptionAlgorithm = 1
)

// EncryptionKey holds a database encryption key. Enterprise edition only.
type EncryptionKey struct {
	Algorithm EncryptionAlgorithm
	Bytes     [32]byte
}

// EncryptionKeyFromPassword derives an AES-256 key from a password using the
// native key derivation.
func EncryptionKeyFromPassword(password string) (*EncryptionKey, error) {
	var ckey cbl_encryption_key_t
	pwBytes, pwSlice := makeSliceBytes(password)
	ok := c_CBLEncryptionKey_FromPassword(unsafe.Pointer(&ckey), pwSlice)
	runtime.KeepAlive(pwBytes)
	if !ok {
		return nil, &Error{Domain: DomainCouchbaseLite, Code: CodeCrypto, Message: "key derivation failed"}
	}
	return &EncryptionKey{Algorithm: EncryptionAlgorithm(ckey.algorithm), Bytes: ckey.bytes}, nil
}

func (k *EncryptionKey) toC() cbl_encryption_key_t {
	if k == nil {
		return cbl_encryption_key_t{}
	}
	return cbl_encryption_key_t{algorithm: uint32(k.Algorithm), bytes: k.Bytes}
}

// DatabaseConfiguration controls where and how a database is opened.
type DatabaseConfiguration struct {
	// Directory the database files live in. Empty selects the platform
	// default directory.
	Directory string

	// EncryptionKey encrypts the database at rest when non-nil.
	EncryptionKey *EncryptionKey
}

// Database wraps a native CBLDatabase handle.
type Database struct {
	ref *ref
}

// OpenDatabase opens (creating if necessary) the named database.
func OpenDatabase(name string, config DatabaseConfiguration) (*Database, error) {
	nameBytes, nameSlice := makeSliceBytes(name)
	dirBytes, dirSlice := makeSliceBytes(config.Directory)
	cconfig := cbl_database_config_t{
		directory:     dirSlice,
		encryptionKey: config.EncryptionKey.toC(),
	}
	var cerr cbl_error_t
	ptr := c_CBLDatabase_Open(nameSlice, unsafe.Pointer(&cconfig), errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(dirBytes)
	if ptr == 0 {
		return nil, errorFromC(&cerr)
	}
	return &Database{ref: adoptRef(ptr)}, nil
}

// DatabaseExists reports whether a database with the given name exists in
// the given directory ("" for the default directory).
func DatabaseExists(name, inDirectory string) bool {
	nameBytes, nameSlice := makeSliceBytes(name)
	dirBytes, dirSlice := makeSliceBytes(inDirectory)
	ok := c_CBL_DatabaseExists(nameSlice, dirSlice)
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(dirBytes)
	return ok
}

// DeleteDatabaseFile deletes a closed database's files from disk. Fails with
// ErrConflict semantics if the database is open.
func DeleteDatabaseFile(name, inDirectory string) error {
	nameBytes, nameSlice := makeSliceBytes(name)
	dirBytes, dirSlice := makeSliceBytes(inDirectory)
	var cerr cbl_error_t
	ok := c_CBL_DeleteDatabase(nameSlice, dirSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(dirBytes)
	return checkBool(ok, &cerr)
}

func borrowDatabase(ptr uintptr) *Database {
	if ptr == 0 {
		return nil
	}
	return &Database{ref: borrowRef(ptr)}
}

// Name returns the database name.
func (db *Database) Name() string {
	return copyFLString(c_CBLDatabase_Name(db.ref.get()))
}

// Path returns the filesystem path of the database directory.
func (db *Database) Path() string {
	return takeSliceResultString(c_CBLDatabase_Path(db.ref.get()))
}

// Count returns the number of (undeleted) documents in the default
// collection.
func (db *Database) Count() uint64 {
	return c_CBLDatabase_Count(db.ref.get())
}

// Close closes the database. The handle stays valid for Release afterwards
// but no further operations may be performed.
func (db *Database) Close() error {
	var cerr cbl_error_t
	return checkBool(c_CBLDatabase_Close(db.ref.get(), errOut(&cerr)), &cerr)
}

// Delete closes the database and deletes its files.
func (db *Database) Delete() error {
	var cerr cbl_error_t
	return checkBool(c_CBLDatabase_Delete(db.ref.get(), errOut(&cerr)), &cerr)
}

// PerformMaintenance runs the given maintenance operation.
func (db *Database) PerformMaintenance(mtype MaintenanceType) error {
	var cerr cbl_error_t
	return checkBool(c_CBLDatabase_PerformMaintenance(db.ref.get(), uint32(mtype), errOut(&cerr)), &cerr)
}

// ChangeEncryptionKey re-encrypts the database with a new key, or decrypts
// it when key is nil.
func (db *Database) ChangeEncryptionKey(key *EncryptionKey) error {
	ckey := key.toC()
	var cerr cbl_error_t
	return checkBool(c_CBLDatabase_ChangeEncryptionKey(db.ref.get(), unsafe.Pointer(&ckey), errOut(&cerr)), &cerr)
}

// InTransaction runs fn inside a native batch transaction. The transaction
// commits when fn returns nil and aborts when it returns an error or panics;
// the error (or panic) is propagated unchanged.
func (db *Database) InTransaction(fn func() error) error {
	var cerr cbl_error_t
	if !c_CBLDatabase_BeginTransaction(db.ref.get(), errOut(&cerr)) {
		return checkBool(false, &cerr)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		var aerr cbl_error_t
		c_CBLDatabase_EndTransaction(db.ref.get(), false, errOut(&aerr))
	}()
	if err := fn(); err != nil {
		return err
	}
	var eerr cbl_error_t
	if !c_CBLDatabase_EndTransaction(db.ref.get(), true, errOut(&eerr)) {
		return checkBool(false, &eerr)
	}
	committed = true
	return nil
}

// ScopeNames lists the names of all scopes in the database.
func (db *Database) ScopeNames() ([]string, error) {
	var cerr cbl_error_t
	names := c_CBLDatabase_ScopeNames(db.ref.get(), errOut(&cerr))
	if err := checkError(&cerr); err != nil {
		return nil, err
	}
	return takeStringArray(names), nil
}

// CollectionNames lists the collections inside the named scope.
func (db *Database) CollectionNames(scopeName string) ([]string, error) {
	scopeBytes, scopeSlice := makeSliceBytes(scopeName)
	var cerr cbl_error_t
	names := c_CBLDatabase_CollectionNames(db.ref.get(), scopeSlice, errOut(&cerr))
	runtime.KeepAlive(scopeBytes)
	if err := checkError(&cerr); err != nil {
		return nil, err
	}
	return takeStringArray(names), nil
}

// Scope returns the named scope, or ErrNotFound if no collection exists
// under it.
func (db *Database) Scope(name string) (*Scope, error) {
	nameBytes, nameSlice := makeSliceBytes(name)
	var cerr cbl_error_t
	ptr := c_CBLDatabase_Scope(db.ref.get(), nameSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	return wrapScope(ptr, &cerr)
}

// DefaultScope returns the default scope, which always exists.
func (db *Database) DefaultScope() (*Scope, error) {
	var cerr cbl_error_t
	return wrapScope(c_CBLDatabase_DefaultScope(db.ref.get(), errOut(&cerr)), &cerr)
}

// Collection returns the named collection within the named scope, or
// ErrNotFound.
func (db *Database) Collection(name, scopeName string) (*Collection, error) {
	nameBytes, nameSlice := makeSliceBytes(name)
	scopeBytes, scopeSlice := makeSliceBytes(scopeName)
	var cerr cbl_error_t
	ptr := c_CBLDatabase_Collection(db.ref.get(), nameSlice, scopeSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(scopeBytes)
	return wrapCollection(ptr, &cerr)
}

// DefaultCollection returns the default collection, which always exists.
func (db *Database) DefaultCollection() (*Collection, error) {
	var cerr cbl_error_t
	return wrapCollection(c_CBLDatabase_DefaultCollection(db.ref.get(), errOut(&cerr)), &cerr)
}

// CreateCollection creates (or returns the existing) named collection.
func (db *Database) CreateCollection(name, scopeName string) (*Collection, error) {
	nameBytes, nameSlice := makeSliceBytes(name)
	scopeBytes, scopeSlice := makeSliceBytes(scopeName)
	var cerr cbl_error_t
	ptr := c_CBLDatabase_CreateCollection(db.ref.get(), nameSlice, scopeSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(scopeBytes)
	if ptr == 0 {
		return nil, checkBool(false, &cerr)
	}
	return &Collection{ref: adoptRef(ptr)}, nil
}

// DeleteCollection deletes the named collection and all its documents.
func (db *Database) DeleteCollection(name, scopeName string) error {
	nameBytes, nameSlice := makeSliceBytes(name)
	scopeBytes, scopeSlice := makeSliceBytes(scopeName)
	var cerr cbl_error_t
	ok := c_CBLDatabase_DeleteCollection(db.ref.get(), nameSlice, scopeSlice, errOut(&cerr))
	runtime.KeepAlive(nameBytes)
	runtime.KeepAlive(scopeBytes)
	return checkBool(ok, &cerr)
}

// GetDocument fetches the document with the given id from the default
// collection. Returns ErrNotFound when no such document exists.
func (db *Database) GetDocument(id string) (*Document, error) {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ptr := c_CBLDatabase_GetMutableDocument(db.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return wrapDocument(ptr, &cerr)
}

// SaveDocument saves with last-write-wins conflict handling.
func (db *Database) SaveDocument(doc *Document) error {
	return db.SaveDocumentWithConcurrencyControl(doc, LastWriteWins)
}

// SaveDocumentWithConcurrencyControl saves the document; with FailOnConflict
// the error unwraps to ErrConflict if the document changed underneath.
func (db *Database) SaveDocumentWithConcurrencyControl(doc *Document, control ConcurrencyControl) error {
	var cerr cbl_error_t
	ok := c_CBLDatabase_SaveDocumentWithConcurrencyControl(db.ref.get(), doc.ref.get(), uint8(control), errOut(&cerr))
	return checkBool(ok, &cerr)
}

// SaveDocumentResolving saves the document, invoking handler for each
// conflict. The handler receives the document being saved and the in-database
// conflicting revision (nil if it was deleted); returning true retries the
// save with the (possibly modified) document, returning false aborts with
// ErrConflict.
func (db *Database) SaveDocumentResolving(doc *Document, handler ConflictHandler) error {
	ctxID := callbacks.add(handler)
	defer callbacks.remove(ctxID)
	var cerr cbl_error_t
	ok := c_CBLDatabase_SaveDocumentWithConflictHandler(db.ref.get(), doc.ref.get(), conflictHandlerTrampoline, ctxID, errOut(&cerr))
	return checkBool(ok, &cerr)
}

// DeleteDocument deletes with last-write-wins conflict handling. The deletion
// is itself a revision, so it replicates.
func (db *Database) DeleteDocument(doc *Document) error {
	return db.DeleteDocumentWithConcurrencyControl(doc, LastWriteWins)
}

func (db *Database) DeleteDocumentWithConcurrencyControl(doc *Document, control ConcurrencyControl) error {
	var cerr cbl_error_t
	ok := c_CBLDatabase_DeleteDocumentWithConcurrencyControl(db.ref.get(), doc.ref.get(), uint8(control), errOut(&cerr))
	return checkBool(ok, &cerr)
}

// PurgeDocument removes every trace of the document locally, without leaving
// a tombstone. Purges do not replicate.
func (db *Database) PurgeDocument(doc *Document) error {
	var cerr cbl_error_t
	return checkBool(c_CBLDatabase_PurgeDocument(db.ref.get(), doc.ref.get(), errOut(&cerr)), &cerr)
}

func (db *Database) PurgeDocumentByID(id string) error {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ok := c_CBLDatabase_PurgeDocumentByID(db.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return checkBool(ok, &cerr)
}

// DocumentExpiration returns the document's expiration time, or the zero
// time when none is set.
func (db *Database) DocumentExpiration(id string) (time.Time, error) {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ts := c_CBLDatabase_GetDocumentExpiration(db.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	if err := checkError(&cerr); err != nil {
		return time.Time{}, err
	}
	return timeFromTimestamp(ts), nil
}

// SetDocumentExpiration schedules the document for automatic purge at the
// given time. The zero time clears a previously set expiration.
func (db *Database) SetDocumentExpiration(id string, when time.Time) error {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	ok := c_CBLDatabase_SetDocumentExpiration(db.ref.get(), idSlice, timestampFromTime(when), errOut(&cerr))
	runtime.KeepAlive(idBytes)
	return checkBool(ok, &cerr)
}

// AddChangeListener registers a listener invoked after documents in the
// default collection change. Remove the returned token to unregister.
func (db *Database) AddChangeListener(listener DatabaseChangeListener) *ListenerToken {
	ctxID := callbacks.add(listener)
	token := c_CBLDatabase_AddChangeListener(db.ref.get(), databaseChangeTrampoline, ctxID)
	return newListenerToken(token, ctxID)
}

// AddDocumentChangeListener registers a listener invoked after the one named
// document changes.
func (db *Database) AddDocumentChangeListener(id string, listener DocumentChangeListener) *ListenerToken {
	idBytes, idSlice := makeSliceBytes(id)
	ctxID := callbacks.add(listener)
	token := c_CBLDatabase_AddDocumentChangeListener(db.ref.get(), idSlice, documentChangeTrampoline, ctxID)
	runtime.KeepAlive(idBytes)
	return newListenerToken(token, ctxID)
}

// BufferNotifications switches listener delivery to manual mode: instead of
// being called immediately, callback fires once when notifications are
// pending, and SendNotifications flushes them on the caller's thread.
func (db *Database) BufferNotifications(callback NotificationsReadyCallback) *ListenerToken {
	ctxID := callbacks.add(callback)
	c_CBLDatabase_BufferNotifications(db.ref.get(), notificationsReadyTrampoline, ctxID)
	return newListenerToken(0, ctxID)
}

// SendNotifications delivers any buffered listener notifications immediately.
func (db *Database) SendNotifications() {
	c_CBLDatabase_SendNotifications(db.ref.get())
}

// Clone returns an independently owned handle over the same native database.
func (db *Database) Clone() *Database {
	return &Database{ref: db.ref.retained()}
}

// Same reports whether two handles refer to the same native database.
func (db *Database) Same(other *Database) bool {
	if db == nil || other == nil {
		return db == other
	}
	return db.ref.get() == other.ref.get()
}

// Release gives up this handle's native reference.
func (db *Database) Release() {
	db.ref.release()
}

// wrapDocument interprets the (pointer, error) pair the document getters
// return: a nil pointer with a clean error means the document does not exist.
func wrapDocument(ptr uintptr, cerr *cbl_error_t) (*Document, error) {
	if ptr == 0 {
		if cerr.code == 0 {
			return nil, ErrNotFound
		}
		return nil, errorFromC(cerr)
	}
	return adoptDocument(ptr), nil
}

func timeFromTimestamp(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func timestampFromTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
