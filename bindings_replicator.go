package cblite

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// define opaque pointers as-is and accept them as exact arguments
type cbl_replicator_t struct{}
type cbl_endpoint_t struct{}
type cbl_authenticator_t struct{}

type cblReplicator *cbl_replicator_t
type cblEndpoint *cbl_endpoint_t
type cblAuthenticator *cbl_authenticator_t

// define all necessary private C structs
// private C structs MUST have fields with low level types (e.g. uintptr, numbers)

// cbl_proxy_settings_t mirrors CBLProxySettings.
type cbl_proxy_settings_t struct {
	proxyType uint8 // CBLProxyType
	_         [7]byte
	hostname  fl_slice_t
	port      uint16 // uint16_t
	_         [6]byte
	username  fl_slice_t
	password  fl_slice_t
}

// cbl_replicator_progress_t mirrors CBLReplicatorProgress.
type cbl_replicator_progress_t struct {
	complete      float32 // 0.0 .. 1.0
	_             [4]byte
	documentCount uint64
}

// cbl_replicator_status_t mirrors CBLReplicatorStatus.
type cbl_replicator_status_t struct {
	activity uint8 // CBLReplicatorActivityLevel
	_        [7]byte
	progress cbl_replicator_progress_t
	err      cbl_error_t
	_        [4]byte
}

// cbl_replicated_document_t mirrors CBLReplicatedDocument.
type cbl_replicated_document_t struct {
	id         fl_slice_t // FLString
	flags      uint32     // CBLDocumentFlags
	_          [4]byte
	err        cbl_error_t
	_          [4]byte
	scope      fl_slice_t // FLString
	collection fl_slice_t // FLString
}

// cbl_replication_collection_t mirrors CBLReplicationCollection.
type cbl_replication_collection_t struct {
	collection       uintptr // CBLCollection*
	conflictResolver uintptr // CBLConflictResolver
	pushFilter       uintptr // CBLReplicationFilter
	pullFilter       uintptr // CBLReplicationFilter
	channels         uintptr // FLArray
	documentIDs      uintptr // FLArray
}

// cbl_replicator_config_t mirrors CBLReplicatorConfiguration.
type cbl_replicator_config_t struct {
	database                  uintptr // CBLDatabase*
	endpoint                  uintptr // CBLEndpoint*
	replicatorType            uint8   // CBLReplicatorType
	continuous                uint8   // bool
	disableAutoPurge          uint8   // bool
	_                         [1]byte
	maxAttempts               uint32 // unsigned
	maxAttemptWaitTime        uint32 // unsigned, seconds
	heartbeat                 uint32 // unsigned, seconds
	authenticator             uintptr // CBLAuthenticator*
	proxy                     uintptr // const CBLProxySettings*
	headers                   uintptr // FLDict
	pinnedServerCertificate   fl_slice_t
	trustedRootCertificates   fl_slice_t
	channels                  uintptr // FLArray
	documentIDs               uintptr // FLArray
	pushFilter                uintptr // CBLReplicationFilter
	pullFilter                uintptr // CBLReplicationFilter
	conflictResolver          uintptr // CBLConflictResolver
	context                   uintptr // void*
	propertyEncryptor         uintptr // CBLPropertyEncryptor
	propertyDecryptor         uintptr // CBLPropertyDecryptor
	documentPropertyEncryptor uintptr // CBLDocumentPropertyEncryptor
	documentPropertyDecryptor uintptr // CBLDocumentPropertyDecryptor
	collections               uintptr // CBLReplicationCollection*
	collectionCount           uintptr // size_t
	acceptParentDomainCookies uint8   // bool
	_                         [7]byte
}

// then, define C extern methods
var (
	c_CBLEndpoint_CreateWithURL func(
		url fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLEndpoint*

	c_CBLEndpoint_CreateWithLocalDB func(
		db uintptr, // CBLDatabase*
	) uintptr // CBLEndpoint*

	c_CBLEndpoint_Free func(
		endpoint uintptr, // CBLEndpoint*
	)

	c_CBLAuth_CreatePassword func(
		username fl_slice_t,
		password fl_slice_t,
	) uintptr // CBLAuthenticator*

	c_CBLAuth_CreateSession func(
		sessionID fl_slice_t,
		cookieName fl_slice_t,
	) uintptr // CBLAuthenticator*

	c_CBLAuth_Free func(
		auth uintptr, // CBLAuthenticator*
	)

	c_CBLReplicator_Create func(
		config unsafe.Pointer, // const CBLReplicatorConfiguration*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // CBLReplicator*

	c_CBLReplicator_Start func(
		replicator uintptr, // CBLReplicator*
		resetCheckpoint bool,
	)

	c_CBLReplicator_Stop func(
		replicator uintptr, // CBLReplicator*
	)

	c_CBLReplicator_SetHostReachable func(
		replicator uintptr, // CBLReplicator*
		reachable bool,
	)

	c_CBLReplicator_SetSuspended func(
		replicator uintptr, // CBLReplicator*
		suspended bool,
	)

	// Filled in by register_cbl_replicator_status: CBLReplicatorStatus is
	// wider than two registers, so the return convention differs per
	// platform (see bindings_status_*.go).
	c_CBLReplicator_Status func(
		replicator uintptr, // CBLReplicator*
		out *cbl_replicator_status_t,
	)

	c_CBLReplicator_PendingDocumentIDs func(
		replicator uintptr, // CBLReplicator*
		errorOut unsafe.Pointer, // CBLError*
	) uintptr // FLDict

	c_CBLReplicator_IsDocumentPending func(
		replicator uintptr, // CBLReplicator*
		docID fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool

	c_CBLReplicator_AddChangeListener func(
		replicator uintptr, // CBLReplicator*
		listener uintptr, // CBLReplicatorChangeListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*

	c_CBLReplicator_AddDocumentReplicationListener func(
		replicator uintptr, // CBLReplicator*
		listener uintptr, // CBLDocumentReplicationListener
		context uintptr, // void*
	) uintptr // CBLListenerToken*
)

func register_cbl_replicator(handle uintptr) {
	purego.RegisterLibFunc(&c_CBLEndpoint_CreateWithLocalDB, handle, "CBLEndpoint_CreateWithLocalDB")
	purego.RegisterLibFunc(&c_CBLEndpoint_Free, handle, "CBLEndpoint_Free")
	purego.RegisterLibFunc(&c_CBLAuth_Free, handle, "CBLAuth_Free")
	purego.RegisterLibFunc(&c_CBLReplicator_Create, handle, "CBLReplicator_Create")
	purego.RegisterLibFunc(&c_CBLReplicator_Start, handle, "CBLReplicator_Start")
	purego.RegisterLibFunc(&c_CBLReplicator_Stop, handle, "CBLReplicator_Stop")
	purego.RegisterLibFunc(&c_CBLReplicator_SetHostReachable, handle, "CBLReplicator_SetHostReachable")
	purego.RegisterLibFunc(&c_CBLReplicator_SetSuspended, handle, "CBLReplicator_SetSuspended")
	purego.RegisterLibFunc(&c_CBLReplicator_PendingDocumentIDs, handle, "CBLReplicator_PendingDocumentIDs")
	purego.RegisterLibFunc(&c_CBLReplicator_AddChangeListener, handle, "CBLReplicator_AddChangeListener")
	purego.RegisterLibFunc(&c_CBLReplicator_AddDocumentReplicationListener, handle, "CBLReplicator_AddDocumentReplicationListener")

	endpointWithURL := mustSymbol(handle, "CBLEndpoint_CreateWithURL")
	c_CBLEndpoint_CreateWithURL = func(url fl_slice_t, errorOut unsafe.Pointer) uintptr {
		args := appendSliceArg(nil, &url)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(endpointWithURL, args...)
		runtime.KeepAlive(&url)
		return r1
	}
	authPassword := mustSymbol(handle, "CBLAuth_CreatePassword")
	c_CBLAuth_CreatePassword = func(username, password fl_slice_t) uintptr {
		args := appendSliceArg(nil, &username)
		args = appendSliceArg(args, &password)
		r1, _, _ := purego.SyscallN(authPassword, args...)
		runtime.KeepAlive(&username)
		runtime.KeepAlive(&password)
		return r1
	}
	authSession := mustSymbol(handle, "CBLAuth_CreateSession")
	c_CBLAuth_CreateSession = func(sessionID, cookieName fl_slice_t) uintptr {
		args := appendSliceArg(nil, &sessionID)
		args = appendSliceArg(args, &cookieName)
		r1, _, _ := purego.SyscallN(authSession, args...)
		runtime.KeepAlive(&sessionID)
		runtime.KeepAlive(&cookieName)
		return r1
	}
	isPending := mustSymbol(handle, "CBLReplicator_IsDocumentPending")
	c_CBLReplicator_IsDocumentPending = func(replicator uintptr, docID fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{replicator}, &docID)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(isPending, args...)
		runtime.KeepAlive(&docID)
		return goBool(r1)
	}

	register_cbl_replicator_status(handle)
}
