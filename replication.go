package cblite

import (
	"context"
	"runtime"
	"time"
	"unsafe"
)

// ReplicatorType selects the direction documents flow in.
type ReplicatorType uint8

const (
	PushAndPull ReplicatorType = 0
	Push        ReplicatorType = 1
	Pull        ReplicatorType = 2
)

// ReplicatorActivity is the replicator state machine's coarse state.
type ReplicatorActivity uint8

const (
	ActivityStopped    ReplicatorActivity = 0
	ActivityOffline    ReplicatorActivity = 1
	ActivityConnecting ReplicatorActivity = 2
	ActivityIdle       ReplicatorActivity = 3
	ActivityBusy       ReplicatorActivity = 4
)

func (a ReplicatorActivity) String() string {
	switch a {
	case ActivityStopped:
		return "stopped"
	case ActivityOffline:
		return "offline"
	case ActivityConnecting:
		return "connecting"
	case ActivityIdle:
		return "idle"
	case ActivityBusy:
		return "busy"
	}
	return "unknown"
}

// DocumentFlags describe a document inside replication callbacks.
type DocumentFlags uint32

const (
	DocumentDeleted       DocumentFlags = 1 << 0
	DocumentAccessRemoved DocumentFlags = 1 << 1
)

// Endpoint identifies the remote (or local) peer a replicator talks to.
// Endpoints are plain heap objects, not refcounted; NewReplicator consumes
// the one its configuration carries.
type Endpoint struct {
	ptr   uintptr
	freed bool
}

// NewURLEndpoint creates an endpoint for a Sync Gateway ws:// or wss:// URL.
func NewURLEndpoint(url string) (*Endpoint, error) {
	urlBytes, urlSlice := makeSliceBytes(url)
	var cerr cbl_error_t
	ptr := c_CBLEndpoint_CreateWithURL(urlSlice, errOut(&cerr))
	runtime.KeepAlive(urlBytes)
	if ptr == 0 {
		return nil, checkBool(false, &cerr)
	}
	return &Endpoint{ptr: ptr}, nil
}

// NewLocalDBEndpoint creates an endpoint for database-to-database
// replication. Enterprise edition only.
func NewLocalDBEndpoint(db *Database) *Endpoint {
	return &Endpoint{ptr: c_CBLEndpoint_CreateWithLocalDB(db.ref.get())}
}

// Free releases the endpoint. No-op after NewReplicator has consumed it.
func (e *Endpoint) Free() {
	if e == nil || e.freed {
		return
	}
	c_CBLEndpoint_Free(e.ptr)
	e.freed = true
}

func (e *Endpoint) take() uintptr {
	if e.freed {
		panic("cblite: use of freed Endpoint")
	}
	e.freed = true
	return e.ptr
}

// Authenticator supplies credentials to the remote peer. Like Endpoint it is
// a plain heap object that NewReplicator consumes.
type Authenticator struct {
	ptr   uintptr
	freed bool
}

// NewPasswordAuthenticator authenticates with HTTP Basic credentials.
func NewPasswordAuthenticator(username, password string) *Authenticator {
	userBytes, userSlice := makeSliceBytes(username)
	passBytes, passSlice := makeSliceBytes(password)
	ptr := c_CBLAuth_CreatePassword(userSlice, passSlice)
	runtime.KeepAlive(userBytes)
	runtime.KeepAlive(passBytes)
	return &Authenticator{ptr: ptr}
}

// NewSessionAuthenticator authenticates with a Sync Gateway session id,
// sent in the named cookie ("" selects the default cookie name).
func NewSessionAuthenticator(sessionID, cookieName string) *Authenticator {
	sessBytes, sessSlice := makeSliceBytes(sessionID)
	cookieBytes, cookieSlice := makeSliceBytes(cookieName)
	ptr := c_CBLAuth_CreateSession(sessSlice, cookieSlice)
	runtime.KeepAlive(sessBytes)
	runtime.KeepAlive(cookieBytes)
	return &Authenticator{ptr: ptr}
}

// Free releases the authenticator. No-op after NewReplicator has consumed
// it.
func (a *Authenticator) Free() {
	if a == nil || a.freed {
		return
	}
	c_CBLAuth_Free(a.ptr)
	a.freed = true
}

func (a *Authenticator) take() uintptr {
	if a.freed {
		panic("cblite: use of freed Authenticator")
	}
	a.freed = true
	return a.ptr
}

// ProxyType selects the proxy protocol.
type ProxyType uint8

const (
	ProxyHTTP  ProxyType = 0
	ProxyHTTPS ProxyType = 1
)

// ProxySettings routes the replicator's connection through an HTTP proxy.
type ProxySettings struct {
	Type     ProxyType
	Hostname string
	Port     uint16
	Username string
	Password string
}

// ReplicationCollection scopes replication to one collection. When a
// configuration lists collections, the configuration-level filter and
// resolver callbacks apply to each listed collection.
type ReplicationCollection struct {
	Collection  *Collection
	Channels    []string
	DocumentIDs []string
}

// ReplicatorConfiguration describes one replication relationship between a
// local database and an endpoint.
type ReplicatorConfiguration struct {
	Database *Database
	Endpoint *Endpoint

	ReplicatorType   ReplicatorType
	Continuous       bool
	DisableAutoPurge bool

	// MaxAttempts caps connection retries; 0 keeps the native default.
	MaxAttempts uint32
	// MaxAttemptWaitTime and Heartbeat are rounded down to whole seconds;
	// zero keeps the native defaults.
	MaxAttemptWaitTime time.Duration
	Heartbeat          time.Duration

	Authenticator *Authenticator
	Proxy         *ProxySettings
	Headers       map[string]string

	PinnedServerCertificate []byte
	TrustedRootCertificates []byte

	// Channels and DocumentIDs filter what the default collection pulls.
	Channels    []string
	DocumentIDs []string

	PushFilter       ReplicationFilter
	PullFilter       ReplicationFilter
	ConflictResolver ConflictResolver

	// PropertyEncryptor and PropertyDecryptor transform values marked
	// encryptable as they cross the wire. Enterprise edition only.
	// The native callbacks return an FLSliceResult by value, which
	// Go-generated callbacks cannot produce, so configurations carrying
	// either are currently rejected with ErrUnsupported.
	PropertyEncryptor PropertyEncryptor
	PropertyDecryptor PropertyDecryptor

	// Collections replicates the listed collections instead of the default
	// one. Channels and DocumentIDs above are ignored when set.
	Collections []ReplicationCollection

	AcceptParentDomainCookies bool
}

// Replicator wraps a native CBLReplicator.
type Replicator struct {
	ref     *ref
	ctxID   uintptr
	ownsCtx bool
}

// NewReplicator creates a replicator for the given configuration. The
// configuration's Endpoint and Authenticator are consumed: the replicator
// keeps its own references and the native objects are freed before this
// returns, on failure as well. The Database handle stays with the caller.
func NewReplicator(config ReplicatorConfiguration) (*Replicator, error) {
	if config.Endpoint == nil {
		return nil, &Error{Domain: DomainCouchbaseLite, Code: CodeInvalidParam, Message: "replicator configuration requires an endpoint"}
	}
	if config.PropertyEncryptor != nil || config.PropertyDecryptor != nil {
		return nil, &Error{Domain: DomainCouchbaseLite, Code: CodeUnsupported, Message: "property encryption callbacks are not supported"}
	}
	rc := &replicationContext{
		pushFilter:       config.PushFilter,
		pullFilter:       config.PullFilter,
		conflictResolver: config.ConflictResolver,
	}
	ctxID := callbacks.add(rc)

	cconfig := cbl_replicator_config_t{
		endpoint:                  config.Endpoint.take(),
		replicatorType:            uint8(config.ReplicatorType),
		continuous:                cBool(config.Continuous),
		disableAutoPurge:          cBool(config.DisableAutoPurge),
		maxAttempts:               config.MaxAttempts,
		maxAttemptWaitTime:        uint32(config.MaxAttemptWaitTime / time.Second),
		heartbeat:                 uint32(config.Heartbeat / time.Second),
		context:                   ctxID,
		acceptParentDomainCookies: cBool(config.AcceptParentDomainCookies),
	}
	// database and collections are mutually exclusive in the C config
	if config.Database != nil && len(config.Collections) == 0 {
		cconfig.database = config.Database.ref.get()
	}
	if config.Authenticator != nil {
		cconfig.authenticator = config.Authenticator.take()
	}

	var proxy cbl_proxy_settings_t
	var proxyHost, proxyUser, proxyPass []byte
	if config.Proxy != nil {
		proxyHost, proxy.hostname = makeSliceBytes(config.Proxy.Hostname)
		proxyUser, proxy.username = makeSliceBytes(config.Proxy.Username)
		proxyPass, proxy.password = makeSliceBytes(config.Proxy.Password)
		proxy.proxyType = uint8(config.Proxy.Type)
		proxy.port = config.Proxy.Port
		cconfig.proxy = uintptr(unsafe.Pointer(&proxy))
	}

	cconfig.pinnedServerCertificate = makeSlice(config.PinnedServerCertificate)
	cconfig.trustedRootCertificates = makeSlice(config.TrustedRootCertificates)

	// Fleece containers are retained by the native config copy, so the
	// local references can be dropped after Create.
	var fleeceRefs []uintptr
	releaseFleece := func() {
		for _, ptr := range fleeceRefs {
			c_FLValue_Release(ptr)
		}
	}
	stringArray := func(values []string) uintptr {
		if values == nil {
			return 0
		}
		arr := newMutableArrayFromStrings(values)
		fleeceRefs = append(fleeceRefs, arr.get())
		return arr.get()
	}
	if config.Headers != nil {
		headers := newMutableDictFromMap(config.Headers)
		fleeceRefs = append(fleeceRefs, headers.get())
		cconfig.headers = headers.get()
	}
	cconfig.channels = stringArray(config.Channels)
	cconfig.documentIDs = stringArray(config.DocumentIDs)

	if config.PushFilter != nil {
		cconfig.pushFilter = pushFilterTrampoline
	}
	if config.PullFilter != nil {
		cconfig.pullFilter = pullFilterTrampoline
	}
	if config.ConflictResolver != nil {
		cconfig.conflictResolver = conflictResolverTrampoline
	}

	var ccollections []cbl_replication_collection_t
	if len(config.Collections) > 0 {
		ccollections = make([]cbl_replication_collection_t, len(config.Collections))
		for i, col := range config.Collections {
			ccollections[i] = cbl_replication_collection_t{
				collection:       col.Collection.ref.get(),
				conflictResolver: cconfig.conflictResolver,
				pushFilter:       cconfig.pushFilter,
				pullFilter:       cconfig.pullFilter,
				channels:         stringArray(col.Channels),
				documentIDs:      stringArray(col.DocumentIDs),
			}
		}
		cconfig.collections = uintptr(unsafe.Pointer(&ccollections[0]))
		cconfig.collectionCount = uintptr(len(ccollections))
	}

	var cerr cbl_error_t
	ptr := c_CBLReplicator_Create(unsafe.Pointer(&cconfig), errOut(&cerr))
	releaseFleece()
	// the replicator retains the endpoint and authenticator on success;
	// the config-owned objects are freed here regardless of outcome
	c_CBLEndpoint_Free(cconfig.endpoint)
	if cconfig.authenticator != 0 {
		c_CBLAuth_Free(cconfig.authenticator)
	}
	runtime.KeepAlive(proxyHost)
	runtime.KeepAlive(proxyUser)
	runtime.KeepAlive(proxyPass)
	runtime.KeepAlive(config.PinnedServerCertificate)
	runtime.KeepAlive(config.TrustedRootCertificates)
	runtime.KeepAlive(ccollections)
	if ptr == 0 {
		callbacks.remove(ctxID)
		return nil, checkBool(false, &cerr)
	}
	return &Replicator{ref: adoptRef(ptr), ctxID: ctxID, ownsCtx: true}, nil
}

func borrowReplicator(ptr uintptr) *Replicator {
	if ptr == 0 {
		return nil
	}
	return &Replicator{ref: borrowRef(ptr)}
}

// Start begins (or resumes) replication in the background. With
// resetCheckpoint the replicator re-examines every document as if it had
// never replicated before.
func (r *Replicator) Start(resetCheckpoint bool) {
	c_CBLReplicator_Start(r.ref.get(), resetCheckpoint)
}

// Stop asks the replicator to stop. The replicator keeps running until its
// activity reaches ActivityStopped; use StopAndWait to block on that.
func (r *Replicator) Stop() {
	c_CBLReplicator_Stop(r.ref.get())
}

// StopAndWait stops the replicator and blocks until it reports
// ActivityStopped or ctx is done.
func (r *Replicator) StopAndWait(ctx context.Context) error {
	stopped := make(chan struct{}, 1)
	token := r.AddChangeListener(func(_ *Replicator, status ReplicatorStatus) {
		if status.Activity == ActivityStopped {
			select {
			case stopped <- struct{}{}:
			default:
			}
		}
	})
	defer token.Remove()

	// the listener only fires on transitions, so check the current state
	// after registering to avoid waiting on an already stopped replicator
	if r.Status().Activity == ActivityStopped {
		return nil
	}
	r.Stop()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetHostReachable hints the replicator about network reachability, so an
// offline continuous replicator can retry immediately.
func (r *Replicator) SetHostReachable(reachable bool) {
	c_CBLReplicator_SetHostReachable(r.ref.get(), reachable)
}

// SetSuspended pauses or resumes a replicator without tearing it down.
func (r *Replicator) SetSuspended(suspended bool) {
	c_CBLReplicator_SetSuspended(r.ref.get(), suspended)
}

// ReplicatorProgress is a fractional completion estimate.
type ReplicatorProgress struct {
	// Complete ranges from 0.0 to 1.0. It can regress while the replicator
	// discovers more work.
	Complete      float32
	DocumentCount uint64
}

// ReplicatorStatus is a snapshot of the replicator's state.
type ReplicatorStatus struct {
	Activity ReplicatorActivity
	Progress ReplicatorProgress
	// Err holds the most recent error, nil while everything is healthy.
	Err error
}

func replicatorStatusFromC(cstatus *cbl_replicator_status_t) ReplicatorStatus {
	status := ReplicatorStatus{
		Activity: ReplicatorActivity(cstatus.activity),
		Progress: ReplicatorProgress{
			Complete:      cstatus.progress.complete,
			DocumentCount: cstatus.progress.documentCount,
		},
	}
	if cstatus.err.code != 0 {
		cerr := cstatus.err
		status.Err = errorFromC(&cerr)
	}
	return status
}

// Status returns the replicator's current state.
func (r *Replicator) Status() ReplicatorStatus {
	var cstatus cbl_replicator_status_t
	c_CBLReplicator_Status(r.ref.get(), &cstatus)
	return replicatorStatusFromC(&cstatus)
}

// PendingDocumentIDs lists the ids of documents with local changes not yet
// pushed. Meaningful only for push replications.
func (r *Replicator) PendingDocumentIDs() ([]string, error) {
	var cerr cbl_error_t
	dict := c_CBLReplicator_PendingDocumentIDs(r.ref.get(), errOut(&cerr))
	if err := checkError(&cerr); err != nil {
		return nil, err
	}
	if dict == 0 {
		return nil, nil
	}
	ids := Dict{ptr: dict}.Keys()
	c_FLValue_Release(dict)
	return ids, nil
}

// IsDocumentPending reports whether the named document has local changes
// not yet pushed.
func (r *Replicator) IsDocumentPending(id string) (bool, error) {
	idBytes, idSlice := makeSliceBytes(id)
	var cerr cbl_error_t
	pending := c_CBLReplicator_IsDocumentPending(r.ref.get(), idSlice, errOut(&cerr))
	runtime.KeepAlive(idBytes)
	if err := checkError(&cerr); err != nil {
		return false, err
	}
	return pending, nil
}

// AddChangeListener registers a listener invoked whenever the replicator's
// status changes.
func (r *Replicator) AddChangeListener(listener ReplicatorChangeListener) *ListenerToken {
	ctxID := callbacks.add(listener)
	token := c_CBLReplicator_AddChangeListener(r.ref.get(), replicatorChangeTrampoline, ctxID)
	return newListenerToken(token, ctxID)
}

// ReplicatedDocument describes one document inside a document replication
// event.
type ReplicatedDocument struct {
	ID    string
	Flags DocumentFlags
	// Err is non-nil when this document failed to replicate.
	Err        error
	Scope      string
	Collection string
}

func replicatedDocumentsFromC(ptr uintptr, numDocuments uint32) []ReplicatedDocument {
	if ptr == 0 || numDocuments == 0 {
		return nil
	}
	native := unsafe.Slice((*cbl_replicated_document_t)(unsafe.Pointer(ptr)), int(numDocuments))
	out := make([]ReplicatedDocument, 0, numDocuments)
	for i := range native {
		doc := ReplicatedDocument{
			ID:         copyFLString(native[i].id),
			Flags:      DocumentFlags(native[i].flags),
			Scope:      copyFLString(native[i].scope),
			Collection: copyFLString(native[i].collection),
		}
		if native[i].err.code != 0 {
			cerr := native[i].err
			doc.Err = errorFromC(&cerr)
		}
		out = append(out, doc)
	}
	return out
}

// AddDocumentReplicationListener registers a listener invoked with the
// outcome of each batch of replicated documents.
func (r *Replicator) AddDocumentReplicationListener(listener DocumentReplicationListener) *ListenerToken {
	ctxID := callbacks.add(listener)
	token := c_CBLReplicator_AddDocumentReplicationListener(r.ref.get(), documentReplicationTrampoline, ctxID)
	return newListenerToken(token, ctxID)
}

// Clone returns an independently owned handle over the same native
// replicator. The configuration callbacks stay owned by the original
// handle.
func (r *Replicator) Clone() *Replicator {
	return &Replicator{ref: r.ref.retained(), ctxID: r.ctxID}
}

// Same reports whether two handles refer to the same native replicator.
func (r *Replicator) Same(other *Replicator) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ref.get() == other.ref.get()
}

// Release gives up this handle's native reference and, for the handle that
// created the replicator, drops its configuration callbacks.
func (r *Replicator) Release() {
	r.ref.release()
	if r.ownsCtx && r.ctxID != 0 {
		callbacks.remove(r.ctxID)
		r.ctxID = 0
	}
}

func cBool(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
