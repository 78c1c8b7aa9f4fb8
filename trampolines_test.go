package cblite

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// sliceHolder pins the byte buffers behind hand-built fl_slice_t values so
// the collector cannot reclaim them mid-test.
type sliceHolder struct {
	bufs [][]byte
}

func (h *sliceHolder) slice(s string) fl_slice_t {
	if s == "" {
		return fl_slice_t{}
	}
	b := []byte(s)
	h.bufs = append(h.bufs, b)
	return fl_slice_t{buf: uintptr(unsafe.Pointer(&b[0])), size: uintptr(len(b))}
}

func TestCopyFLStringArray(t *testing.T) {
	var h sliceHolder
	native := []fl_slice_t{
		h.slice("alpha"),
		h.slice("beta"),
		h.slice(""),
	}
	out := copyFLStringArray(uintptr(unsafe.Pointer(&native[0])), uint32(len(native)))
	require.Equal(t, []string{"alpha", "beta", ""}, out)

	require.Nil(t, copyFLStringArray(0, 3))
	require.Nil(t, copyFLStringArray(uintptr(unsafe.Pointer(&native[0])), 0))
	runtime.KeepAlive(&h)
}

func TestReplicatorStatusFromC(t *testing.T) {
	cstatus := cbl_replicator_status_t{
		activity: uint8(ActivityBusy),
		progress: cbl_replicator_progress_t{complete: 0.5, documentCount: 12},
	}
	status := replicatorStatusFromC(&cstatus)
	require.Equal(t, ActivityBusy, status.Activity)
	require.Equal(t, float32(0.5), status.Progress.Complete)
	require.Equal(t, uint64(12), status.Progress.DocumentCount)
	require.NoError(t, status.Err)

	cstatus.err = cbl_error_t{domain: uint8(DomainWebSocket), code: statusServiceUnavailable}
	status = replicatorStatusFromC(&cstatus)
	require.ErrorIs(t, status.Err, ErrTransient)
}

func TestReplicatedDocumentsFromC(t *testing.T) {
	var h sliceHolder
	native := []cbl_replicated_document_t{
		{
			id:         h.slice("doc-1"),
			flags:      uint32(DocumentDeleted),
			scope:      h.slice("_default"),
			collection: h.slice("_default"),
		},
		{
			id:  h.slice("doc-2"),
			err: cbl_error_t{domain: uint8(DomainCouchbaseLite), code: CodeConflict},
		},
	}
	docs := replicatedDocumentsFromC(uintptr(unsafe.Pointer(&native[0])), 2)
	require.Len(t, docs, 2)

	require.Equal(t, "doc-1", docs[0].ID)
	require.Equal(t, DocumentDeleted, docs[0].Flags)
	require.Equal(t, "_default", docs[0].Scope)
	require.NoError(t, docs[0].Err)

	require.Equal(t, "doc-2", docs[1].ID)
	require.ErrorIs(t, docs[1].Err, ErrConflict)
	runtime.KeepAlive(&h)
}

func TestTrampolinesAreConstructible(t *testing.T) {
	// Every trampoline is built by purego.NewCallback at package init, which
	// panics for signatures it cannot compile. Reaching this test at all means
	// init survived; the assertions pin each callback to a live code pointer.
	for name, addr := range map[string]uintptr{
		"databaseChange":           databaseChangeTrampoline,
		"documentChange":           documentChangeTrampoline,
		"notificationsReady":       notificationsReadyTrampoline,
		"collectionChange":         collectionChangeTrampoline,
		"collectionDocumentChange": collectionDocumentChangeTrampoline,
		"conflictHandler":          conflictHandlerTrampoline,
		"replicatorChange":         replicatorChangeTrampoline,
		"documentReplication":      documentReplicationTrampoline,
		"pushFilter":               pushFilterTrampoline,
		"pullFilter":               pullFilterTrampoline,
		"conflictResolver":         conflictResolverTrampoline,
		"log":                      logTrampoline,
	} {
		require.NotZero(t, addr, name)
	}
}

func TestCBool(t *testing.T) {
	require.Equal(t, uint8(1), cBool(true))
	require.Equal(t, uint8(0), cBool(false))
}
