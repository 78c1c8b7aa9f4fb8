// Go bindings for the Couchbase Lite C library (libcblite).
//
// The native library is loaded at runtime; no cgo is involved. All
// replication, conflict resolution, storage and querying happen inside
// libcblite; this package only wraps its handles, marshals slices and
// bridges its C callbacks into Go closures.
package cblite

import "fmt"

// libraryLoadError records why the native library failed to load. The
// binding function variables stay nil in that case and every entry point
// panics through them; callers that want a soft failure check LoadError
// first.
var libraryLoadError error

func init() {
	library, err := loadLibrary("cblite")
	if err != nil {
		libraryLoadError = fmt.Errorf("unable to load couchbase lite library: %w", err)
		return
	}
	register_cbl_base(library)
	register_cbl_fleece(library)
	register_cbl_database(library)
	register_cbl_document(library)
	register_cbl_collection(library)
	register_cbl_replicator(library)
	register_cbl_encryptable(library)
}

// LoadError reports why libcblite failed to load, or nil when the library
// is available and the bindings are usable.
func LoadError() error {
	return libraryLoadError
}
