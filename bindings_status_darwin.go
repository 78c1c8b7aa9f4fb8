//go:build darwin

package cblite

import "github.com/ebitengine/purego"

// purego marshals struct returns natively on darwin.
func register_cbl_replicator_status(handle uintptr) {
	var status func(replicator uintptr) cbl_replicator_status_t
	purego.RegisterLibFunc(&status, handle, "CBLReplicator_Status")
	c_CBLReplicator_Status = func(replicator uintptr, out *cbl_replicator_status_t) {
		*out = status(replicator)
	}
}
