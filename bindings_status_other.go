//go:build !darwin

package cblite

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// CBLReplicatorStatus does not fit in the return registers, so x86-64
// System V and Win64 hand the callee a hidden result pointer in the first
// integer argument slot.
// TODO: linux/arm64 passes that pointer in x8 instead; route this call
// through libffi (github.com/jupiterrider/ffi) to cover it.
func register_cbl_replicator_status(handle uintptr) {
	addr := mustSymbol(handle, "CBLReplicator_Status")
	c_CBLReplicator_Status = func(replicator uintptr, out *cbl_replicator_status_t) {
		purego.SyscallN(addr, uintptr(unsafe.Pointer(out)), replicator)
	}
}
