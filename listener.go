package cblite

import "sync"

// callbackRegistry maps stable integer ids to boxed Go closures. The native
// side receives the id as its opaque context pointer and the trampolines
// look the closure up here; raw Go pointers never cross the FFI boundary.
type callbackRegistry struct {
	mu      sync.Mutex
	nextID  uintptr
	entries map[uintptr]any
}

func (r *callbackRegistry) add(fn any) uintptr {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if r.entries == nil {
		r.entries = make(map[uintptr]any)
	}
	r.entries[r.nextID] = fn
	return r.nextID
}

func (r *callbackRegistry) lookup(id uintptr) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[id]
}

func (r *callbackRegistry) remove(id uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

var callbacks callbackRegistry

// ListenerToken represents one registered native callback: it owns the
// registry entry that keeps the closure alive plus the native
// CBLListenerToken. Remove unregisters the native listener first, then drops
// the closure, so a delivery racing with removal finds an empty registry
// slot and becomes a no-op instead of touching freed state.
type ListenerToken struct {
	token   uintptr
	ctxID   uintptr
	removed bool
}

func newListenerToken(token, ctxID uintptr) *ListenerToken {
	return &ListenerToken{token: token, ctxID: ctxID}
}

// Remove unregisters the listener. Idempotent. After Remove returns, the
// callback will no longer be invoked.
func (t *ListenerToken) Remove() {
	if t == nil || t.removed {
		return
	}
	if t.token != 0 {
		c_CBLListener_Remove(t.token)
	}
	if t.ctxID != 0 {
		callbacks.remove(t.ctxID)
	}
	t.removed = true
}
