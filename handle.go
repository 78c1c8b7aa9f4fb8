package cblite

// ref pairs one opaque native pointer with the ownership mode it was
// constructed under. Retaining and adopting refs own exactly one native
// reference count and must release it exactly once; borrowing refs own
// nothing, exist only for the duration of a native callback, and releasing
// them is a no-op.
type ref struct {
	ptr      uintptr
	borrowed bool
	released bool
}

// retainRef increments the native reference count and wraps the pointer.
func retainRef(ptr uintptr) *ref {
	if ptr == 0 {
		panic("cblite: retain of nil native pointer")
	}
	return &ref{ptr: cbl_retain(ptr)}
}

// adoptRef takes over a reference count the native side already handed out,
// typically the result of a Create/Open factory call. No increment happens.
func adoptRef(ptr uintptr) *ref {
	if ptr == 0 {
		panic("cblite: adopt of nil native pointer")
	}
	return &ref{ptr: ptr}
}

// borrowRef wraps a pointer without taking ownership.
func borrowRef(ptr uintptr) *ref {
	return &ref{ptr: ptr, borrowed: true}
}

// get returns the wrapped pointer. Using a handle after it has been released
// is a programmer error and panics.
func (r *ref) get() uintptr {
	if r.released {
		panic("cblite: use of released handle")
	}
	return r.ptr
}

// release gives up the one owned reference count. Safe to call more than
// once; only the first call reaches the native library.
func (r *ref) release() {
	if r == nil || r.released || r.borrowed {
		return
	}
	cbl_release(r.ptr)
	r.released = true
}

// retained produces an independently owned ref over the same native object.
func (r *ref) retained() *ref {
	return retainRef(r.get())
}
