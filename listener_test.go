package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallbackRegistryRoundTrip(t *testing.T) {
	var reg callbackRegistry

	fn := func() {}
	id := reg.add(fn)
	require.NotZero(t, id)
	require.NotNil(t, reg.lookup(id))

	other := reg.add(func() {})
	require.NotEqual(t, id, other)

	reg.remove(id)
	require.Nil(t, reg.lookup(id))
	require.NotNil(t, reg.lookup(other))
}

func TestCallbackRegistryLookupOfUnknownID(t *testing.T) {
	var reg callbackRegistry
	require.Nil(t, reg.lookup(42))
}

func TestListenerTokenRemoveDropsRegistryEntry(t *testing.T) {
	ctxID := callbacks.add(DatabaseChangeListener(func(*Database, []string) {}))
	// no native token: BufferNotifications-style registrations have none
	token := newListenerToken(0, ctxID)

	require.NotNil(t, callbacks.lookup(ctxID))
	token.Remove()
	require.Nil(t, callbacks.lookup(ctxID))

	// idempotent
	token.Remove()
}

func TestTrampolineDropsDeliveryAfterRemoval(t *testing.T) {
	// a delivery racing with Remove finds no registry entry; the type
	// assertion in the trampoline body must come back negative
	ctxID := callbacks.add(DatabaseChangeListener(func(*Database, []string) {
		t.Fatal("listener invoked after removal")
	}))
	newListenerToken(0, ctxID).Remove()

	fn, ok := callbacks.lookup(ctxID).(DatabaseChangeListener)
	require.False(t, ok)
	require.Nil(t, fn)
}
