package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutableDictRoundTrip(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	defer dict.Release()

	dict.SetString("name", "grocery list")
	dict.SetInt64("items", 42)
	dict.SetBool("done", true)
	dict.SetFloat64("total", 12.5)

	require.Equal(t, uint(4), dict.Count())
	require.Equal(t, "grocery list", dict.Get("name").AsString())
	require.Equal(t, int64(42), dict.Get("items").AsInt64())
	require.True(t, dict.Get("done").AsBool())
	require.Equal(t, 12.5, dict.Get("total").AsFloat64())

	require.Equal(t, ValueString, dict.Get("name").Type())
	require.Equal(t, ValueBoolean, dict.Get("done").Type())
	require.True(t, dict.Get("missing").IsNil())
}

func TestMutableDictRemove(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	defer dict.Release()

	dict.SetString("a", "1")
	dict.SetString("b", "2")
	dict.Remove("a")

	require.Equal(t, uint(1), dict.Count())
	require.True(t, dict.Get("a").IsNil())
	require.Equal(t, "2", dict.Get("b").AsString())
}

func TestDictKeys(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	defer dict.Release()
	dict.SetString("x", "1")
	dict.SetString("y", "2")
	dict.SetString("z", "3")

	require.ElementsMatch(t, []string{"x", "y", "z"}, dict.AsDict().Keys())
}

func TestNestedValues(t *testing.T) {
	needsLibrary(t)

	inner := NewMutableDict()
	defer inner.Release()
	inner.SetString("street", "Main St")

	outer := NewMutableDict()
	defer outer.Release()
	outer.SetValue("address", Value{ptr: inner.get()})

	addr := outer.Get("address")
	require.Equal(t, ValueDict, addr.Type())
}

func TestMutableArrayStrings(t *testing.T) {
	needsLibrary(t)

	arr := newMutableArrayFromStrings([]string{"red", "green", "blue"})
	defer arr.Release()

	require.Equal(t, uint(3), arr.Count())
	require.Equal(t, []string{"red", "green", "blue"}, arr.AsArray().Strings())
	require.Equal(t, "green", arr.AsArray().Get(1).AsString())
}

func TestMutableDictFromMap(t *testing.T) {
	needsLibrary(t)

	dict := newMutableDictFromMap(map[string]string{"Cookie": "session=abc", "X-Client": "go"})
	defer dict.Release()

	require.Equal(t, uint(2), dict.Count())
	require.Equal(t, "session=abc", dict.Get("Cookie").AsString())
}

func TestUseAfterDictReleasePanics(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	dict.Release()
	require.Panics(t, func() { dict.SetString("k", "v") })

	// double release stays a no-op
	dict.Release()
}

func TestReleaseInvalidatesDictCopies(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	alias := dict
	dict.Release()
	require.Panics(t, func() { alias.SetString("k", "v") })
	require.Panics(t, func() { _ = alias.Count() })
}

func TestFleeceRefSharedAcrossCopies(t *testing.T) {
	d := MutableDict{ref: &flRef{ptr: 0xbeef, owned: true}}
	alias := d
	d.ref.released = true
	require.Panics(t, func() { _ = alias.get() })
}

func TestUnownedFleeceRefReleaseKeepsPointer(t *testing.T) {
	r := &flRef{ptr: 0xbeef}
	r.release()
	require.Equal(t, uintptr(0xbeef), r.get())
}

func TestValueToJSON(t *testing.T) {
	needsLibrary(t)

	dict := NewMutableDict()
	defer dict.Release()
	dict.SetInt64("n", 7)

	require.JSONEq(t, `{"n":7}`, dict.ToJSON())
}
