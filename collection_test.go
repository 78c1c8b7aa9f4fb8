package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultScopeAndCollection(t *testing.T) {
	db := openTestDatabase(t)

	scope, err := db.DefaultScope()
	require.NoError(t, err)
	defer scope.Release()
	require.Equal(t, DefaultScopeName, scope.Name())

	col, err := db.DefaultCollection()
	require.NoError(t, err)
	defer col.Release()
	require.Equal(t, DefaultCollectionName, col.Name())
	require.Zero(t, col.Count())
}

func TestCreateAndDeleteCollection(t *testing.T) {
	db := openTestDatabase(t)

	col, err := db.CreateCollection("readings", "sensors")
	require.NoError(t, err)
	require.Equal(t, "readings", col.Name())

	colScope := col.Scope()
	require.Equal(t, "sensors", colScope.Name())
	colScope.Release()
	col.Release()

	scopes, err := db.ScopeNames()
	require.NoError(t, err)
	require.Contains(t, scopes, "sensors")

	names, err := db.CollectionNames("sensors")
	require.NoError(t, err)
	require.Equal(t, []string{"readings"}, names)

	require.NoError(t, db.DeleteCollection("readings", "sensors"))

	// the scope disappears with its last collection
	scopes, err = db.ScopeNames()
	require.NoError(t, err)
	require.NotContains(t, scopes, "sensors")
}

func TestCollectionLookup(t *testing.T) {
	db := openTestDatabase(t)

	_, err := db.Collection("nope", DefaultScopeName)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.Scope("nope")
	require.ErrorIs(t, err, ErrNotFound)

	created, err := db.CreateCollection("found", DefaultScopeName)
	require.NoError(t, err)
	defer created.Release()

	viaDB, err := db.Collection("found", DefaultScopeName)
	require.NoError(t, err)
	defer viaDB.Release()
	require.True(t, created.Same(viaDB))

	scope, err := db.DefaultScope()
	require.NoError(t, err)
	defer scope.Release()
	viaScope, err := scope.Collection("found")
	require.NoError(t, err)
	defer viaScope.Release()
	require.True(t, created.Same(viaScope))
}

func TestCollectionDocumentCRUD(t *testing.T) {
	db := openTestDatabase(t)

	col, err := db.CreateCollection("inbox", "mail")
	require.NoError(t, err)
	defer col.Release()

	doc := NewDocumentWithID("msg-1")
	doc.MutableProperties().SetString("subject", "hi")
	require.NoError(t, col.SaveDocument(doc))
	doc.Release()
	require.Equal(t, uint64(1), col.Count())

	read, err := col.GetDocument("msg-1")
	require.NoError(t, err)
	require.Equal(t, "hi", read.Properties().Get("subject").AsString())

	require.NoError(t, col.DeleteDocument(read))
	read.Release()

	_, err = col.GetDocument("msg-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, col.Count())

	// documents in other collections never leak into the default one
	require.Zero(t, db.Count())
}

func TestCollectionFailOnConflict(t *testing.T) {
	db := openTestDatabase(t)

	col, err := db.DefaultCollection()
	require.NoError(t, err)
	defer col.Release()

	doc := NewDocumentWithID("c-conflict")
	require.NoError(t, col.SaveDocument(doc))
	doc.Release()

	first, err := col.GetDocument("c-conflict")
	require.NoError(t, err)
	defer first.Release()
	second, err := col.GetDocument("c-conflict")
	require.NoError(t, err)
	defer second.Release()

	first.MutableProperties().SetString("v", "one")
	require.NoError(t, col.SaveDocument(first))

	second.MutableProperties().SetString("v", "two")
	err = col.SaveDocumentWithConcurrencyControl(second, FailOnConflict)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCollectionPurge(t *testing.T) {
	db := openTestDatabase(t)

	col, err := db.DefaultCollection()
	require.NoError(t, err)
	defer col.Release()

	doc := NewDocumentWithID("c-purge")
	require.NoError(t, col.SaveDocument(doc))
	doc.Release()

	require.NoError(t, col.PurgeDocumentByID("c-purge"))
	require.ErrorIs(t, col.PurgeDocumentByID("c-purge"), ErrNotFound)
}
