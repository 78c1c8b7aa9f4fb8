package cblite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenDatabase(t *testing.T) {
	db := openTestDatabase(t)

	require.Equal(t, "testdb", db.Name())
	require.NotEmpty(t, db.Path())
	require.Zero(t, db.Count())
}

func TestDatabaseExists(t *testing.T) {
	needsLibrary(t)

	dir := t.TempDir()
	require.False(t, DatabaseExists("exists-db", dir))

	db, err := OpenDatabase("exists-db", DatabaseConfiguration{Directory: dir})
	require.NoError(t, err)
	require.True(t, DatabaseExists("exists-db", dir))

	require.NoError(t, db.Delete())
	db.Release()
	require.False(t, DatabaseExists("exists-db", dir))
}

func TestSaveAndGetDocument(t *testing.T) {
	db := openTestDatabase(t)

	saveTestDocument(t, db, "doc-1", "title", "first")
	require.Equal(t, uint64(1), db.Count())

	doc, err := db.GetDocument("doc-1")
	require.NoError(t, err)
	defer doc.Release()

	require.Equal(t, "doc-1", doc.ID())
	require.Equal(t, "first", doc.Properties().Get("title").AsString())
	require.NotEmpty(t, doc.RevisionID())
	require.NotZero(t, doc.Sequence())
}

func TestResaveAdvancesSequenceAndRevision(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-reseq", "n", "1")

	doc, err := db.GetDocument("doc-reseq")
	require.NoError(t, err)
	defer doc.Release()

	firstSeq := doc.Sequence()
	firstRev := doc.RevisionID()

	doc.MutableProperties().SetString("n", "2")
	require.NoError(t, db.SaveDocument(doc))

	require.Greater(t, doc.Sequence(), firstSeq)
	require.NotEqual(t, firstRev, doc.RevisionID())
}

func TestGetMissingDocument(t *testing.T) {
	db := openTestDatabase(t)

	doc, err := db.GetDocument("never-saved")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, doc)
}

func TestDeleteDocument(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-del", "k", "v")

	doc, err := db.GetDocument("doc-del")
	require.NoError(t, err)
	require.NoError(t, db.DeleteDocument(doc))
	doc.Release()

	_, err = db.GetDocument("doc-del")
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, db.Count())
}

func TestPurgeDocumentByID(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-purge", "k", "v")

	require.NoError(t, db.PurgeDocumentByID("doc-purge"))
	_, err := db.GetDocument("doc-purge")
	require.ErrorIs(t, err, ErrNotFound)

	// purging a nonexistent document reports not found
	err = db.PurgeDocumentByID("doc-purge")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveFailOnConflict(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-conflict", "v", "base")

	first, err := db.GetDocument("doc-conflict")
	require.NoError(t, err)
	defer first.Release()
	second, err := db.GetDocument("doc-conflict")
	require.NoError(t, err)
	defer second.Release()

	first.MutableProperties().SetString("v", "one")
	require.NoError(t, db.SaveDocument(first))

	second.MutableProperties().SetString("v", "two")
	err = db.SaveDocumentWithConcurrencyControl(second, FailOnConflict)
	require.ErrorIs(t, err, ErrConflict)

	// last write wins overwrites silently
	require.NoError(t, db.SaveDocumentWithConcurrencyControl(second, LastWriteWins))
}

func TestSaveDocumentResolving(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-resolve", "v", "base")

	first, err := db.GetDocument("doc-resolve")
	require.NoError(t, err)
	defer first.Release()
	second, err := db.GetDocument("doc-resolve")
	require.NoError(t, err)
	defer second.Release()

	first.MutableProperties().SetString("v", "theirs")
	require.NoError(t, db.SaveDocument(first))

	second.MutableProperties().SetString("v", "mine")
	called := false
	err = db.SaveDocumentResolving(second, func(saving, existing *Document) bool {
		called = true
		require.Equal(t, "mine", saving.Properties().Get("v").AsString())
		require.Equal(t, "theirs", existing.Properties().Get("v").AsString())
		return true
	})
	require.NoError(t, err)
	require.True(t, called)

	final, err := db.GetDocument("doc-resolve")
	require.NoError(t, err)
	defer final.Release()
	require.Equal(t, "mine", final.Properties().Get("v").AsString())
}

func TestSaveDocumentResolvingAbort(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-abort", "v", "base")

	first, err := db.GetDocument("doc-abort")
	require.NoError(t, err)
	defer first.Release()
	second, err := db.GetDocument("doc-abort")
	require.NoError(t, err)
	defer second.Release()

	first.MutableProperties().SetString("v", "theirs")
	require.NoError(t, db.SaveDocument(first))

	second.MutableProperties().SetString("v", "mine")
	err = db.SaveDocumentResolving(second, func(_, _ *Document) bool { return false })
	require.ErrorIs(t, err, ErrConflict)
}

func TestInTransactionCommit(t *testing.T) {
	db := openTestDatabase(t)

	err := db.InTransaction(func() error {
		for _, id := range []string{"t1", "t2", "t3"} {
			doc := NewDocumentWithID(id)
			doc.MutableProperties().SetString("batch", "yes")
			if err := db.SaveDocument(doc); err != nil {
				doc.Release()
				return err
			}
			doc.Release()
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, uint64(3), db.Count())
}

func TestInTransactionAbortOnError(t *testing.T) {
	db := openTestDatabase(t)

	boom := errors.New("boom")
	err := db.InTransaction(func() error {
		doc := NewDocumentWithID("rollback-me")
		defer doc.Release()
		if err := db.SaveDocument(doc); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, db.Count())
}

func TestInTransactionAbortOnPanic(t *testing.T) {
	db := openTestDatabase(t)

	require.Panics(t, func() {
		_ = db.InTransaction(func() error {
			doc := NewDocumentWithID("panic-me")
			defer doc.Release()
			if err := db.SaveDocument(doc); err != nil {
				return err
			}
			panic("mid-transaction")
		})
	})
	require.Zero(t, db.Count())
}

func TestDocumentExpiration(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-exp", "k", "v")

	none, err := db.DocumentExpiration("doc-exp")
	require.NoError(t, err)
	require.True(t, none.IsZero())

	when := time.Now().Add(time.Hour).Truncate(time.Millisecond)
	require.NoError(t, db.SetDocumentExpiration("doc-exp", when))

	got, err := db.DocumentExpiration("doc-exp")
	require.NoError(t, err)
	require.Equal(t, when.UnixMilli(), got.UnixMilli())

	// the zero time clears the expiration again
	require.NoError(t, db.SetDocumentExpiration("doc-exp", time.Time{}))
	cleared, err := db.DocumentExpiration("doc-exp")
	require.NoError(t, err)
	require.True(t, cleared.IsZero())
}

func TestPerformMaintenance(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "doc-m", "k", "v")

	require.NoError(t, db.PerformMaintenance(MaintenanceCompact))
	require.NoError(t, db.PerformMaintenance(MaintenanceIntegrityCheck))
}

func TestDatabaseCloneSharesNativeObject(t *testing.T) {
	db := openTestDatabase(t)

	clone := db.Clone()
	require.True(t, db.Same(clone))
	require.Equal(t, db.Name(), clone.Name())
	clone.Release()
}

func TestOperationsAfterCloseFail(t *testing.T) {
	needsLibrary(t)

	db, err := OpenDatabase("closed-db", DatabaseConfiguration{Directory: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	doc := NewDocumentWithID("late")
	defer doc.Release()
	require.Error(t, db.SaveDocument(doc))
	db.Release()
}
