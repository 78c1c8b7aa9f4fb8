package cblite

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// needsLibrary skips tests that talk to the native library when it could
// not be loaded, so the pure Go tests still run everywhere.
func needsLibrary(t *testing.T) {
	t.Helper()
	if err := LoadError(); err != nil {
		t.Skipf("libcblite not available: %v", err)
	}
}

// openTestDatabase opens a throwaway database in a temp directory and
// tears it down with the test. With CBLITE_LEAK_CHECKS set it also verifies
// the native instance count returns to its starting value.
func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	needsLibrary(t)

	baseline := InstanceCount()
	db, err := OpenDatabase("testdb", DatabaseConfiguration{Directory: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		if !db.ref.released {
			require.NoError(t, db.Delete())
			db.Release()
		}
		if os.Getenv("CBLITE_LEAK_CHECKS") != "" {
			if count := InstanceCount(); count > baseline {
				DumpInstances()
				t.Errorf("native instances leaked: %d before, %d after", baseline, count)
			}
		}
	})
	return db
}

// saveTestDocument stores a document with one string property and returns
// its id.
func saveTestDocument(t *testing.T, db *Database, id, key, value string) {
	t.Helper()
	doc := NewDocumentWithID(id)
	defer doc.Release()
	props := doc.MutableProperties()
	props.SetString(key, value)
	require.NoError(t, db.SaveDocument(doc))
}
