package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptableWrapsScalarValues(t *testing.T) {
	needsLibrary(t)

	enc := NewEncryptableWithString("secret-token")
	defer enc.Release()

	require.Equal(t, "secret-token", enc.Value().AsString())
	require.False(t, enc.Properties().IsNil())
}

func TestEncryptableInt(t *testing.T) {
	needsLibrary(t)

	enc := NewEncryptableWithInt64(12345)
	defer enc.Release()

	require.Equal(t, int64(12345), enc.Value().AsInt64())
}

func TestEncryptableInDocument(t *testing.T) {
	db := openTestDatabase(t)

	enc := NewEncryptableWithString("ssn-000-00-0000")
	defer enc.Release()

	doc := NewDocumentWithID("person-1")
	defer doc.Release()
	props := doc.MutableProperties()
	props.SetString("name", "alice")
	props.SetEncryptable("ssn", enc)

	require.NoError(t, db.SaveDocument(doc))

	read, err := db.GetDocument("person-1")
	require.NoError(t, err)
	defer read.Release()

	// unreplicated encryptables stay readable locally as their dict form
	require.Equal(t, ValueDict, read.Properties().Get("ssn").Type())
}
