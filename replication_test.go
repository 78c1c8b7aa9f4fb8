package cblite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestURLEndpointRejectsBadScheme(t *testing.T) {
	needsLibrary(t)

	_, err := NewURLEndpoint("http://example.com/db")
	require.Error(t, err)
}

func TestEndpointFreeIsIdempotent(t *testing.T) {
	needsLibrary(t)

	ep, err := NewURLEndpoint("ws://localhost:4984/db")
	require.NoError(t, err)
	ep.Free()
	ep.Free()
}

func newTestReplicator(t *testing.T, db *Database, mutate func(*ReplicatorConfiguration)) *Replicator {
	t.Helper()
	ep, err := NewURLEndpoint("ws://localhost:4984/nosuchdb")
	require.NoError(t, err)

	config := ReplicatorConfiguration{
		Database:      db,
		Endpoint:      ep,
		Authenticator: NewPasswordAuthenticator("user", "pass"),
		Headers:       map[string]string{"X-Client": "cblite-go-test"},
	}
	if mutate != nil {
		mutate(&config)
	}
	repl, err := NewReplicator(config)
	require.NoError(t, err)
	t.Cleanup(repl.Release)
	return repl
}

func TestNewReplicatorStartsStopped(t *testing.T) {
	db := openTestDatabase(t)
	repl := newTestReplicator(t, db, nil)

	status := repl.Status()
	require.Equal(t, ActivityStopped, status.Activity)
	require.NoError(t, status.Err)
}

func TestReplicatorOwnershipTransfer(t *testing.T) {
	db := openTestDatabase(t)

	ep, err := NewURLEndpoint("ws://localhost:4984/db")
	require.NoError(t, err)
	auth := NewPasswordAuthenticator("u", "p")

	repl, err := NewReplicator(ReplicatorConfiguration{Database: db, Endpoint: ep, Authenticator: auth})
	require.NoError(t, err)
	defer repl.Release()

	// NewReplicator consumed both; freeing them again must be a no-op,
	// and reusing them must panic
	require.True(t, ep.freed)
	require.True(t, auth.freed)
	ep.Free()
	auth.Free()
	require.Panics(t, func() { ep.take() })
}

func TestNewReplicatorRequiresEndpoint(t *testing.T) {
	_, err := NewReplicator(ReplicatorConfiguration{})
	require.Error(t, err)
	var typed *Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, DomainCouchbaseLite, typed.Domain)
	require.Equal(t, int32(CodeInvalidParam), typed.Code)
}

func TestNewReplicatorRejectsPropertyEncryption(t *testing.T) {
	ep := &Endpoint{ptr: 1}
	_, err := NewReplicator(ReplicatorConfiguration{
		Endpoint: ep,
		PropertyEncryptor: func(string, Dict, string, []byte) ([]byte, string, string, error) {
			return nil, "", "", nil
		},
	})
	require.ErrorIs(t, err, ErrUnsupported)
	// rejected configurations leave the endpoint with the caller
	require.False(t, ep.freed)

	_, err = NewReplicator(ReplicatorConfiguration{
		Endpoint: ep,
		PropertyDecryptor: func(string, Dict, string, []byte, string, string) ([]byte, error) {
			return nil, nil
		},
	})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestFailedReplicatorCreateConsumesOwnedObjects(t *testing.T) {
	needsLibrary(t)

	ep, err := NewURLEndpoint("ws://localhost:4984/db")
	require.NoError(t, err)
	auth := NewPasswordAuthenticator("u", "p")

	// neither a database nor collections: create must fail
	_, err = NewReplicator(ReplicatorConfiguration{Endpoint: ep, Authenticator: auth})
	require.Error(t, err)

	// the native objects were freed on the failure path; the wrappers are
	// spent and freeing again stays a no-op
	require.True(t, ep.freed)
	require.True(t, auth.freed)
	ep.Free()
	auth.Free()
	require.Panics(t, func() { ep.take() })
}

func TestReplicatorPendingDocuments(t *testing.T) {
	db := openTestDatabase(t)
	saveTestDocument(t, db, "pend-1", "k", "v")
	saveTestDocument(t, db, "pend-2", "k", "v")

	repl := newTestReplicator(t, db, func(c *ReplicatorConfiguration) {
		c.ReplicatorType = Push
	})

	ids, err := repl.PendingDocumentIDs()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pend-1", "pend-2"}, ids)

	pending, err := repl.IsDocumentPending("pend-1")
	require.NoError(t, err)
	require.True(t, pending)

	pending, err = repl.IsDocumentPending("never-saved")
	require.NoError(t, err)
	require.False(t, pending)
}

func TestStopAndWaitOnStoppedReplicator(t *testing.T) {
	db := openTestDatabase(t)
	repl := newTestReplicator(t, db, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, repl.StopAndWait(ctx))
}

func TestStopAndWaitAfterStart(t *testing.T) {
	db := openTestDatabase(t)
	repl := newTestReplicator(t, db, func(c *ReplicatorConfiguration) {
		c.Continuous = true
		c.MaxAttempts = 1
	})

	repl.Start(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, repl.StopAndWait(ctx))
	require.Equal(t, ActivityStopped, repl.Status().Activity)
}

func TestReplicatorChangeListenerRemoval(t *testing.T) {
	db := openTestDatabase(t)
	repl := newTestReplicator(t, db, nil)

	token := repl.AddChangeListener(func(*Replicator, ReplicatorStatus) {})
	require.NotNil(t, callbacks.lookup(token.ctxID))
	token.Remove()
	require.Nil(t, callbacks.lookup(token.ctxID))
}

func TestReplicatorReleaseDropsCallbacks(t *testing.T) {
	db := openTestDatabase(t)

	ep, err := NewURLEndpoint("ws://localhost:4984/db")
	require.NoError(t, err)
	repl, err := NewReplicator(ReplicatorConfiguration{
		Database:   db,
		Endpoint:   ep,
		PushFilter: func(*Document, DocumentFlags) bool { return true },
	})
	require.NoError(t, err)

	ctxID := repl.ctxID
	require.NotNil(t, callbacks.lookup(ctxID))
	repl.Release()
	require.Nil(t, callbacks.lookup(ctxID))
}

func TestReplicatorWithCollections(t *testing.T) {
	db := openTestDatabase(t)

	col, err := db.CreateCollection("tasks", "work")
	require.NoError(t, err)
	defer col.Release()

	repl := newTestReplicator(t, nil, func(c *ReplicatorConfiguration) {
		c.Collections = []ReplicationCollection{{
			Collection: col,
			Channels:   []string{"team-a"},
		}}
	})
	require.Equal(t, ActivityStopped, repl.Status().Activity)
}
