package cblite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorUnwrapsToSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      *Error
		sentinel error
	}{
		{"not found", &Error{Domain: DomainCouchbaseLite, Code: CodeNotFound}, ErrNotFound},
		{"conflict", &Error{Domain: DomainCouchbaseLite, Code: CodeConflict}, ErrConflict},
		{"crypto", &Error{Domain: DomainCouchbaseLite, Code: CodeCrypto}, ErrCrypto},
		{"unsupported", &Error{Domain: DomainCouchbaseLite, Code: CodeUnsupported}, ErrUnsupported},
		{"websocket 503", &Error{Domain: DomainWebSocket, Code: statusServiceUnavailable}, ErrTransient},
		{"network 503", &Error{Domain: DomainNetwork, Code: statusServiceUnavailable}, ErrTransient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}

func TestErrorDoesNotUnwrapUnrelatedCodes(t *testing.T) {
	err := &Error{Domain: DomainCouchbaseLite, Code: CodeBusy}
	require.NotErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrConflict)
	require.NotErrorIs(t, err, ErrTransient)

	// 503 only signals transience in the network domains
	err = &Error{Domain: DomainCouchbaseLite, Code: statusServiceUnavailable}
	require.NotErrorIs(t, err, ErrTransient)
}

func TestErrorMessageFormatting(t *testing.T) {
	withMessage := &Error{Domain: DomainSQLite, Code: 14, Message: "unable to open database file"}
	require.Contains(t, withMessage.Error(), "unable to open database file")
	require.Contains(t, withMessage.Error(), "domain 3")

	bare := &Error{Domain: DomainPOSIX, Code: 2}
	require.Contains(t, bare.Error(), "code 2")
}

func TestCheckBoolSynthesizesErrorWhenNativeReportsNothing(t *testing.T) {
	var cerr cbl_error_t
	require.NoError(t, checkBool(true, &cerr))

	err := checkBool(false, &cerr)
	require.Error(t, err)
	var typed *Error
	require.ErrorAs(t, err, &typed)
	require.Equal(t, DomainCouchbaseLite, typed.Domain)
}

func TestCheckErrorCleanOnZeroCode(t *testing.T) {
	var cerr cbl_error_t
	require.NoError(t, checkError(&cerr))
}

