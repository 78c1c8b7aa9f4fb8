package cblite

import (
	"errors"
	"fmt"
	"unsafe"
)

// define all package level errors here
var (
	ErrNotFound    = errors.New("cblite: not found")
	ErrConflict    = errors.New("cblite: conflicting write detected")
	ErrCrypto      = errors.New("cblite: encryption/decryption failed")
	ErrTransient   = errors.New("cblite: transient network condition")
	ErrUnsupported = errors.New("cblite: operation not supported")
)

// ErrorDomain identifies which native subsystem produced an error code.
type ErrorDomain uint8

const (
	DomainCouchbaseLite ErrorDomain = 1
	DomainPOSIX         ErrorDomain = 2
	DomainSQLite        ErrorDomain = 3
	DomainFleece        ErrorDomain = 4
	DomainNetwork       ErrorDomain = 5
	DomainWebSocket     ErrorDomain = 6
)

// Couchbase Lite domain error codes, from CBLBase.h.
const (
	CodeAssertionFailed = 1
	CodeNotOpen         = 6
	CodeNotFound        = 7
	CodeConflict        = 8
	CodeInvalidParam    = 9
	CodeBusy            = 16
	CodeUnsupported     = 19
	CodeCrypto          = 22
)

// WebSocket domain status used for transient failures the replicator should
// retry, mirroring the native library's own use of HTTP 503.
const statusServiceUnavailable = 503

// Error carries a native error's domain/code pair plus the message the
// native library produced for it, if any.
type Error struct {
	Domain  ErrorDomain
	Code    int32
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cblite: %s (domain %d, code %d)", e.Message, e.Domain, e.Code)
	}
	return fmt.Sprintf("cblite: native error (domain %d, code %d)", e.Domain, e.Code)
}

// Unwrap maps well-known domain/code pairs onto package sentinels so that
// errors.Is works against them.
func (e *Error) Unwrap() error {
	switch e.Domain {
	case DomainCouchbaseLite:
		switch e.Code {
		case CodeNotFound:
			return ErrNotFound
		case CodeConflict:
			return ErrConflict
		case CodeUnsupported:
			return ErrUnsupported
		case CodeCrypto:
			return ErrCrypto
		}
	case DomainWebSocket, DomainNetwork:
		if e.Code == statusServiceUnavailable {
			return ErrTransient
		}
	}
	return nil
}

// errOut exposes a CBLError out-param to a native call.
func errOut(cerr *cbl_error_t) unsafe.Pointer {
	return unsafe.Pointer(cerr)
}

// errorFromC builds a typed error from a populated native CBLError. The
// message is fetched from the native library and the owned result released.
func errorFromC(cerr *cbl_error_t) error {
	msg := ""
	if c_CBLError_Message != nil {
		msg = takeSliceResultString(c_CBLError_Message(unsafe.Pointer(cerr)))
	}
	return &Error{
		Domain:  ErrorDomain(cerr.domain),
		Code:    cerr.code,
		Message: msg,
	}
}

// checkError inspects an error out-param after a native call.
// A zero code means the call succeeded.
func checkError(cerr *cbl_error_t) error {
	if cerr.code == 0 {
		return nil
	}
	return errorFromC(cerr)
}

// checkBool translates the common native convention of a boolean success
// flag plus an error out-param.
func checkBool(ok bool, cerr *cbl_error_t) error {
	if ok {
		return nil
	}
	if cerr.code == 0 {
		return &Error{Domain: DomainCouchbaseLite, Code: CodeAssertionFailed, Message: "native call failed without reporting an error"}
	}
	return errorFromC(cerr)
}
