package cblite

import (
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

type cbl_document_t struct{}

type cblDocument *cbl_document_t

var (
	c_CBLDocument_Create func() uintptr // CBLDocument*

	c_CBLDocument_CreateWithID func(
		docID fl_slice_t,
	) uintptr // CBLDocument*

	c_CBLDocument_ID func(
		doc uintptr, // const CBLDocument*
	) fl_slice_t

	c_CBLDocument_RevisionID func(
		doc uintptr, // const CBLDocument*
	) fl_slice_t

	c_CBLDocument_Sequence func(
		doc uintptr, // const CBLDocument*
	) uint64

	c_CBLDocument_Properties func(
		doc uintptr, // const CBLDocument*
	) uintptr // FLDict

	c_CBLDocument_MutableProperties func(
		doc uintptr, // CBLDocument*
	) uintptr // FLMutableDict

	c_CBLDocument_SetProperties func(
		doc uintptr, // CBLDocument*
		properties uintptr, // FLMutableDict
	)

	c_CBLDocument_CreateJSON func(
		doc uintptr, // const CBLDocument*
	) fl_slice_result_t

	c_CBLDocument_SetJSON func(
		doc uintptr, // CBLDocument*
		json fl_slice_t,
		errorOut unsafe.Pointer, // CBLError*
	) bool
)

func register_cbl_document(handle uintptr) {
	purego.RegisterLibFunc(&c_CBLDocument_Create, handle, "CBLDocument_Create")
	purego.RegisterLibFunc(&c_CBLDocument_Sequence, handle, "CBLDocument_Sequence")
	purego.RegisterLibFunc(&c_CBLDocument_Properties, handle, "CBLDocument_Properties")
	purego.RegisterLibFunc(&c_CBLDocument_MutableProperties, handle, "CBLDocument_MutableProperties")
	purego.RegisterLibFunc(&c_CBLDocument_SetProperties, handle, "CBLDocument_SetProperties")

	createWithID := mustSymbol(handle, "CBLDocument_CreateWithID")
	c_CBLDocument_CreateWithID = func(docID fl_slice_t) uintptr {
		r1, _, _ := purego.SyscallN(createWithID, appendSliceArg(nil, &docID)...)
		runtime.KeepAlive(&docID)
		return r1
	}
	id := mustSymbol(handle, "CBLDocument_ID")
	c_CBLDocument_ID = func(doc uintptr) fl_slice_t {
		return callSliceReturn(id, doc)
	}
	revisionID := mustSymbol(handle, "CBLDocument_RevisionID")
	c_CBLDocument_RevisionID = func(doc uintptr) fl_slice_t {
		return callSliceReturn(revisionID, doc)
	}
	createJSON := mustSymbol(handle, "CBLDocument_CreateJSON")
	c_CBLDocument_CreateJSON = func(doc uintptr) fl_slice_result_t {
		return callSliceResultReturn(createJSON, doc)
	}
	setJSON := mustSymbol(handle, "CBLDocument_SetJSON")
	c_CBLDocument_SetJSON = func(doc uintptr, json fl_slice_t, errorOut unsafe.Pointer) bool {
		args := appendSliceArg([]uintptr{doc}, &json)
		args = append(args, uintptr(errorOut))
		r1, _, _ := purego.SyscallN(setJSON, args...)
		runtime.KeepAlive(&json)
		return goBool(r1)
	}
}
