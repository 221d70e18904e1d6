package main

/*
#include <stdlib.h>
#include "probekit.h"
*/
import "C"

import (
	"unicode/utf8"
	"unsafe"

	"github.com/probekit/probekit/pkg/probekit/status"
)

// newBuffer transfers a payload to the caller through the C allocator.
// C.CString mallocs, so the matching release side is plain free(): the
// allocator is symmetric by construction and no Go memory escapes.
func newBuffer(payload []byte, code status.Code) C.probekit_buffer_t {
	var buf C.probekit_buffer_t
	buf.status = C.int32_t(code)
	if code != status.Success || payload == nil {
		// Invariant: non-success means data is NULL.
		buf.data = nil
		buf.len = 0
		return buf
	}
	buf.data = C.CString(string(payload))
	buf.len = C.size_t(len(payload))
	return buf
}

// errorBuffer is shorthand for a payload-less failure result.
func errorBuffer(code status.Code) C.probekit_buffer_t {
	return newBuffer(nil, code)
}

// goString decodes a required C string argument. A nil pointer and invalid
// UTF-8 are caller errors with their own codes.
func goString(s *C.char) (string, status.Code) {
	if s == nil {
		return "", status.NullPointer
	}
	v := C.GoString(s)
	if !utf8.ValidString(v) {
		return "", status.InvalidUTF8
	}
	return v, status.Success
}

// goStringOpt decodes an optional C string argument; nil means "absent".
func goStringOpt(s *C.char) (string, status.Code) {
	if s == nil {
		return "", status.Success
	}
	return goString(s)
}

//export probekit_free_buffer
//
// probekit_free_buffer releases a buffer returned by any probekit call and
// zeroes the struct. Calling it on a NULL pointer or on an already-zeroed
// struct is a no-op; calling it twice on the same live pointer is undefined,
// so callers must rely on the zeroing this function performs.
func probekit_free_buffer(buf *C.probekit_buffer_t) {
	if buf == nil {
		return
	}
	if buf.data != nil {
		C.free(unsafe.Pointer(buf.data))
	}
	buf.status = 0
	buf.data = nil
	buf.len = 0
}

//export probekit_free_string
//
// probekit_free_string releases a legacy raw char* result. It must never be
// used on probekit_buffer_t contents; the two free functions pair with the
// call that produced the pointer.
func probekit_free_string(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}
