// Package status defines the stable result codes shared by every probekit
// operation. The numeric values are part of the C ABI and must never change;
// append new codes at the end only.
package status

import (
	"errors"
	"io/fs"
	"os"
)

// Code is the outcome of a probekit operation. It replaces error values at
// the library boundary: nothing unwinds past an exported call, every failure
// is folded into exactly one Code.
type Code int32

// Stable status codes. The values are wire-visible through the C boundary.
const (
	Success            Code = 0
	InvalidArgument    Code = 1
	NullPointer        Code = 2
	InvalidUTF8        Code = 3
	PathNotFound       Code = 4
	PermissionDenied   Code = 5
	IOError            Code = 6
	Cancelled          Code = 7
	Timeout            Code = 8
	InternalError      Code = 9
	NotImplemented     Code = 10
	OutOfMemory        Code = 11
	SerializationError Code = 12
	Unknown            Code = 13
)

// String returns the canonical name of the code, matching the names used in
// JSON payloads.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidArgument:
		return "InvalidArgument"
	case NullPointer:
		return "NullPointer"
	case InvalidUTF8:
		return "InvalidUtf8"
	case PathNotFound:
		return "PathNotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case IOError:
		return "IoError"
	case Cancelled:
		return "Cancelled"
	case Timeout:
		return "Timeout"
	case InternalError:
		return "InternalError"
	case NotImplemented:
		return "NotImplemented"
	case OutOfMemory:
		return "OutOfMemory"
	case SerializationError:
		return "SerializationError"
	default:
		return "Unknown"
	}
}

// Error pairs a Code with a human-readable message. It satisfies the error
// interface so engine internals can return it like any other error; the
// facade unwraps it back into a bare Code at the boundary.
type Error struct {
	Code    Code
	Message string
}

// Errorf builds an *Error with a plain message.
func Errorf(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Error returns the message prefixed with the code name.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	return e.Code.String() + ": " + e.Message
}

// FromError maps an arbitrary error to the nearest Code.
//
// The mapping is intentionally conservative: anything not recognised becomes
// Unknown rather than InternalError, so InternalError stays reserved for
// recovered panics and genuine library bugs.
func FromError(err error) Code {
	if err == nil {
		return Success
	}

	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, os.ErrNotExist):
		return PathNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, os.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrInvalid):
		return InvalidArgument
	case isDeadline(err):
		return Timeout
	case isCancellation(err):
		return Cancelled
	case isIOError(err):
		return IOError
	}
	return Unknown
}
