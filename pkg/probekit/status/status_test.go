package status

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{Success, "Success"},
		{InvalidArgument, "InvalidArgument"},
		{NullPointer, "NullPointer"},
		{InvalidUTF8, "InvalidUtf8"},
		{PathNotFound, "PathNotFound"},
		{PermissionDenied, "PermissionDenied"},
		{IOError, "IoError"},
		{Cancelled, "Cancelled"},
		{Timeout, "Timeout"},
		{InternalError, "InternalError"},
		{NotImplemented, "NotImplemented"},
		{OutOfMemory, "OutOfMemory"},
		{SerializationError, "SerializationError"},
		{Unknown, "Unknown"},
		{Code(99), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}

func TestCodeValuesAreStable(t *testing.T) {
	// These values are part of the C ABI and must never shift.
	assert.EqualValues(t, 0, Success)
	assert.EqualValues(t, 4, PathNotFound)
	assert.EqualValues(t, 9, InternalError)
	assert.EqualValues(t, 13, Unknown)
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Success},
		{"not exist", fs.ErrNotExist, PathNotFound},
		{"wrapped not exist", fmt.Errorf("stat: %w", os.ErrNotExist), PathNotFound},
		{"permission", fs.ErrPermission, PermissionDenied},
		{"invalid", fs.ErrInvalid, InvalidArgument},
		{"cancelled", context.Canceled, Cancelled},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"path error", &fs.PathError{Op: "read", Path: "/x", Err: errors.New("boom")}, IOError},
		{"unrecognised", errors.New("mystery"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromError(tt.err))
		})
	}
}

func TestFromErrorUnwrapsStatusError(t *testing.T) {
	err := fmt.Errorf("compiling pattern: %w", Errorf(InvalidArgument, "bad glob"))
	assert.Equal(t, InvalidArgument, FromError(err))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "InvalidArgument: bad glob", Errorf(InvalidArgument, "bad glob").Error())
	assert.Equal(t, "Timeout", Errorf(Timeout, "").Error())
}
