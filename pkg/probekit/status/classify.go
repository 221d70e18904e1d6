package status

import (
	"context"
	"errors"
	"io/fs"
	"os"
)

// isCancellation reports whether err stems from a cancelled context.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// isDeadline reports whether err is a timeout, from a context deadline or an
// I/O deadline.
func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded)
}

// isIOError reports whether err is a filesystem-level failure that is not
// one of the more specific categories handled by FromError.
func isIOError(err error) bool {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return true
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return true
	}
	var syscallErr *os.SyscallError
	return errors.As(err, &syscallErr)
}
