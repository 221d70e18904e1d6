// Package dupes implements the two-phase duplicate file detector: files are
// bucketed by exact byte length first, then every member of a multi-file
// bucket is content-hashed in parallel. Unique sizes are never hashed, which
// is what makes large scans cheap.
package dupes

import (
	"runtime"
)

// DefaultMinSize is the minimum file size considered when the caller does
// not override it. One byte excludes empty files, which are all trivially
// identical; pass MinSize 0 explicitly to include them.
const DefaultMinSize int64 = 1

// Options configures a duplicate scan.
type Options struct {
	// Root is the directory to scan recursively.
	Root string

	// MinSize is the minimum file size in bytes to consider.
	// Negative values fall back to DefaultMinSize. Zero is honored and
	// includes empty files.
	MinSize int64

	// Include contains glob patterns. If non-empty, files must match at
	// least one pattern (against the base name or root-relative path).
	Include []string

	// Exclude contains glob patterns. Matching files are skipped.
	Exclude []string

	// Workers bounds the hashing pool. Defaults to GOMAXPROCS.
	Workers int
}

// Validate applies defaults for unset or invalid values.
func (o *Options) Validate() error {
	if o.MinSize < 0 {
		o.MinSize = DefaultMinSize
	}
	if o.Workers < 1 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}
