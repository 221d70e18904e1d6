// Package search implements the glob file finder and the regex content
// searcher. Both walk the tree with fastwalk and keep their aggregate
// counters order-independent; only list ordering is subject to a final sort.
package search

import (
	"cmp"
	"context"
	"io/fs"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/probekit/probekit/pkg/probekit/internal/pathmatch"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// FileOptions configures a glob file search.
type FileOptions struct {
	// Root is the directory searched recursively.
	Root string

	// Pattern is a glob matched against each file's base name or
	// root-relative slash path.
	Pattern string

	// MaxResults caps the returned hit list. 0 means unlimited. The cap
	// never changes the scanned or matched counters, only the list.
	MaxResults int
}

// FileResult holds the outcome of a file search.
type FileResult struct {
	Hits         []types.FileHit
	FilesScanned uint64
	FilesMatched uint64
	TotalSize    uint64
	Truncated    bool
}

// FindFiles enumerates the tree under opts.Root and returns files matching
// the glob pattern. Hits are sorted by path so truncation under MaxResults
// is reproducible for identical filesystem state.
func FindFiles(ctx context.Context, opts FileOptions) (*FileResult, error) {
	matcher, err := pathmatch.Compile(opts.Pattern)
	if err != nil {
		return nil, err
	}
	root, err := pathmatch.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	log := logging.Get("search")

	var (
		scanned   atomic.Uint64
		matched   atomic.Uint64
		totalSize atomic.Uint64
		mu        sync.Mutex
		hits      []types.FileHit
	)

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		scanned.Add(1)
		if !matcher.Match(root, path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		matched.Add(1)
		totalSize.Add(uint64(info.Size()))

		mu.Lock()
		hits = append(hits, types.FileHit{Path: path, Size: info.Size()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(hits, func(a, b types.FileHit) int {
		return cmp.Compare(a.Path, b.Path)
	})

	res := &FileResult{
		Hits:         hits,
		FilesScanned: scanned.Load(),
		FilesMatched: matched.Load(),
		TotalSize:    totalSize.Load(),
	}
	if opts.MaxResults > 0 && len(res.Hits) > opts.MaxResults {
		res.Hits = res.Hits[:opts.MaxResults]
		res.Truncated = true
	}

	log.Debug("file search complete",
		"pattern", opts.Pattern,
		"scanned", res.FilesScanned,
		"matched", res.FilesMatched)
	return res, nil
}
