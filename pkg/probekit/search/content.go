package search

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"regexp"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/sourcegraph/conc/pool"

	"github.com/probekit/probekit/pkg/probekit/internal/pathmatch"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/status"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// ContentOptions configures a regex content search.
type ContentOptions struct {
	// Root is the directory searched recursively.
	Root string

	// Pattern is the regular expression applied to each line.
	Pattern string

	// FileGlob restricts which files are scanned. Empty scans every file.
	FileGlob string

	// MaxResults caps the returned match list. 0 means unlimited. The cap
	// never changes the aggregate counters.
	MaxResults int

	// ContextLines is the number of context lines captured before and
	// after each matching line.
	ContextLines int

	// Workers bounds the scanning pool. Defaults to GOMAXPROCS.
	Workers int
}

// ContentResult holds the outcome of a content search.
type ContentResult struct {
	Matches      []types.ContentMatch
	FilesScanned uint64
	FilesMatched uint64
	TotalMatches uint64
	Truncated    bool
}

// SearchContent scans every text file under opts.Root that passes the file
// glob and returns one entry per matching line. Files are scanned in
// parallel; binary files and unreadable files are skipped without failing
// the search.
func SearchContent(ctx context.Context, opts ContentOptions) (*ContentResult, error) {
	re, err := CompileRegex(opts.Pattern, true)
	if err != nil {
		return nil, err
	}

	var fileGlob []pathmatch.Matcher
	if opts.FileGlob != "" {
		m, err := pathmatch.Compile(opts.FileGlob)
		if err != nil {
			return nil, err
		}
		fileGlob = []pathmatch.Matcher{m}
	}

	root, err := pathmatch.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}

	candidates, err := collectFiles(ctx, root, fileGlob, nil)
	if err != nil {
		return nil, err
	}

	var (
		scanned      atomic.Uint64
		filesMatched atomic.Uint64
		totalMatches atomic.Uint64
		mu           sync.Mutex
		matches      []types.ContentMatch
	)

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for _, path := range candidates {
		p.Go(func(ctx context.Context) error {
			lineMatches, _, err := ScanFile(path, re, opts.ContextLines)
			if err != nil {
				if !errors.Is(err, ErrBinary) {
					logging.Get("search").Debug("skipping unreadable file", "path", path, "err", err)
				}
				return ctx.Err()
			}

			scanned.Add(1)
			if len(lineMatches) == 0 {
				return ctx.Err()
			}

			filesMatched.Add(1)
			var fileTotal uint64
			converted := make([]types.ContentMatch, 0, len(lineMatches))
			for _, lm := range lineMatches {
				fileTotal += uint64(lm.Count)
				converted = append(converted, types.ContentMatch{
					Path:   path,
					Line:   lm.Line,
					Text:   lm.Text,
					Before: lm.Before,
					After:  lm.After,
				})
			}
			totalMatches.Add(fileTotal)

			mu.Lock()
			matches = append(matches, converted...)
			mu.Unlock()
			return ctx.Err()
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b types.ContentMatch) int {
		if c := cmp.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		return cmp.Compare(a.Line, b.Line)
	})

	res := &ContentResult{
		Matches:      matches,
		FilesScanned: scanned.Load(),
		FilesMatched: filesMatched.Load(),
		TotalMatches: totalMatches.Load(),
	}
	if opts.MaxResults > 0 && len(res.Matches) > opts.MaxResults {
		res.Matches = res.Matches[:opts.MaxResults]
		res.Truncated = true
	}
	return res, nil
}

// CompileRegex compiles a search regex, mapping a malformed pattern to
// InvalidArgument so callers can tell user error from a library bug. When
// caseSensitive is false the pattern is wrapped in a (?i) group.
func CompileRegex(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, status.Errorf(status.InvalidArgument, "empty search pattern")
	}
	if !caseSensitive {
		pattern = "(?i:" + pattern + ")"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, status.Errorf(status.InvalidArgument, "invalid regex: "+err.Error())
	}
	return re, nil
}

// collectFiles walks the tree and returns every regular file admitted by the
// include/exclude matcher lists. Unreadable entries are skipped.
func collectFiles(ctx context.Context, root string, include, exclude []pathmatch.Matcher) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !pathmatch.Allowed(root, path, include, exclude) {
			return nil
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
