package analyzer

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/sourcegraph/conc/pool"

	"github.com/probekit/probekit/pkg/probekit/internal/pathmatch"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/search"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// DefaultLogGlob is the file filter applied when the caller does not
// provide one.
const DefaultLogGlob = "*.log"

// LogOptions configures a log search.
type LogOptions struct {
	// Root is the directory searched recursively.
	Root string

	// Pattern is the regular expression applied to each line.
	Pattern string

	// FileGlob restricts which files are searched. Empty means
	// DefaultLogGlob.
	FileGlob string

	// CaseSensitive selects exact-case matching. When false the pattern
	// is matched case-insensitively.
	CaseSensitive bool

	// ContextLines is the number of context lines captured around each
	// matching line.
	ContextLines int

	// MaxMatches caps the total number of returned matching lines across
	// all files. 0 means unlimited. The aggregate counters are unaffected.
	MaxMatches int

	// Workers bounds the scanning pool. Defaults to GOMAXPROCS.
	Workers int
}

// LogResult holds the outcome of a log search, grouped per file.
type LogResult struct {
	Files            []types.LogFileMatches
	FilesSearched    uint64
	FilesWithMatches uint64
	TotalMatches     uint64
	BytesSearched    uint64
	Truncated        bool
}

// SearchLogs scans log files under opts.Root for the pattern and returns
// matches grouped per file, each line carrying its own context window.
func SearchLogs(ctx context.Context, opts LogOptions) (*LogResult, error) {
	re, err := search.CompileRegex(opts.Pattern, opts.CaseSensitive)
	if err != nil {
		return nil, err
	}

	fileGlob := opts.FileGlob
	if fileGlob == "" {
		fileGlob = DefaultLogGlob
	}
	matcher, err := pathmatch.Compile(fileGlob)
	if err != nil {
		return nil, err
	}

	root, err := pathmatch.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	contextLines := opts.ContextLines
	if contextLines < 0 {
		contextLines = 0
	}

	var (
		candidatesMu sync.Mutex
		candidates   []string
	)
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matcher.Match(root, path) {
			return nil
		}
		candidatesMu.Lock()
		candidates = append(candidates, path)
		candidatesMu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		searched     atomic.Uint64
		withMatches  atomic.Uint64
		totalMatches atomic.Uint64
		bytesRead    atomic.Uint64
		resultsMu    sync.Mutex
		files        []types.LogFileMatches
	)

	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx)
	for _, path := range candidates {
		p.Go(func(ctx context.Context) error {
			lineMatches, n, scanErr := search.ScanFile(path, re, contextLines)
			if scanErr != nil {
				if !errors.Is(scanErr, search.ErrBinary) {
					logging.Get("analyzer").Debug("skipping unreadable log", "path", path, "err", scanErr)
				}
				return ctx.Err()
			}

			searched.Add(1)
			bytesRead.Add(uint64(n))
			if len(lineMatches) == 0 {
				return ctx.Err()
			}

			withMatches.Add(1)
			entry := types.LogFileMatches{Path: path, Matches: make([]types.LogMatch, 0, len(lineMatches))}
			for _, lm := range lineMatches {
				totalMatches.Add(uint64(lm.Count))
				entry.Matches = append(entry.Matches, types.LogMatch{
					Line:   lm.Line,
					Text:   lm.Text,
					Before: lm.Before,
					After:  lm.After,
				})
			}

			resultsMu.Lock()
			files = append(files, entry)
			resultsMu.Unlock()
			return ctx.Err()
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b types.LogFileMatches) int {
		return cmp.Compare(a.Path, b.Path)
	})

	res := &LogResult{
		FilesSearched:    searched.Load(),
		FilesWithMatches: withMatches.Load(),
		TotalMatches:     totalMatches.Load(),
		BytesSearched:    bytesRead.Load(),
	}
	res.Files, res.Truncated = capMatches(files, opts.MaxMatches)
	return res, nil
}

// capMatches bounds the total returned matching lines across files,
// truncating inside a file when the budget runs out mid-file.
func capMatches(files []types.LogFileMatches, maxMatches int) ([]types.LogFileMatches, bool) {
	if maxMatches <= 0 {
		return files, false
	}

	budget := maxMatches
	out := make([]types.LogFileMatches, 0, len(files))
	truncated := false
	for _, f := range files {
		if budget == 0 {
			truncated = true
			break
		}
		if len(f.Matches) > budget {
			f.Matches = f.Matches[:budget]
			truncated = true
		}
		budget -= len(f.Matches)
		out = append(out, f)
	}
	return out, truncated
}
