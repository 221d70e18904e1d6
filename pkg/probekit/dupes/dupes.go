package dupes

import (
	"cmp"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/sourcegraph/conc/pool"

	"github.com/probekit/probekit/pkg/probekit/internal/pathmatch"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// Result holds the outcome of a duplicate scan.
type Result struct {
	// Groups contains every set of two or more identical files, ordered by
	// wasted bytes descending. Within a group, files are ordered by
	// modification time ascending (oldest first).
	Groups []types.DuplicateGroup

	// FilesScanned is the number of files enumerated, including files the
	// size filter or glob filters excluded from hashing.
	FilesScanned uint64

	// SkippedFiles counts per-item failures (unreadable files, races with
	// deletion). They reduce the candidate set but never fail the scan.
	SkippedFiles uint64

	// TotalWastedBytes sums (members-1)*size across all groups.
	TotalWastedBytes int64
}

// candidate is one file awaiting size bucketing or hashing.
type candidate struct {
	path    string
	size    int64
	modTime time.Time
}

// Finder performs duplicate scans. Each Find call owns its own state; a
// Finder is safe to reuse sequentially but not concurrently.
type Finder struct {
	opts    Options
	include []pathmatch.Matcher
	exclude []pathmatch.Matcher
	log     *logging.Logger

	filesScanned atomic.Uint64
	skipped      atomic.Uint64
}

// New creates a Finder with the given options. Glob compilation errors are
// reported here so callers can distinguish user error from scan failures.
func New(opts Options) (*Finder, error) {
	_ = opts.Validate()

	include, err := pathmatch.CompileAll(opts.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := pathmatch.CompileAll(opts.Exclude)
	if err != nil {
		return nil, err
	}

	return &Finder{
		opts:    opts,
		include: include,
		exclude: exclude,
		log:     logging.Get("dupes"),
	}, nil
}

// Find runs the scan. It blocks until complete or the context is cancelled.
func (f *Finder) Find(ctx context.Context) (*Result, error) {
	f.filesScanned.Store(0)
	f.skipped.Store(0)

	root, err := pathmatch.ResolveRoot(f.opts.Root)
	if err != nil {
		return nil, err
	}

	candidates, err := f.enumerate(ctx, root)
	if err != nil {
		return nil, err
	}

	buckets := bucketBySize(candidates)
	groups, err := f.hashBuckets(ctx, buckets)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Groups:       groups,
		FilesScanned: f.filesScanned.Load(),
		SkippedFiles: f.skipped.Load(),
	}
	for i := range groups {
		res.TotalWastedBytes += groups[i].WastedBytes
	}

	f.log.Debug("scan complete",
		"files", res.FilesScanned,
		"groups", len(res.Groups),
		"wasted", res.TotalWastedBytes)
	return res, nil
}

// enumerate walks the tree and collects candidate files that pass the size
// and glob filters. fastwalk invokes the callback from multiple goroutines,
// so shared state is either atomic or mutex-guarded.
func (f *Finder) enumerate(ctx context.Context, root string) ([]candidate, error) {
	var (
		mu         sync.Mutex
		candidates []candidate
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			f.skipped.Add(1)
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		f.filesScanned.Add(1)

		if !pathmatch.Allowed(root, path, f.include, f.exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			f.skipped.Add(1)
			return nil
		}
		if info.Size() < f.opts.MinSize {
			return nil
		}

		mu.Lock()
		candidates = append(candidates, candidate{
			path:    path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// bucketBySize groups candidates by exact byte length and discards buckets
// with a single member: a unique size can contain no duplicates, so those
// files are never hashed.
func bucketBySize(candidates []candidate) map[int64][]candidate {
	buckets := make(map[int64][]candidate)
	for _, c := range candidates {
		buckets[c.size] = append(buckets[c.size], c)
	}
	for size, members := range buckets {
		if len(members) < 2 {
			delete(buckets, size)
		}
	}
	return buckets
}

// hashBuckets content-hashes every member of every bucket across a bounded
// pool, then groups by digest. Unreadable files are counted and dropped.
func (f *Finder) hashBuckets(ctx context.Context, buckets map[int64][]candidate) ([]types.DuplicateGroup, error) {
	type hashed struct {
		candidate
		digest string
	}

	var (
		mu     sync.Mutex
		byHash = make(map[string][]hashed)
	)

	p := pool.New().WithMaxGoroutines(f.opts.Workers).WithContext(ctx)
	for _, members := range buckets {
		for _, c := range members {
			p.Go(func(ctx context.Context) error {
				digest, err := hashFile(c.path)
				if err != nil {
					f.skipped.Add(1)
					return nil
				}
				mu.Lock()
				byHash[digest] = append(byHash[digest], hashed{candidate: c, digest: digest})
				mu.Unlock()
				return ctx.Err()
			})
		}
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var groups []types.DuplicateGroup
	for digest, members := range byHash {
		if len(members) < 2 {
			continue
		}

		// Oldest file first: the presumed original. Path breaks ties so
		// output is reproducible run to run.
		slices.SortFunc(members, func(a, b hashed) int {
			if c := a.modTime.Compare(b.modTime); c != 0 {
				return c
			}
			return cmp.Compare(a.path, b.path)
		})

		size := members[0].size
		wasted := int64(len(members)-1) * size
		group := types.DuplicateGroup{
			Hash:        digest,
			Size:        size,
			WastedBytes: wasted,
			WastedHuman: types.FormatSize(wasted),
			Files:       make([]types.DuplicateFile, 0, len(members)),
		}
		for _, m := range members {
			group.Files = append(group.Files, types.DuplicateFile{
				Path:    m.path,
				Size:    m.size,
				ModTime: m.modTime,
			})
		}
		groups = append(groups, group)
	}

	// Largest win first; hash breaks ties for reproducible ordering.
	slices.SortFunc(groups, func(a, b types.DuplicateGroup) int {
		if a.WastedBytes != b.WastedBytes {
			if a.WastedBytes > b.WastedBytes {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Hash, b.Hash)
	})
	return groups, nil
}

// hashFile computes the SHA-256 digest of a file's full contents.
func hashFile(path string) (string, error) {
	fd, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	h := sha256.New()
	if _, err := io.Copy(h, fd); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
