// Package telemetry provides read-only system resource snapshots: disk
// usage breakdowns, process statistics, and memory counters. Every function
// takes one snapshot and returns; nothing here polls or blocks beyond the
// underlying OS query.
package telemetry

import (
	"cmp"
	"context"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/probekit/probekit/pkg/probekit/internal/pathmatch"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// DefaultTopN is the subdirectory/process breakdown length used when the
// caller passes a non-positive count.
const DefaultTopN = 10

// DiskOptions configures a disk-usage walk.
type DiskOptions struct {
	// Root is the directory to measure.
	Root string

	// TopN is how many of the largest immediate subdirectories to report.
	// Non-positive values fall back to DefaultTopN.
	TopN int
}

// DiskResult holds the outcome of a disk-usage walk.
type DiskResult struct {
	Root       string
	TotalSize  int64
	TotalFiles uint64
	// TotalDirs counts directories beneath the root; the root itself is
	// not included.
	TotalDirs uint64
	// Subdirs lists the TopN largest immediate subdirectories by
	// cumulative size, largest first.
	Subdirs []types.SubdirUsage
	// VolumeTotal and VolumeFree describe the filesystem containing Root;
	// both are zero on platforms without a statfs-style query.
	VolumeTotal uint64
	VolumeFree  uint64
}

// subdirAgg accumulates per-subdirectory counters during the walk.
type subdirAgg struct {
	size  atomic.Int64
	files atomic.Uint64
}

// DiskUsage walks the tree under opts.Root accumulating size and entry
// counts, attributing every file to the immediate subdirectory it lives
// under. Unreadable entries are skipped.
func DiskUsage(ctx context.Context, opts DiskOptions) (*DiskResult, error) {
	root, err := pathmatch.ResolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	var (
		totalSize  atomic.Int64
		totalFiles atomic.Uint64
		totalDirs  atomic.Uint64
		aggMu      sync.Mutex
		subdirs    = make(map[string]*subdirAgg)
	)

	// bucketFor returns the aggregate for the immediate subdirectory a
	// path belongs to, or nil for entries directly under the root.
	bucketFor := func(path string) *subdirAgg {
		rel := pathmatch.RelSlash(root, path)
		top, _, found := strings.Cut(rel, "/")
		if !found {
			// Entry sits directly under the root.
			return nil
		}
		aggMu.Lock()
		defer aggMu.Unlock()
		agg, ok := subdirs[top]
		if !ok {
			agg = &subdirAgg{}
			subdirs[top] = agg
		}
		return agg
	}

	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return nil
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			totalDirs.Add(1)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		size := info.Size()
		totalFiles.Add(1)
		totalSize.Add(size)

		if agg := bucketFor(path); agg != nil {
			agg.size.Add(size)
			agg.files.Add(1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	usage := make([]types.SubdirUsage, 0, len(subdirs))
	for name, agg := range subdirs {
		size := agg.size.Load()
		usage = append(usage, types.SubdirUsage{
			Path:      filepath.Join(root, name),
			SizeBytes: size,
			SizeHuman: types.FormatSize(size),
			Files:     agg.files.Load(),
		})
	}
	slices.SortFunc(usage, func(a, b types.SubdirUsage) int {
		if a.SizeBytes != b.SizeBytes {
			return cmp.Compare(b.SizeBytes, a.SizeBytes)
		}
		return cmp.Compare(a.Path, b.Path)
	})
	if len(usage) > topN {
		usage = usage[:topN]
	}

	res := &DiskResult{
		Root:       root,
		TotalSize:  totalSize.Load(),
		TotalFiles: totalFiles.Load(),
		TotalDirs:  totalDirs.Load(),
		Subdirs:    usage,
	}
	res.VolumeTotal, res.VolumeFree = volumeUsage(root)

	logging.Get("telemetry").Debug("disk usage complete",
		"root", root,
		"files", res.TotalFiles,
		"size", res.TotalSize)
	return res, nil
}
