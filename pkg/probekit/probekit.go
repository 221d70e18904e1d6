// Package probekit is the boundary layer of the native diagnostics core.
// Each exported function wraps one engine operation behind a failure
// boundary: nothing panics past this package, every outcome is a status
// code, and a non-Success status guarantees a nil payload.
//
// Payloads are JSON documents whose top-level object always carries
// "status": "Success"; consumers must tolerate additive fields. The stat
// struct returned alongside is fixed-layout and needs no cleanup.
package probekit

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/probekit/probekit/pkg/probekit/analyzer"
	"github.com/probekit/probekit/pkg/probekit/dupes"
	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/search"
	"github.com/probekit/probekit/pkg/probekit/status"
	"github.com/probekit/probekit/pkg/probekit/telemetry"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// Build-time variables set by go build -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// successEnvelope is embedded in every payload body.
var successEnvelope = types.Envelope{Status: status.Success.String()}

// marshal encodes a payload body, folding encoder failures into
// SerializationError.
func marshal(body any) ([]byte, status.Code) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, status.SerializationError
	}
	return data, status.Success
}

// VersionString returns the library version payload.
func VersionString() (payload []byte, code status.Code) {
	defer recoverInto(&payload, &code)

	return marshal(types.VersionReport{
		Envelope: successEnvelope,
		Version:  version,
		Commit:   commit,
		Built:    date,
	})
}

// FindDuplicates scans root for files with identical content. A negative
// minSize selects the engine default; zero includes empty files. The glob
// filters are optional and may be empty.
func FindDuplicates(ctx context.Context, root string, minSize int64, includeGlob, excludeGlob string) (payload []byte, stats types.DuplicateStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	opts := dupes.Options{Root: root, MinSize: minSize}
	if includeGlob != "" {
		opts.Include = []string{includeGlob}
	}
	if excludeGlob != "" {
		opts.Exclude = []string{excludeGlob}
	}

	finder, err := dupes.New(opts)
	if err != nil {
		return nil, types.DuplicateStats{Status: status.FromError(err)}
	}
	res, err := finder.Find(ctx)
	if err != nil {
		return nil, types.DuplicateStats{Status: status.FromError(err)}
	}

	var dupFiles uint64
	for i := range res.Groups {
		dupFiles += uint64(len(res.Groups[i].Files))
	}

	body := types.DuplicateReport{
		Envelope:         successEnvelope,
		Groups:           res.Groups,
		TotalWastedBytes: res.TotalWastedBytes,
		TotalWastedHuman: types.FormatSize(res.TotalWastedBytes),
		SkippedFiles:     res.SkippedFiles,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.DuplicateStats{Status: code}
	}

	return data, types.DuplicateStats{
		Status:          status.Success,
		FilesScanned:    res.FilesScanned,
		DuplicateGroups: uint64(len(res.Groups)),
		DuplicateFiles:  dupFiles,
		WastedBytes:     uint64(res.TotalWastedBytes),
		ElapsedMs:       types.ElapsedMs(time.Since(start)),
	}
}

// FindFiles searches root for files whose name or relative path matches the
// glob pattern. maxResults caps the returned list only; 0 means unlimited.
func FindFiles(ctx context.Context, root, pattern string, maxResults int) (payload []byte, stats types.FileSearchStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	res, err := search.FindFiles(ctx, search.FileOptions{
		Root:       root,
		Pattern:    pattern,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, types.FileSearchStats{Status: status.FromError(err)}
	}

	body := types.FileSearchReport{
		Envelope:  successEnvelope,
		Files:     res.Hits,
		Truncated: res.Truncated,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.FileSearchStats{Status: code}
	}

	return data, types.FileSearchStats{
		Status:       status.Success,
		FilesScanned: res.FilesScanned,
		FilesMatched: res.FilesMatched,
		TotalSize:    res.TotalSize,
		ElapsedMs:    types.ElapsedMs(time.Since(start)),
	}
}

// SearchContent scans text files under root for a regex pattern, capturing
// contextLines lines of context around each matching line.
func SearchContent(ctx context.Context, root, pattern, fileGlob string, maxResults, contextLines int) (payload []byte, stats types.ContentSearchStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	res, err := search.SearchContent(ctx, search.ContentOptions{
		Root:         root,
		Pattern:      pattern,
		FileGlob:     fileGlob,
		MaxResults:   maxResults,
		ContextLines: contextLines,
	})
	if err != nil {
		return nil, types.ContentSearchStats{Status: status.FromError(err)}
	}

	body := types.ContentSearchReport{
		Envelope:  successEnvelope,
		Matches:   res.Matches,
		Truncated: res.Truncated,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.ContentSearchStats{Status: code}
	}

	return data, types.ContentSearchStats{
		Status:       status.Success,
		FilesScanned: res.FilesScanned,
		FilesMatched: res.FilesMatched,
		TotalMatches: res.TotalMatches,
		ElapsedMs:    types.ElapsedMs(time.Since(start)),
	}
}

// GetDiskUsage walks root and reports cumulative size plus the topN largest
// immediate subdirectories.
func GetDiskUsage(ctx context.Context, root string, topN int) (payload []byte, stats types.DiskUsageStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	res, err := telemetry.DiskUsage(ctx, telemetry.DiskOptions{Root: root, TopN: topN})
	if err != nil {
		return nil, types.DiskUsageStats{Status: status.FromError(err)}
	}

	body := types.DiskUsageReport{
		Envelope:         successEnvelope,
		Root:             res.Root,
		TotalSizeBytes:   res.TotalSize,
		TotalSizeHuman:   types.FormatSize(res.TotalSize),
		TotalFiles:       res.TotalFiles,
		TotalDirs:        res.TotalDirs,
		Subdirs:          res.Subdirs,
		VolumeTotalBytes: res.VolumeTotal,
		VolumeFreeBytes:  res.VolumeFree,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.DiskUsageStats{Status: code}
	}

	return data, types.DiskUsageStats{
		Status:         status.Success,
		TotalSizeBytes: uint64(res.TotalSize),
		TotalFiles:     res.TotalFiles,
		TotalDirs:      res.TotalDirs,
		ElapsedMs:      types.ElapsedMs(time.Since(start)),
	}
}

// GetProcessStats snapshots the process table once and reports aggregates.
func GetProcessStats(ctx context.Context) (stats types.ProcessStats) {
	start := time.Now()
	defer recoverCode(&stats.Status)

	snap, err := telemetry.SnapshotProcesses(ctx)
	if err != nil {
		return types.ProcessStats{Status: status.FromError(err)}
	}

	return types.ProcessStats{
		Status:                 status.Success,
		TotalProcesses:         snap.TotalProcesses,
		TotalThreads:           snap.TotalThreads,
		SystemCPUUsage:         snap.SystemCPUUsage,
		SystemMemoryUsedBytes:  snap.SystemMemoryUsed,
		SystemMemoryTotalBytes: snap.SystemMemoryTotal,
		ElapsedMs:              types.ElapsedMs(time.Since(start)),
	}
}

// GetTopProcesses returns the topN processes sorted by "memory" or "cpu".
func GetTopProcesses(ctx context.Context, topN int, sortBy string) (payload []byte, code status.Code) {
	defer recoverInto(&payload, &code)

	infos, err := telemetry.TopProcesses(ctx, topN, sortBy)
	if err != nil {
		return nil, status.FromError(err)
	}

	return marshal(types.TopProcessesReport{
		Envelope:  successEnvelope,
		SortBy:    sortBy,
		Processes: infos,
	})
}

// GetMemoryStats reads system RAM and swap counters in one snapshot.
func GetMemoryStats(ctx context.Context) (payload []byte, stats types.MemoryStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	snap, err := telemetry.SnapshotMemory(ctx)
	if err != nil {
		return nil, types.MemoryStats{Status: status.FromError(err)}
	}

	body := types.MemoryReport{
		Envelope:       successEnvelope,
		TotalBytes:     snap.Total,
		UsedBytes:      snap.Used,
		AvailableBytes: snap.Available,
		TotalHuman:     types.FormatSize(int64(snap.Total)),
		UsedHuman:      types.FormatSize(int64(snap.Used)),
		AvailableHuman: types.FormatSize(int64(snap.Available)),
		SwapTotalBytes: snap.SwapTotal,
		SwapUsedBytes:  snap.SwapUsed,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.MemoryStats{Status: code}
	}

	return data, types.MemoryStats{
		Status:               status.Success,
		TotalMemoryBytes:     snap.Total,
		UsedMemoryBytes:      snap.Used,
		AvailableMemoryBytes: snap.Available,
		TotalSwapBytes:       snap.SwapTotal,
		UsedSwapBytes:        snap.SwapUsed,
		ElapsedMs:            types.ElapsedMs(time.Since(start)),
	}
}

// AnalyzePath audits the current process PATH variable as a single scope.
func AnalyzePath() (payload []byte, stats types.PathAnalysisStats) {
	return AnalyzePathValue(os.Getenv("PATH"), analyzer.PathOptions{})
}

// AnalyzePathValue audits an explicit PATH value with the given options.
func AnalyzePathValue(value string, opts analyzer.PathOptions) (payload []byte, stats types.PathAnalysisStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	return pathPayload(analyzer.AnalyzeValue(value, opts), start)
}

// AnalyzePathScopes audits the user- and machine-scope PATH values
// together, including cross-duplicate detection.
func AnalyzePathScopes(userValue, machineValue string, opts analyzer.PathOptions) (payload []byte, stats types.PathAnalysisStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	return pathPayload(analyzer.AnalyzeScopes(userValue, machineValue, opts), start)
}

// pathPayload converts a PathAnalysis to the boundary payload and stats.
func pathPayload(a *analyzer.PathAnalysis, start time.Time) ([]byte, types.PathAnalysisStats) {
	issues := a.Issues
	if issues == nil {
		issues = []types.PathIssue{}
	}
	body := types.PathReport{
		Envelope:        successEnvelope,
		Health:          a.Health,
		Issues:          issues,
		CrossDuplicates: a.CrossDuplicates,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.PathAnalysisStats{Status: code}
	}

	return data, types.PathAnalysisStats{
		Status:              status.Success,
		TotalEntries:        a.TotalEntries,
		UniqueEntries:       a.UniqueEntries,
		DuplicateCount:      a.DuplicateCount,
		NonExistentCount:    a.NonExistentCount,
		EmptyCount:          a.EmptyCount,
		TrailingSlashCount:  a.TrailingSlashCount,
		CrossDuplicateCount: a.CrossDuplicateCount,
		ElapsedMs:           types.ElapsedMs(time.Since(start)),
	}
}

// SearchLogs scans log files under root for the pattern. An empty fileGlob
// defaults to "*.log"; maxMatches caps the returned lines, 0 is unlimited.
func SearchLogs(ctx context.Context, root, pattern, fileGlob string, caseSensitive bool, contextLines, maxMatches int) (payload []byte, stats types.LogSearchStats) {
	start := time.Now()
	defer recoverInto(&payload, &stats.Status)

	res, err := analyzer.SearchLogs(ctx, analyzer.LogOptions{
		Root:          root,
		Pattern:       pattern,
		FileGlob:      fileGlob,
		CaseSensitive: caseSensitive,
		ContextLines:  contextLines,
		MaxMatches:    maxMatches,
	})
	if err != nil {
		return nil, types.LogSearchStats{Status: status.FromError(err)}
	}

	files := res.Files
	if files == nil {
		files = []types.LogFileMatches{}
	}
	body := types.LogSearchReport{
		Envelope:  successEnvelope,
		Files:     files,
		Truncated: res.Truncated,
	}
	data, code := marshal(body)
	if code != status.Success {
		return nil, types.LogSearchStats{Status: code}
	}

	return data, types.LogSearchStats{
		Status:           status.Success,
		FilesSearched:    res.FilesSearched,
		FilesWithMatches: res.FilesWithMatches,
		TotalMatches:     res.TotalMatches,
		BytesSearched:    res.BytesSearched,
		ElapsedMs:        types.ElapsedMs(time.Since(start)),
	}
}

// recoverInto converts a panic into an InternalError for payload+code
// returns. The payload is dropped so the nil-on-failure guarantee holds.
func recoverInto(payload *[]byte, code *status.Code) {
	if r := recover(); r != nil {
		logging.Get("boundary").Error("recovered panic at library boundary", "panic", r)
		*payload = nil
		*code = status.InternalError
	}
}

// recoverCode guards operations with no payload.
func recoverCode(code *status.Code) {
	if r := recover(); r != nil {
		logging.Get("boundary").Error("recovered panic at library boundary", "panic", r)
		*code = status.InternalError
	}
}
