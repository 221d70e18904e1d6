// Package types provides the stat structs and JSON result bodies shared by
// the probekit engines. Stat structs are fixed-layout with no heap members:
// they cross the C boundary by value and need no cleanup. Every stat struct
// embeds the status code as its first field so callers can short-circuit on
// failure without inspecting the payload.
package types

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/probekit/probekit/pkg/probekit/status"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
	GiB int64 = 1024 * MiB
)

// FormatSize converts a size in bytes to a human-readable IEC string
// ("1.5 MiB"). Used for the *_human fields in JSON payloads.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// ElapsedMs converts a duration to whole milliseconds for stat structs.
func ElapsedMs(d time.Duration) uint64 {
	if d < 0 {
		return 0
	}
	return uint64(d.Milliseconds())
}

// DuplicateStats summarises a duplicate-detection run.
type DuplicateStats struct {
	Status          status.Code `json:"status_code"`
	FilesScanned    uint64      `json:"files_scanned"`
	DuplicateGroups uint64      `json:"duplicate_groups"`
	DuplicateFiles  uint64      `json:"duplicate_files"`
	WastedBytes     uint64      `json:"wasted_bytes"`
	ElapsedMs       uint64      `json:"elapsed_ms"`
}

// FileSearchStats summarises a glob file search.
type FileSearchStats struct {
	Status       status.Code `json:"status_code"`
	FilesScanned uint64      `json:"files_scanned"`
	FilesMatched uint64      `json:"files_matched"`
	TotalSize    uint64      `json:"total_size"`
	ElapsedMs    uint64      `json:"elapsed_ms"`
}

// ContentSearchStats summarises a regex content search.
type ContentSearchStats struct {
	Status       status.Code `json:"status_code"`
	FilesScanned uint64      `json:"files_scanned"`
	FilesMatched uint64      `json:"files_matched"`
	TotalMatches uint64      `json:"total_matches"`
	ElapsedMs    uint64      `json:"elapsed_ms"`
}

// DiskUsageStats summarises a disk-usage walk.
type DiskUsageStats struct {
	Status         status.Code `json:"status_code"`
	TotalSizeBytes uint64      `json:"total_size_bytes"`
	TotalFiles     uint64      `json:"total_files"`
	TotalDirs      uint64      `json:"total_dirs"`
	ElapsedMs      uint64      `json:"elapsed_ms"`
}

// ProcessStats summarises a one-shot process snapshot.
type ProcessStats struct {
	Status                 status.Code `json:"status_code"`
	TotalProcesses         uint64      `json:"total_processes"`
	TotalThreads           uint64      `json:"total_threads"`
	SystemCPUUsage         float64     `json:"system_cpu_usage"`
	SystemMemoryUsedBytes  uint64      `json:"system_memory_used_bytes"`
	SystemMemoryTotalBytes uint64      `json:"system_memory_total_bytes"`
	ElapsedMs              uint64      `json:"elapsed_ms"`
}

// MemoryStats is a single snapshot of system RAM and swap counters.
type MemoryStats struct {
	Status               status.Code `json:"status_code"`
	TotalMemoryBytes     uint64      `json:"total_memory_bytes"`
	UsedMemoryBytes      uint64      `json:"used_memory_bytes"`
	AvailableMemoryBytes uint64      `json:"available_memory_bytes"`
	TotalSwapBytes       uint64      `json:"total_swap_bytes"`
	UsedSwapBytes        uint64      `json:"used_swap_bytes"`
	ElapsedMs            uint64      `json:"elapsed_ms"`
}

// PathAnalysisStats summarises a PATH audit.
type PathAnalysisStats struct {
	Status              status.Code `json:"status_code"`
	TotalEntries        uint64      `json:"total_entries"`
	UniqueEntries       uint64      `json:"unique_entries"`
	DuplicateCount      uint64      `json:"duplicate_count"`
	NonExistentCount    uint64      `json:"non_existent_count"`
	EmptyCount          uint64      `json:"empty_count"`
	TrailingSlashCount  uint64      `json:"trailing_slash_count"`
	CrossDuplicateCount uint64      `json:"cross_duplicate_count"`
	ElapsedMs           uint64      `json:"elapsed_ms"`
}

// LogSearchStats summarises a log search.
type LogSearchStats struct {
	Status           status.Code `json:"status_code"`
	FilesSearched    uint64      `json:"files_searched"`
	FilesWithMatches uint64      `json:"files_with_matches"`
	TotalMatches     uint64      `json:"total_matches"`
	BytesSearched    uint64      `json:"bytes_searched"`
	ElapsedMs        uint64      `json:"elapsed_ms"`
}
