package main

/*
#include "probekit.h"
*/
import "C"

import "github.com/probekit/probekit/pkg/probekit/types"

// The put* helpers copy Go stat structs into caller-provided C structs.
// A nil out pointer means the caller declined the stats and is not an error.

func putDuplicateStats(out *C.probekit_duplicate_stats_t, s types.DuplicateStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.files_scanned = C.uint64_t(s.FilesScanned)
	out.duplicate_groups = C.uint64_t(s.DuplicateGroups)
	out.duplicate_files = C.uint64_t(s.DuplicateFiles)
	out.wasted_bytes = C.uint64_t(s.WastedBytes)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putFileSearchStats(out *C.probekit_file_search_stats_t, s types.FileSearchStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.files_scanned = C.uint64_t(s.FilesScanned)
	out.files_matched = C.uint64_t(s.FilesMatched)
	out.total_size = C.uint64_t(s.TotalSize)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putContentSearchStats(out *C.probekit_content_search_stats_t, s types.ContentSearchStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.files_scanned = C.uint64_t(s.FilesScanned)
	out.files_matched = C.uint64_t(s.FilesMatched)
	out.total_matches = C.uint64_t(s.TotalMatches)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putDiskUsageStats(out *C.probekit_disk_usage_stats_t, s types.DiskUsageStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.total_size_bytes = C.uint64_t(s.TotalSizeBytes)
	out.total_files = C.uint64_t(s.TotalFiles)
	out.total_dirs = C.uint64_t(s.TotalDirs)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putProcessStats(out *C.probekit_process_stats_t, s types.ProcessStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.total_processes = C.uint64_t(s.TotalProcesses)
	out.total_threads = C.uint64_t(s.TotalThreads)
	out.system_cpu_usage = C.double(s.SystemCPUUsage)
	out.system_memory_used_bytes = C.uint64_t(s.SystemMemoryUsedBytes)
	out.system_memory_total_bytes = C.uint64_t(s.SystemMemoryTotalBytes)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putMemoryStats(out *C.probekit_memory_stats_t, s types.MemoryStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.total_memory_bytes = C.uint64_t(s.TotalMemoryBytes)
	out.used_memory_bytes = C.uint64_t(s.UsedMemoryBytes)
	out.available_memory_bytes = C.uint64_t(s.AvailableMemoryBytes)
	out.total_swap_bytes = C.uint64_t(s.TotalSwapBytes)
	out.used_swap_bytes = C.uint64_t(s.UsedSwapBytes)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putPathStats(out *C.probekit_path_stats_t, s types.PathAnalysisStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.total_entries = C.uint64_t(s.TotalEntries)
	out.unique_entries = C.uint64_t(s.UniqueEntries)
	out.duplicate_count = C.uint64_t(s.DuplicateCount)
	out.non_existent_count = C.uint64_t(s.NonExistentCount)
	out.empty_count = C.uint64_t(s.EmptyCount)
	out.trailing_slash_count = C.uint64_t(s.TrailingSlashCount)
	out.cross_duplicate_count = C.uint64_t(s.CrossDuplicateCount)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}

func putLogSearchStats(out *C.probekit_log_search_stats_t, s types.LogSearchStats) {
	if out == nil {
		return
	}
	out.status = C.int32_t(s.Status)
	out.files_searched = C.uint64_t(s.FilesSearched)
	out.files_with_matches = C.uint64_t(s.FilesWithMatches)
	out.total_matches = C.uint64_t(s.TotalMatches)
	out.bytes_searched = C.uint64_t(s.BytesSearched)
	out.elapsed_ms = C.uint64_t(s.ElapsedMs)
}
