package main

/*
#include "probekit.h"
*/
import "C"

import (
	"context"

	"github.com/probekit/probekit/pkg/probekit"
	"github.com/probekit/probekit/pkg/probekit/analyzer"
	"github.com/probekit/probekit/pkg/probekit/status"
	"github.com/probekit/probekit/pkg/probekit/types"
)

//export probekit_version
//
// probekit_version returns the library version payload.
func probekit_version() C.probekit_buffer_t {
	payload, code := probekit.VersionString()
	return newBuffer(payload, code)
}

//export probekit_find_duplicates
//
// probekit_find_duplicates scans root for duplicate files. min_size < 0
// selects the default threshold; include_glob and exclude_glob may be NULL.
// out_stats may be NULL when the caller only wants the payload.
func probekit_find_duplicates(root *C.char, minSize C.int64_t, includeGlob, excludeGlob *C.char, outStats *C.probekit_duplicate_stats_t) C.probekit_buffer_t {
	rootStr, code := goString(root)
	if code != status.Success {
		putDuplicateStats(outStats, types.DuplicateStats{Status: code})
		return errorBuffer(code)
	}
	include, code := goStringOpt(includeGlob)
	if code != status.Success {
		putDuplicateStats(outStats, types.DuplicateStats{Status: code})
		return errorBuffer(code)
	}
	exclude, code := goStringOpt(excludeGlob)
	if code != status.Success {
		putDuplicateStats(outStats, types.DuplicateStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.FindDuplicates(context.Background(), rootStr, int64(minSize), include, exclude)
	putDuplicateStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_find_files
//
// probekit_find_files returns files under root matching a glob pattern.
// max_results caps the returned list only; 0 means unlimited.
func probekit_find_files(root, pattern *C.char, maxResults C.int32_t, outStats *C.probekit_file_search_stats_t) C.probekit_buffer_t {
	rootStr, code := goString(root)
	if code != status.Success {
		putFileSearchStats(outStats, types.FileSearchStats{Status: code})
		return errorBuffer(code)
	}
	patternStr, code := goString(pattern)
	if code != status.Success {
		putFileSearchStats(outStats, types.FileSearchStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.FindFiles(context.Background(), rootStr, patternStr, int(maxResults))
	putFileSearchStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_search_content
//
// probekit_search_content scans text files under root for a regex pattern.
// file_glob may be NULL to scan every file.
func probekit_search_content(root, pattern, fileGlob *C.char, maxResults, contextLines C.int32_t, outStats *C.probekit_content_search_stats_t) C.probekit_buffer_t {
	rootStr, code := goString(root)
	if code != status.Success {
		putContentSearchStats(outStats, types.ContentSearchStats{Status: code})
		return errorBuffer(code)
	}
	patternStr, code := goString(pattern)
	if code != status.Success {
		putContentSearchStats(outStats, types.ContentSearchStats{Status: code})
		return errorBuffer(code)
	}
	globStr, code := goStringOpt(fileGlob)
	if code != status.Success {
		putContentSearchStats(outStats, types.ContentSearchStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.SearchContent(context.Background(), rootStr, patternStr, globStr, int(maxResults), int(contextLines))
	putContentSearchStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_get_disk_usage
//
// probekit_get_disk_usage measures the tree under root and reports the
// top_n largest immediate subdirectories.
func probekit_get_disk_usage(root *C.char, topN C.int32_t, outStats *C.probekit_disk_usage_stats_t) C.probekit_buffer_t {
	rootStr, code := goString(root)
	if code != status.Success {
		putDiskUsageStats(outStats, types.DiskUsageStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.GetDiskUsage(context.Background(), rootStr, int(topN))
	putDiskUsageStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_get_process_stats
//
// probekit_get_process_stats snapshots the process table into out_stats and
// returns its status code.
func probekit_get_process_stats(outStats *C.probekit_process_stats_t) C.int32_t {
	if outStats == nil {
		return C.int32_t(status.NullPointer)
	}
	stats := probekit.GetProcessStats(context.Background())
	putProcessStats(outStats, stats)
	return C.int32_t(stats.Status)
}

//export probekit_get_top_processes
//
// probekit_get_top_processes returns the top_n processes sorted by
// "memory" or "cpu".
func probekit_get_top_processes(topN C.int32_t, sortBy *C.char) C.probekit_buffer_t {
	sortStr, code := goString(sortBy)
	if code != status.Success {
		return errorBuffer(code)
	}
	payload, code := probekit.GetTopProcesses(context.Background(), int(topN), sortStr)
	return newBuffer(payload, code)
}

//export probekit_get_memory_stats
//
// probekit_get_memory_stats reads RAM and swap counters in one snapshot.
// out_stats may be NULL when the caller only wants the payload.
func probekit_get_memory_stats(outStats *C.probekit_memory_stats_t) C.probekit_buffer_t {
	payload, stats := probekit.GetMemoryStats(context.Background())
	putMemoryStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_analyze_path
//
// probekit_analyze_path audits the current process PATH variable.
func probekit_analyze_path(outStats *C.probekit_path_stats_t) C.probekit_buffer_t {
	payload, stats := probekit.AnalyzePath()
	putPathStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_analyze_path_scopes
//
// probekit_analyze_path_scopes audits user- and machine-scope PATH values
// together, reporting cross-scope duplicates.
func probekit_analyze_path_scopes(userValue, machineValue *C.char, outStats *C.probekit_path_stats_t) C.probekit_buffer_t {
	userStr, code := goStringOpt(userValue)
	if code != status.Success {
		putPathStats(outStats, types.PathAnalysisStats{Status: code})
		return errorBuffer(code)
	}
	machineStr, code := goStringOpt(machineValue)
	if code != status.Success {
		putPathStats(outStats, types.PathAnalysisStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.AnalyzePathScopes(userStr, machineStr, analyzer.PathOptions{})
	putPathStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}

//export probekit_search_logs
//
// probekit_search_logs scans log files under root for a pattern. file_glob
// may be NULL for the *.log default; max_matches 0 is unlimited.
func probekit_search_logs(root, pattern, fileGlob *C.char, caseSensitive C.int32_t, contextLines, maxMatches C.int32_t, outStats *C.probekit_log_search_stats_t) C.probekit_buffer_t {
	rootStr, code := goString(root)
	if code != status.Success {
		putLogSearchStats(outStats, types.LogSearchStats{Status: code})
		return errorBuffer(code)
	}
	patternStr, code := goString(pattern)
	if code != status.Success {
		putLogSearchStats(outStats, types.LogSearchStats{Status: code})
		return errorBuffer(code)
	}
	globStr, code := goStringOpt(fileGlob)
	if code != status.Success {
		putLogSearchStats(outStats, types.LogSearchStats{Status: code})
		return errorBuffer(code)
	}

	payload, stats := probekit.SearchLogs(context.Background(), rootStr, patternStr, globStr, caseSensitive != 0, int(contextLines), int(maxMatches))
	putLogSearchStats(outStats, stats)
	return newBuffer(payload, stats.Status)
}
