package types

import "time"

// Envelope fields shared by every JSON payload. Consumers must tolerate
// additive fields; nothing here is ever removed or renamed.
type Envelope struct {
	// Status is "Success" in every payload that is actually returned;
	// failed calls return no payload at all.
	Status string `json:"status"`
}

// DuplicateFile is one member of a duplicate group.
type DuplicateFile struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// DuplicateGroup is a set of files with identical content. Files are ordered
// by modification time ascending: the oldest member is the presumed original.
type DuplicateGroup struct {
	Hash        string          `json:"hash"`
	Size        int64           `json:"size"`
	WastedBytes int64           `json:"wasted_bytes"`
	WastedHuman string          `json:"wasted_human"`
	Files       []DuplicateFile `json:"files"`
}

// DuplicateReport is the payload body for find_duplicates.
type DuplicateReport struct {
	Envelope
	Groups           []DuplicateGroup `json:"groups"`
	TotalWastedBytes int64            `json:"total_wasted_bytes"`
	TotalWastedHuman string           `json:"total_wasted_human"`
	SkippedFiles     uint64           `json:"skipped_files"`
}

// FileHit is one match from a glob file search.
type FileHit struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// FileSearchReport is the payload body for find_files.
type FileSearchReport struct {
	Envelope
	Files     []FileHit `json:"files"`
	Truncated bool      `json:"truncated"`
}

// ContentMatch is one matching line from a content search, with up to the
// requested number of context lines on either side.
type ContentMatch struct {
	Path   string   `json:"path"`
	Line   int      `json:"line"`
	Text   string   `json:"text"`
	Before []string `json:"context_before"`
	After  []string `json:"context_after"`
}

// ContentSearchReport is the payload body for search_content.
type ContentSearchReport struct {
	Envelope
	Matches   []ContentMatch `json:"matches"`
	Truncated bool           `json:"truncated"`
}

// SubdirUsage is one entry of the top-N largest immediate subdirectories.
type SubdirUsage struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"size_human"`
	Files     uint64 `json:"files"`
}

// DiskUsageReport is the payload body for get_disk_usage.
type DiskUsageReport struct {
	Envelope
	Root           string        `json:"root"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	TotalSizeHuman string        `json:"total_size_human"`
	TotalFiles     uint64        `json:"total_files"`
	TotalDirs      uint64        `json:"total_dirs"`
	Subdirs        []SubdirUsage `json:"largest_subdirs"`
	// Volume counters for the filesystem containing Root; zero when the
	// platform query is unavailable.
	VolumeTotalBytes uint64 `json:"volume_total_bytes,omitempty"`
	VolumeFreeBytes  uint64 `json:"volume_free_bytes,omitempty"`
}

// ProcessInfo is one process in a top-processes projection.
type ProcessInfo struct {
	PID         int32   `json:"pid"`
	Name        string  `json:"name"`
	CPUPercent  float64 `json:"cpu_percent"`
	MemoryBytes uint64  `json:"memory_bytes"`
	MemoryHuman string  `json:"memory_human"`
	Threads     int32   `json:"threads"`
}

// TopProcessesReport is the payload body for get_top_processes.
type TopProcessesReport struct {
	Envelope
	SortBy    string        `json:"sort_by"`
	Processes []ProcessInfo `json:"processes"`
}

// MemoryReport is the payload body for get_memory_stats.
type MemoryReport struct {
	Envelope
	TotalBytes     uint64 `json:"total_bytes"`
	UsedBytes      uint64 `json:"used_bytes"`
	AvailableBytes uint64 `json:"available_bytes"`
	TotalHuman     string `json:"total_human"`
	UsedHuman      string `json:"used_human"`
	AvailableHuman string `json:"available_human"`
	SwapTotalBytes uint64 `json:"swap_total_bytes"`
	SwapUsedBytes  uint64 `json:"swap_used_bytes"`
}

// PathIssue flags one problematic PATH entry.
type PathIssue struct {
	Index  int    `json:"index"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// CrossDuplicate is a PATH entry present in both the user and machine
// scopes after normalization.
type CrossDuplicate struct {
	Value          string `json:"value"`
	UserIndex      int    `json:"user_index"`
	MachineIndex   int    `json:"machine_index"`
	Recommendation string `json:"recommendation"`
}

// PathReport is the payload body for analyze_path.
type PathReport struct {
	Envelope
	Health          string           `json:"health"`
	Issues          []PathIssue      `json:"issues"`
	CrossDuplicates []CrossDuplicate `json:"cross_duplicates,omitempty"`
}

// LogMatch is one matching line inside a log file, without the path: the
// enclosing LogFileMatches carries it once.
type LogMatch struct {
	Line   int      `json:"line"`
	Text   string   `json:"text"`
	Before []string `json:"context_before"`
	After  []string `json:"context_after"`
}

// LogFileMatches groups all matches found in one file.
type LogFileMatches struct {
	Path    string     `json:"path"`
	Matches []LogMatch `json:"matches"`
}

// LogSearchReport is the payload body for search_logs.
type LogSearchReport struct {
	Envelope
	Files     []LogFileMatches `json:"files"`
	Truncated bool             `json:"truncated"`
}

// VersionReport is the payload body for version_string.
type VersionReport struct {
	Envelope
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
}
