package telemetry

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/status"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// ProcessSnapshot is a one-shot view of the process table plus system-wide
// CPU and memory aggregates.
type ProcessSnapshot struct {
	TotalProcesses    uint64
	TotalThreads      uint64
	SystemCPUUsage    float64
	SystemMemoryUsed  uint64
	SystemMemoryTotal uint64
}

// SnapshotProcesses enumerates the process table once and aggregates thread
// counts with system CPU and memory usage. Processes that disappear mid-walk
// are skipped.
func SnapshotProcesses(ctx context.Context) (*ProcessSnapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	snap := &ProcessSnapshot{TotalProcesses: uint64(len(procs))}
	for _, p := range procs {
		if threads, err := p.NumThreadsWithContext(ctx); err == nil {
			snap.TotalThreads += uint64(threads)
		}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		snap.SystemMemoryUsed = vm.Used
		snap.SystemMemoryTotal = vm.Total
	}

	// Interval 0 reports usage since the previous call without sleeping,
	// keeping the snapshot non-blocking.
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		snap.SystemCPUUsage = pcts[0]
	}

	return snap, nil
}

// Process sort keys accepted by TopProcesses.
const (
	SortByMemory = "memory"
	SortByCPU    = "cpu"
)

// TopProcesses returns the topN processes sorted by the given key
// descending, with PID as a stable tie-break. An unrecognised key is a
// caller error.
func TopProcesses(ctx context.Context, topN int, sortBy string) ([]types.ProcessInfo, error) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	if sortBy != SortByMemory && sortBy != SortByCPU {
		return nil, status.Errorf(status.InvalidArgument, "unknown sort key "+sortBy)
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]types.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		info := types.ProcessInfo{PID: p.Pid}

		// A process may exit between enumeration and inspection; drop it
		// rather than reporting a half-filled row.
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		info.Name = name

		if cpuPct, err := p.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = cpuPct
		}
		if memInfo, err := p.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
			info.MemoryBytes = memInfo.RSS
		}
		if threads, err := p.NumThreadsWithContext(ctx); err == nil {
			info.Threads = threads
		}
		info.MemoryHuman = types.FormatSize(int64(info.MemoryBytes))

		infos = append(infos, info)
	}

	slices.SortFunc(infos, func(a, b types.ProcessInfo) int {
		var c int
		switch sortBy {
		case SortByCPU:
			c = cmp.Compare(b.CPUPercent, a.CPUPercent)
		default:
			c = cmp.Compare(b.MemoryBytes, a.MemoryBytes)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})

	if len(infos) > topN {
		infos = infos[:topN]
	}

	logging.Get("telemetry").Debug("top processes",
		"sort_by", sortBy,
		"returned", len(infos))
	return infos, nil
}
