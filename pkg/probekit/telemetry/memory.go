package telemetry

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"
)

// MemorySnapshot is a single reading of system RAM and swap counters.
// Used and Available approximately reconstruct Total; cache and buffer
// accounting leaves a platform-dependent slack.
type MemorySnapshot struct {
	Total     uint64
	Used      uint64
	Available uint64
	SwapTotal uint64
	SwapUsed  uint64
}

// SnapshotMemory reads RAM and swap counters in one pass.
func SnapshotMemory(ctx context.Context) (*MemorySnapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	snap := &MemorySnapshot{
		Total:     vm.Total,
		Used:      vm.Used,
		Available: vm.Available,
	}

	// Missing swap is a configuration, not an error.
	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil && swap != nil {
		snap.SwapTotal = swap.Total
		snap.SwapUsed = swap.Used
	}
	return snap, nil
}
