//go:build unix

package telemetry

import "golang.org/x/sys/unix"

// volumeUsage returns total and free bytes for the filesystem containing
// path, or zeros when the query fails.
func volumeUsage(path string) (total, free uint64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}
	bsize := uint64(stat.Bsize)
	return stat.Blocks * bsize, stat.Bavail * bsize
}
