//go:build !unix

package telemetry

// volumeUsage is unavailable on this platform; callers treat zeros as
// "no volume data".
func volumeUsage(string) (total, free uint64) {
	return 0, 0
}
