package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/probekit/pkg/probekit/status"
)

func writeSized(t *testing.T, dir, name string, size int) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestDiskUsageCountsTree(t *testing.T) {
	dir := t.TempDir()
	writeSized(t, dir, "root.bin", 100)
	writeSized(t, dir, "big/a.bin", 1000)
	writeSized(t, dir, "big/b.bin", 2000)
	writeSized(t, dir, "small/c.bin", 10)

	res, err := DiskUsage(context.Background(), DiskOptions{Root: dir})
	require.NoError(t, err)

	assert.EqualValues(t, 3110, res.TotalSize)
	assert.EqualValues(t, 4, res.TotalFiles)
	assert.EqualValues(t, 2, res.TotalDirs)
}

func TestDiskUsageTopSubdirsSortedBySize(t *testing.T) {
	dir := t.TempDir()
	writeSized(t, dir, "big/a.bin", 5000)
	writeSized(t, dir, "mid/b.bin", 500)
	writeSized(t, dir, "tiny/c.bin", 5)

	res, err := DiskUsage(context.Background(), DiskOptions{Root: dir, TopN: 2})
	require.NoError(t, err)

	require.Len(t, res.Subdirs, 2)
	assert.Equal(t, filepath.Join(dir, "big"), res.Subdirs[0].Path)
	assert.EqualValues(t, 5000, res.Subdirs[0].SizeBytes)
	assert.Equal(t, filepath.Join(dir, "mid"), res.Subdirs[1].Path)
}

func TestDiskUsageAttributesNestedFilesToTopSubdir(t *testing.T) {
	dir := t.TempDir()
	writeSized(t, dir, "top/deep/deeper/file.bin", 300)
	writeSized(t, dir, "top/file.bin", 200)

	res, err := DiskUsage(context.Background(), DiskOptions{Root: dir})
	require.NoError(t, err)

	require.Len(t, res.Subdirs, 1)
	assert.EqualValues(t, 500, res.Subdirs[0].SizeBytes)
	assert.EqualValues(t, 2, res.Subdirs[0].Files)
}

func TestDiskUsageEmptyDir(t *testing.T) {
	res, err := DiskUsage(context.Background(), DiskOptions{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Zero(t, res.TotalSize)
	assert.Zero(t, res.TotalFiles)
	assert.Zero(t, res.TotalDirs)
	assert.Empty(t, res.Subdirs)
}

func TestDiskUsageMissingRoot(t *testing.T) {
	_, err := DiskUsage(context.Background(), DiskOptions{Root: filepath.Join(t.TempDir(), "gone")})
	require.Error(t, err)
	assert.Equal(t, status.PathNotFound, status.FromError(err))
}
