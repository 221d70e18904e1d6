package dupes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/probekit/pkg/probekit/status"
)

// writeFile creates a file with the given content under dir.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func find(t *testing.T, opts Options) *Result {
	t.Helper()
	f, err := New(opts)
	require.NoError(t, err)
	res, err := f.Find(context.Background())
	require.NoError(t, err)
	return res
}

func TestFindGroupsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "same content here")
	writeFile(t, dir, "b.txt", "same content here")
	writeFile(t, dir, "sub/c.txt", "same content here")
	writeFile(t, dir, "unique.txt", "something else....")

	res := find(t, Options{Root: dir})

	require.Len(t, res.Groups, 1)
	group := res.Groups[0]
	assert.Len(t, group.Files, 3)
	assert.EqualValues(t, 4, res.FilesScanned)
	assert.Equal(t, int64(len("same content here"))*2, group.WastedBytes)
	assert.Equal(t, group.WastedBytes, res.TotalWastedBytes)
}

func TestFindOneByteDifferenceSplitsGroups(t *testing.T) {
	dir := t.TempDir()
	// Same length, different content: survives the size bucket, must be
	// separated by the hash phase.
	writeFile(t, dir, "a.bin", "AAAAAAAAAA")
	writeFile(t, dir, "b.bin", "AAAAAAAAAB")

	res := find(t, Options{Root: dir})
	assert.Empty(t, res.Groups)
}

func TestFindMinSizeFiltersGroups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small1.txt", "tiny")
	writeFile(t, dir, "small2.txt", "tiny")
	writeFile(t, dir, "big1.txt", "0123456789abcdef")
	writeFile(t, dir, "big2.txt", "0123456789abcdef")

	res := find(t, Options{Root: dir, MinSize: 10})

	require.Len(t, res.Groups, 1)
	for _, g := range res.Groups {
		assert.GreaterOrEqual(t, g.Size, int64(10))
	}
	// The size filter excludes files from hashing, not from the scan count.
	assert.EqualValues(t, 4, res.FilesScanned)
}

func TestFindEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty1", "")
	writeFile(t, dir, "empty2", "")

	// DefaultMinSize skips empty files.
	res := find(t, Options{Root: dir, MinSize: DefaultMinSize})
	assert.Empty(t, res.Groups)

	// MinSize 0 opts back in: empty files are legitimate duplicates.
	res = find(t, Options{Root: dir, MinSize: 0})
	require.Len(t, res.Groups, 1)
	assert.Len(t, res.Groups[0].Files, 2)
	assert.Zero(t, res.Groups[0].WastedBytes)
}

func TestFindNegativeMinSizeUsesDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty1", "")
	writeFile(t, dir, "empty2", "")

	res := find(t, Options{Root: dir, MinSize: -1})
	assert.Empty(t, res.Groups)
}

func TestFindOrdersGroupMembersByModTime(t *testing.T) {
	dir := t.TempDir()
	oldest := writeFile(t, dir, "oldest.txt", "duplicated payload")
	middle := writeFile(t, dir, "middle.txt", "duplicated payload")
	newest := writeFile(t, dir, "newest.txt", "duplicated payload")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(oldest, base, base))
	require.NoError(t, os.Chtimes(middle, base.Add(time.Minute), base.Add(time.Minute)))
	require.NoError(t, os.Chtimes(newest, base.Add(2*time.Minute), base.Add(2*time.Minute)))

	res := find(t, Options{Root: dir})

	require.Len(t, res.Groups, 1)
	files := res.Groups[0].Files
	require.Len(t, files, 3)
	assert.Equal(t, oldest, files[0].Path)
	assert.Equal(t, middle, files[1].Path)
	assert.Equal(t, newest, files[2].Path)
}

func TestFindHonorsGlobFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.log", "same bytes in here")
	writeFile(t, dir, "b.log", "same bytes in here")
	writeFile(t, dir, "a.txt", "same bytes in here")
	writeFile(t, dir, "b.txt", "same bytes in here")

	res := find(t, Options{Root: dir, Include: []string{"*.log"}})
	require.Len(t, res.Groups, 1)
	for _, f := range res.Groups[0].Files {
		assert.Equal(t, ".log", filepath.Ext(f.Path))
	}

	res = find(t, Options{Root: dir, Exclude: []string{"*.log"}})
	require.Len(t, res.Groups, 1)
	for _, f := range res.Groups[0].Files {
		assert.Equal(t, ".txt", filepath.Ext(f.Path))
	}
}

func TestFindMissingRootIsPathNotFound(t *testing.T) {
	f, err := New(Options{Root: filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)

	_, err = f.Find(context.Background())
	require.Error(t, err)
	assert.Equal(t, status.PathNotFound, status.FromError(err))
}

func TestNewRejectsBadGlob(t *testing.T) {
	_, err := New(Options{Root: ".", Include: []string{"[unterminated"}})
	require.Error(t, err)
	assert.Equal(t, status.InvalidArgument, status.FromError(err))
}

func TestFindCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "same content here")
	writeFile(t, dir, "b.txt", "same content here")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f, err := New(Options{Root: dir})
	require.NoError(t, err)
	_, err = f.Find(ctx)
	require.Error(t, err)
	assert.Equal(t, status.Cancelled, status.FromError(err))
}
