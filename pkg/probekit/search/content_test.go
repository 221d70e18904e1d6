package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/probekit/pkg/probekit/status"
)

func TestSearchContentFindsMatches(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "greeting.txt",
		"Hello world",
		"nothing here",
		"Hello again",
	)
	writeLines(t, dir, "other.txt", "no greetings")

	res, err := SearchContent(context.Background(), ContentOptions{
		Root:         dir,
		Pattern:      "Hello",
		ContextLines: 1,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 2, res.FilesScanned)
	assert.EqualValues(t, 1, res.FilesMatched)
	assert.GreaterOrEqual(t, res.TotalMatches, uint64(2))
	require.Len(t, res.Matches, 2)
	for _, m := range res.Matches {
		assert.LessOrEqual(t, len(m.Before), 1)
		assert.LessOrEqual(t, len(m.After), 1)
		assert.Contains(t, m.Text, "Hello")
	}
}

func TestSearchContentFileGlobRestricts(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "a.go", "package main // TODO")
	writeLines(t, dir, "b.txt", "TODO later")

	res, err := SearchContent(context.Background(), ContentOptions{
		Root:     dir,
		Pattern:  "TODO",
		FileGlob: "*.go",
	})
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, ".go", filepath.Ext(res.Matches[0].Path))
}

func TestSearchContentSkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "text.txt", "needle")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{'n', 0x00, 'e'}, 0o644))

	res, err := SearchContent(context.Background(), ContentOptions{Root: dir, Pattern: "needle"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.FilesScanned)
	assert.EqualValues(t, 1, res.FilesMatched)
}

func TestSearchContentMaxResultsTruncatesListOnly(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "many.txt", "hit", "hit", "hit", "hit", "hit")

	res, err := SearchContent(context.Background(), ContentOptions{
		Root:       dir,
		Pattern:    "hit",
		MaxResults: 2,
	})
	require.NoError(t, err)
	assert.Len(t, res.Matches, 2)
	assert.True(t, res.Truncated)
	assert.EqualValues(t, 5, res.TotalMatches)
}

func TestSearchContentMatchesSortedByPathAndLine(t *testing.T) {
	dir := t.TempDir()
	writeLines(t, dir, "b.txt", "x", "hit", "x", "hit")
	writeLines(t, dir, "a.txt", "hit")

	res, err := SearchContent(context.Background(), ContentOptions{Root: dir, Pattern: "hit"})
	require.NoError(t, err)
	require.Len(t, res.Matches, 3)
	assert.Contains(t, res.Matches[0].Path, "a.txt")
	assert.Equal(t, 2, res.Matches[1].Line)
	assert.Equal(t, 4, res.Matches[2].Line)
}

func TestSearchContentInvalidRegex(t *testing.T) {
	_, err := SearchContent(context.Background(), ContentOptions{Root: ".", Pattern: "(unclosed"})
	require.Error(t, err)
	// User error, never an internal failure.
	assert.Equal(t, status.InvalidArgument, status.FromError(err))
}

func TestSearchContentMissingRoot(t *testing.T) {
	_, err := SearchContent(context.Background(), ContentOptions{
		Root:    filepath.Join(t.TempDir(), "gone"),
		Pattern: "x",
	})
	require.Error(t, err)
	assert.Equal(t, status.PathNotFound, status.FromError(err))
}
