package search

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestScanFileFindsMatchingLines(t *testing.T) {
	dir := t.TempDir()
	path := writeLines(t, dir, "f.txt",
		"one",
		"Hello world",
		"three",
		"Hello again",
		"five",
	)

	matches, bytesRead, err := ScanFile(path, regexp.MustCompile("Hello"), 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Positive(t, bytesRead)

	first := matches[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "Hello world", first.Text)
	assert.Equal(t, []string{"one"}, first.Before)
	assert.Equal(t, []string{"three"}, first.After)
	assert.Equal(t, 1, first.Count)

	second := matches[1]
	assert.Equal(t, 4, second.Line)
	assert.Equal(t, []string{"three"}, second.Before)
	assert.Equal(t, []string{"five"}, second.After)
}

func TestScanFileContextBoundedByRequest(t *testing.T) {
	dir := t.TempDir()
	path := writeLines(t, dir, "f.txt", "a", "b", "c", "match", "d", "e", "f")

	for _, context := range []int{0, 1, 2, 3} {
		matches, _, err := ScanFile(path, regexp.MustCompile("match"), context)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.LessOrEqual(t, len(matches[0].Before), context)
		assert.LessOrEqual(t, len(matches[0].After), context)
	}
}

func TestScanFileContextShorterAtFileEdges(t *testing.T) {
	dir := t.TempDir()
	path := writeLines(t, dir, "f.txt", "match at start", "middle", "match at end")

	matches, _, err := ScanFile(path, regexp.MustCompile("match"), 5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Empty(t, matches[0].Before)
	assert.Equal(t, []string{"middle", "match at end"}, matches[0].After)
	assert.Equal(t, []string{"match at start", "middle"}, matches[1].Before)
	assert.Empty(t, matches[1].After)
}

func TestScanFileCountsAllMatchesOnLine(t *testing.T) {
	dir := t.TempDir()
	path := writeLines(t, dir, "f.txt", "foo foo foo")

	matches, _, err := ScanFile(path, regexp.MustCompile("foo"), 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 3, matches[0].Count)
}

func TestScanFileRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0x00, 'b', 'c'}, 0o644))

	_, _, err := ScanFile(path, regexp.MustCompile("a"), 0)
	assert.ErrorIs(t, err, ErrBinary)
}

func TestCompileRegex(t *testing.T) {
	re, err := CompileRegex("ERROR", false)
	require.NoError(t, err)
	assert.True(t, re.MatchString("an error occurred"))

	re, err = CompileRegex("ERROR", true)
	require.NoError(t, err)
	assert.False(t, re.MatchString("an error occurred"))
	assert.True(t, re.MatchString("an ERROR occurred"))

	_, err = CompileRegex("(unclosed", true)
	assert.Error(t, err)

	_, err = CompileRegex("", true)
	assert.Error(t, err)
}
