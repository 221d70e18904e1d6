package probekit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probekit/probekit/pkg/probekit/analyzer"
	"github.com/probekit/probekit/pkg/probekit/status"
)

// envelopeOf decodes the top-level JSON object of a payload.
func envelopeOf(t *testing.T, payload []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(payload, &m))
	return m
}

func TestVersionString(t *testing.T) {
	payload, code := VersionString()
	require.Equal(t, status.Success, code)

	m := envelopeOf(t, payload)
	assert.Equal(t, "Success", m["status"])
	assert.Equal(t, "dev", m["version"])
}

func TestFindDuplicatesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("payload payload"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("payload payload"), 0o644))

	payload, stats := FindDuplicates(context.Background(), dir, -1, "", "")
	require.Equal(t, status.Success, stats.Status)
	require.NotNil(t, payload)

	assert.EqualValues(t, 2, stats.FilesScanned)
	assert.EqualValues(t, 1, stats.DuplicateGroups)
	assert.EqualValues(t, 2, stats.DuplicateFiles)
	assert.EqualValues(t, len("payload payload"), stats.WastedBytes)

	m := envelopeOf(t, payload)
	assert.Equal(t, "Success", m["status"])
	groups, ok := m["groups"].([]any)
	require.True(t, ok)
	assert.Len(t, groups, 1)
}

func TestFindDuplicatesFailureHasNilPayload(t *testing.T) {
	payload, stats := FindDuplicates(context.Background(), filepath.Join(t.TempDir(), "gone"), -1, "", "")

	assert.Nil(t, payload)
	assert.Equal(t, status.PathNotFound, stats.Status)
	// Failed calls leave every counter zeroed.
	assert.Zero(t, stats.FilesScanned)
	assert.Zero(t, stats.ElapsedMs)
}

func TestFindFilesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hit.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "miss.md"), []byte("x"), 0o644))

	payload, stats := FindFiles(context.Background(), dir, "*.txt", 0)
	require.Equal(t, status.Success, stats.Status)
	assert.EqualValues(t, 2, stats.FilesScanned)
	assert.EqualValues(t, 1, stats.FilesMatched)

	m := envelopeOf(t, payload)
	files, ok := m["files"].([]any)
	require.True(t, ok)
	assert.Len(t, files, 1)
}

func TestFindFilesInvalidPattern(t *testing.T) {
	payload, stats := FindFiles(context.Background(), t.TempDir(), "[bad", 0)
	assert.Nil(t, payload)
	assert.Equal(t, status.InvalidArgument, stats.Status)
}

func TestSearchContentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("alpha\nneedle\nomega\n"), 0o644))

	payload, stats := SearchContent(context.Background(), dir, "needle", "", 0, 1)
	require.Equal(t, status.Success, stats.Status)
	assert.EqualValues(t, 1, stats.FilesMatched)
	assert.EqualValues(t, 1, stats.TotalMatches)

	m := envelopeOf(t, payload)
	matches, ok := m["matches"].([]any)
	require.True(t, ok)
	require.Len(t, matches, 1)
	first := matches[0].(map[string]any)
	assert.Equal(t, "needle", first["text"])
}

func TestGetDiskUsageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "f.bin"), make([]byte, 128), 0o644))

	payload, stats := GetDiskUsage(context.Background(), dir, 5)
	require.Equal(t, status.Success, stats.Status)
	assert.EqualValues(t, 128, stats.TotalSizeBytes)
	assert.EqualValues(t, 1, stats.TotalFiles)

	m := envelopeOf(t, payload)
	assert.Equal(t, "Success", m["status"])
	assert.NotEmpty(t, m["total_size_human"])
}

func TestGetProcessStats(t *testing.T) {
	stats := GetProcessStats(context.Background())
	require.Equal(t, status.Success, stats.Status)
	assert.Positive(t, stats.TotalProcesses)
	assert.Positive(t, stats.SystemMemoryTotalBytes)
}

func TestGetTopProcesses(t *testing.T) {
	payload, code := GetTopProcesses(context.Background(), 3, "memory")
	require.Equal(t, status.Success, code)

	m := envelopeOf(t, payload)
	assert.Equal(t, "memory", m["sort_by"])

	payload, code = GetTopProcesses(context.Background(), 3, "bogus")
	assert.Nil(t, payload)
	assert.Equal(t, status.InvalidArgument, code)
}

func TestGetMemoryStats(t *testing.T) {
	payload, stats := GetMemoryStats(context.Background())
	require.Equal(t, status.Success, stats.Status)
	assert.Positive(t, stats.TotalMemoryBytes)

	m := envelopeOf(t, payload)
	assert.NotEmpty(t, m["total_human"])
}

func TestAnalyzePathValue(t *testing.T) {
	dir := t.TempDir()
	payload, stats := AnalyzePathValue(dir+":"+dir, analyzer.PathOptions{Separator: ":"})
	require.Equal(t, status.Success, stats.Status)

	assert.EqualValues(t, 2, stats.TotalEntries)
	assert.EqualValues(t, 1, stats.UniqueEntries)
	assert.EqualValues(t, 1, stats.DuplicateCount)

	m := envelopeOf(t, payload)
	assert.Equal(t, "MinorIssues", m["health"])
	issues, ok := m["issues"].([]any)
	require.True(t, ok)
	assert.Len(t, issues, 1)
}

func TestAnalyzePathValueCleanEmitsEmptyIssueList(t *testing.T) {
	payload, stats := AnalyzePathValue(t.TempDir(), analyzer.PathOptions{Separator: ":"})
	require.Equal(t, status.Success, stats.Status)

	m := envelopeOf(t, payload)
	issues, ok := m["issues"].([]any)
	require.True(t, ok, "issues must be [] rather than null")
	assert.Empty(t, issues)
}

func TestAnalyzePathScopes(t *testing.T) {
	shared := t.TempDir()
	payload, stats := AnalyzePathScopes(shared, shared, analyzer.PathOptions{Separator: ":"})
	require.Equal(t, status.Success, stats.Status)
	assert.EqualValues(t, 1, stats.CrossDuplicateCount)

	m := envelopeOf(t, payload)
	assert.Equal(t, "NeedsAttention", m["health"])
}

func TestSearchLogsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.log"), []byte("ok\nERROR boom\nok\n"), 0o644))

	payload, stats := SearchLogs(context.Background(), dir, "ERROR", "", true, 1, 0)
	require.Equal(t, status.Success, stats.Status)
	assert.EqualValues(t, 1, stats.FilesSearched)
	assert.EqualValues(t, 1, stats.FilesWithMatches)
	assert.EqualValues(t, 1, stats.TotalMatches)

	m := envelopeOf(t, payload)
	files, ok := m["files"].([]any)
	require.True(t, ok)
	assert.Len(t, files, 1)
}

func TestSearchLogsFailureHasNilPayload(t *testing.T) {
	payload, stats := SearchLogs(context.Background(), t.TempDir(), "(bad", "", false, 0, 0)
	assert.Nil(t, payload)
	assert.Equal(t, status.InvalidArgument, stats.Status)
	assert.Zero(t, stats.ElapsedMs)
}
