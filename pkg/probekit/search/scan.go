package search

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"regexp"
)

// ErrBinary marks a file skipped because it does not look like text.
var ErrBinary = errors.New("binary file")

// sniffLen is how many leading bytes are inspected for a NUL byte when
// deciding whether a file is text.
const sniffLen = 8 * 1024

// maxLineLen bounds a single scanned line. Longer lines are split by the
// scanner; log and source files never get near this in practice.
const maxLineLen = 1024 * 1024

// LineMatch is one matching line in a file, with surrounding context.
type LineMatch struct {
	// Line is the 1-based line number.
	Line int

	// Text is the matching line without its trailing newline.
	Text string

	// Before and After hold up to the requested number of context lines.
	// They are shorter near the start and end of the file.
	Before []string
	After  []string

	// Count is the number of regex matches on this line. A line produces
	// one LineMatch regardless of how many times the pattern occurs in it.
	Count int
}

// ScanFile scans one file line by line and returns every matching line with
// contextLines lines of context on either side, plus the number of bytes
// read. Files with a NUL byte in their leading bytes return ErrBinary.
func ScanFile(path string, re *regexp.Regexp, contextLines int) ([]LineMatch, int64, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer fd.Close()

	reader := bufio.NewReaderSize(fd, 64*1024)
	if err := sniffText(reader); err != nil {
		return nil, 0, err
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineLen)

	var (
		matches   []LineMatch
		pending   []int // indices into matches still collecting After lines
		before    []string
		bytesRead int64
		lineNo    int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		bytesRead += int64(len(scanner.Bytes())) + 1

		// Feed this line to earlier matches still owed context.
		remaining := pending[:0]
		for _, idx := range pending {
			m := &matches[idx]
			m.After = append(m.After, line)
			if len(m.After) < contextLines {
				remaining = append(remaining, idx)
			}
		}
		pending = remaining

		if n := len(re.FindAllStringIndex(line, -1)); n > 0 {
			beforeCopy := make([]string, len(before))
			copy(beforeCopy, before)
			m := LineMatch{
				Line:   lineNo,
				Text:   line,
				Before: beforeCopy,
				After:  []string{},
				Count:  n,
			}
			matches = append(matches, m)
			if contextLines > 0 {
				pending = append(pending, len(matches)-1)
			}
		}

		if contextLines > 0 {
			before = append(before, line)
			if len(before) > contextLines {
				before = before[1:]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, bytesRead, err
	}
	return matches, bytesRead, nil
}

// sniffText peeks at the leading bytes and rejects content containing NUL.
func sniffText(reader *bufio.Reader) error {
	head, err := reader.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.IndexByte(head, 0) >= 0 {
		return ErrBinary
	}
	return nil
}
