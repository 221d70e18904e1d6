// Package pathmatch centralises glob compilation and root-path validation
// for the scanning engines, so every engine rejects bad patterns and missing
// roots the same way.
package pathmatch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/probekit/probekit/pkg/probekit/status"
)

// Matcher matches a file against a compiled glob. The pattern is tried
// against both the base name and the root-relative slash path, so "*.txt"
// and "logs/**/*.txt" both behave the way callers expect.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// Compile compiles one glob pattern. A malformed pattern is a caller error,
// reported as InvalidArgument rather than an internal failure.
func Compile(pattern string) (Matcher, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return Matcher{}, status.Errorf(status.InvalidArgument, "invalid glob pattern "+pattern)
	}
	return Matcher{pattern: pattern, g: g}, nil
}

// CompileAll compiles a pattern list, skipping empty strings.
func CompileAll(patterns []string) ([]Matcher, error) {
	matchers := make([]Matcher, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		m, err := Compile(p)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// Match reports whether the entry matches, given its absolute path and the
// scan root.
func (m Matcher) Match(root, path string) bool {
	if m.g.Match(filepath.Base(path)) {
		return true
	}
	return m.g.Match(RelSlash(root, path))
}

// Pattern returns the source pattern, for logging.
func (m Matcher) Pattern() string { return m.pattern }

// Allowed applies include/exclude matcher lists to a path. Exclusion wins;
// an empty include list admits everything.
func Allowed(root, path string, include, exclude []Matcher) bool {
	for _, m := range exclude {
		if m.Match(root, path) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, m := range include {
		if m.Match(root, path) {
			return true
		}
	}
	return false
}

// RelSlash returns the slash-separated path of target relative to root, or
// the base name when target is outside root.
func RelSlash(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(target)
	}
	return filepath.ToSlash(rel)
}

// ResolveRoot resolves a scan root to an absolute path and verifies it is an
// existing directory. A missing root maps to PathNotFound, anything that
// exists but is not a directory to InvalidArgument.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		return "", status.Errorf(status.InvalidArgument, "empty root path")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", status.Errorf(status.InvalidArgument, abs+" is not a directory")
	}
	return abs, nil
}
