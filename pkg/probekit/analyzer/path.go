// Package analyzer implements the PATH-variable auditor and the log
// searcher. Both are pure inspection passes: nothing here mutates the
// environment or the filesystem.
package analyzer

import (
	"os"
	"regexp"
	"strings"

	"github.com/probekit/probekit/pkg/probekit/logging"
	"github.com/probekit/probekit/pkg/probekit/types"
)

// Issue reasons emitted for PATH entries.
const (
	ReasonEmpty         = "empty"
	ReasonDuplicate     = "duplicate"
	ReasonNonExistent   = "non-existent"
	ReasonTrailingSlash = "trailing-slash"
)

// Health classifications for a PATH audit.
const (
	HealthHealthy        = "Healthy"
	HealthMinorIssues    = "MinorIssues"
	HealthNeedsAttention = "NeedsAttention"
)

// DefaultMaxNonExistent is the non-existent entry count above which the
// audit escalates from MinorIssues to NeedsAttention.
const DefaultMaxNonExistent = 5

// PathOptions configures a PATH audit.
type PathOptions struct {
	// Separator splits the raw value into entries. Defaults to the
	// platform list separator (";" on Windows, ":" elsewhere).
	Separator string

	// MaxNonExistent overrides the NeedsAttention threshold. Non-positive
	// values keep DefaultMaxNonExistent.
	MaxNonExistent int
}

// Validate applies defaults for unset values.
func (o *PathOptions) Validate() error {
	if o.Separator == "" {
		o.Separator = string(os.PathListSeparator)
	}
	if o.MaxNonExistent <= 0 {
		o.MaxNonExistent = DefaultMaxNonExistent
	}
	return nil
}

// PathAnalysis is the outcome of a PATH audit across one or two scopes.
type PathAnalysis struct {
	TotalEntries        uint64
	UniqueEntries       uint64
	DuplicateCount      uint64
	NonExistentCount    uint64
	EmptyCount          uint64
	TrailingSlashCount  uint64
	CrossDuplicateCount uint64

	Issues          []types.PathIssue
	CrossDuplicates []types.CrossDuplicate
	Health          string
}

// pathEntry is one parsed PATH element.
type pathEntry struct {
	index int
	raw   string
	norm  string
}

// AnalyzeValue audits a single-scope PATH value.
func AnalyzeValue(value string, opts PathOptions) *PathAnalysis {
	_ = opts.Validate()

	a := &PathAnalysis{}
	a.auditScope(value, opts)
	a.classify(opts)

	logging.Get("analyzer").Debug("path audit complete",
		"entries", a.TotalEntries,
		"issues", len(a.Issues),
		"health", a.Health)
	return a
}

// AnalyzeScopes audits the user and machine PATH values together. In
// addition to the per-scope issues, entries present in both scopes after
// normalization are reported as cross-duplicates with a recommendation to
// remove them from the narrower (user) scope.
func AnalyzeScopes(userValue, machineValue string, opts PathOptions) *PathAnalysis {
	_ = opts.Validate()

	a := &PathAnalysis{}
	userEntries := a.auditScope(userValue, opts)
	machineEntries := a.auditScope(machineValue, opts)

	machineByNorm := make(map[string]pathEntry, len(machineEntries))
	for _, e := range machineEntries {
		if _, ok := machineByNorm[e.norm]; !ok {
			machineByNorm[e.norm] = e
		}
	}

	seen := make(map[string]bool)
	for _, ue := range userEntries {
		me, ok := machineByNorm[ue.norm]
		if !ok || seen[ue.norm] {
			continue
		}
		seen[ue.norm] = true
		a.CrossDuplicates = append(a.CrossDuplicates, types.CrossDuplicate{
			Value:          ue.raw,
			UserIndex:      ue.index,
			MachineIndex:   me.index,
			Recommendation: "remove " + ue.raw + " from the user scope; the machine scope already provides it",
		})
	}
	a.CrossDuplicateCount = uint64(len(a.CrossDuplicates))

	a.classify(opts)
	return a
}

// auditScope parses one raw value, accumulates counters and issues on the
// receiver, and returns the non-empty entries for cross-scope comparison.
func (a *PathAnalysis) auditScope(value string, opts PathOptions) []pathEntry {
	if value == "" {
		return nil
	}

	var (
		entries []pathEntry
		seen    = make(map[string]bool)
	)

	for i, raw := range strings.Split(value, opts.Separator) {
		a.TotalEntries++
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" {
			a.EmptyCount++
			a.Issues = append(a.Issues, types.PathIssue{Index: i, Value: raw, Reason: ReasonEmpty})
			continue
		}

		expanded := expandVars(trimmed)
		norm := normalizeEntry(expanded)
		entries = append(entries, pathEntry{index: i, raw: trimmed, norm: norm})

		if hasTrailingSeparator(trimmed) {
			a.TrailingSlashCount++
			a.Issues = append(a.Issues, types.PathIssue{Index: i, Value: trimmed, Reason: ReasonTrailingSlash})
		}

		if seen[norm] {
			a.DuplicateCount++
			a.Issues = append(a.Issues, types.PathIssue{Index: i, Value: trimmed, Reason: ReasonDuplicate})
		} else {
			seen[norm] = true
			a.UniqueEntries++
		}

		if _, err := os.Stat(expanded); err != nil {
			a.NonExistentCount++
			a.Issues = append(a.Issues, types.PathIssue{Index: i, Value: trimmed, Reason: ReasonNonExistent})
		}
	}
	return entries
}

// classify derives the health rating from the accumulated counters.
// Trailing separators alone never degrade health.
func (a *PathAnalysis) classify(opts PathOptions) {
	switch {
	case a.CrossDuplicateCount > 0 || a.NonExistentCount > uint64(opts.MaxNonExistent):
		a.Health = HealthNeedsAttention
	case a.DuplicateCount > 0 || a.NonExistentCount > 0 || a.EmptyCount > 0:
		a.Health = HealthMinorIssues
	default:
		a.Health = HealthHealthy
	}
}

// Environment reference forms accepted in PATH entries.
var (
	percentVar = regexp.MustCompile(`%([^%]+)%`)
	dollarVar  = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandVars substitutes %NAME%, $NAME and ${NAME} references from the
// environment. Unknown references stay literal the way the Windows shell
// leaves unset %NAME%; silently blanking them would turn a typo into a
// phantom non-existent entry.
func expandVars(s string) string {
	s = percentVar.ReplaceAllStringFunc(s, func(ref string) string {
		if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
			return v
		}
		return ref
	})
	return dollarVar.ReplaceAllStringFunc(s, func(ref string) string {
		name := strings.TrimPrefix(ref, "$")
		name = strings.TrimPrefix(strings.TrimSuffix(name, "}"), "{")
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}

// normalizeEntry produces the comparison key for duplicate detection:
// case-insensitive with trailing separators removed.
func normalizeEntry(s string) string {
	return strings.ToLower(trimTrailingSeparators(s))
}

// hasTrailingSeparator reports whether the entry ends with a path separator
// without being a bare root like "/" or "C:\".
func hasTrailingSeparator(s string) bool {
	trimmed := trimTrailingSeparators(s)
	return trimmed != "" && trimmed != s && len(trimmed) > 2
}

// trimTrailingSeparators strips trailing slashes and backslashes.
func trimTrailingSeparators(s string) string {
	return strings.TrimRight(s, `\/`)
}
