package discovery

import (
	"path/filepath"
	"strings"

	"paramrun/internal/suite"
)

// Filter selects registered cases by name
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps entries whose full name (suite/case) or case name
// matches pattern. Supports patterns like "demo/*" or "*blank*"; a pattern
// without wildcards is a substring match.
func (f *Filter) FilterByName(entries []suite.Entry, pattern string) []suite.Entry {
	if pattern == "" {
		return entries
	}

	var filtered []suite.Entry
	for _, e := range entries {
		if Match(pattern, e.FullName()) || Match(pattern, e.Name) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByNames keeps entries whose full name is listed, in entry order
func (f *Filter) FilterByNames(entries []suite.Entry, names []string) []suite.Entry {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var filtered []suite.Entry
	for _, e := range entries {
		if want[e.FullName()] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Match reports whether name matches a wildcard pattern
func Match(pattern, name string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Fall back to an ordered substring match for patterns like "*blank*"
	rest := name
	anchored := !strings.HasPrefix(pattern, "*")
	hasPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		i := strings.Index(rest, part)
		if i < 0 || (anchored && !hasPart && i != 0) {
			return false
		}
		rest = rest[i+len(part):]
		hasPart = true
	}
	if hasPart && !strings.HasSuffix(pattern, "*") {
		return strings.HasSuffix(name, lastPart(pattern))
	}
	return hasPart
}

func lastPart(pattern string) string {
	parts := strings.Split(pattern, "*")
	return parts[len(parts)-1]
}
