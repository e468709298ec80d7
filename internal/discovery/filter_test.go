package discovery

import (
	"testing"

	"paramrun/internal/source"
	"paramrun/internal/suite"
)

func entries() []suite.Entry {
	var out []suite.Entry
	for _, name := range []string{"is_odd", "is_blank_strings", "is_blank_method", "month_length"} {
		s := suite.New("demo", source.Env{})
		s.AddError(name, nil)
		out = append(out, s.Entries()...)
	}
	other := suite.New("extra", source.Env{})
	other.AddError("is_odd", nil)
	return append(out, other.Entries()...)
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		pattern  string
		expected int // Expected number of matches
	}{
		{"empty pattern returns all", "", 5},
		{"exact full name", "demo/is_odd", 1},
		{"suite wildcard", "demo/*", 4},
		{"case name wildcard", "is_blank*", 2},
		{"substring wildcard", "*blank*", 2},
		{"simple contains match", "odd", 2},
		{"suffix wildcard", "*_method", 1},
		{"no match", "nothing*", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(entries(), tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d", tt.expected, len(result))
			}
		})
	}
}

func TestFilter_FilterByNames(t *testing.T) {
	filter := NewFilter()

	result := filter.FilterByNames(entries(), []string{"extra/is_odd", "demo/month_length", "demo/gone"})
	if len(result) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result))
	}
	if result[0].FullName() != "demo/month_length" || result[1].FullName() != "extra/is_odd" {
		t.Errorf("unexpected order: %s, %s", result[0].FullName(), result[1].FullName())
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"demo/*", "demo/is_odd", true},
		{"*odd", "demo/is_odd", true},
		{"is_*", "demo/is_odd", false},
		{"is_*", "is_odd", true},
		{"*is*odd*", "demo/is_odd", true},
		{"is_od?", "is_odd", true},
		{"month", "demo/month_length", true},
	}
	for _, tt := range tests {
		if got := Match(tt.pattern, tt.name); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
		}
	}
}
