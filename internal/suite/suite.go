// Package suite registers named test cases explicitly: each entry pairs a
// test function with a source built from its spec.
package suite

import (
	"paramrun/internal/domain"
	"paramrun/internal/engine"
	"paramrun/internal/source"
)

// Entry is one registered case. Case is nil when Err is set.
type Entry struct {
	Suite  string
	Name   string
	Source string
	Case   *engine.TestCase
	Err    error
}

// FullName returns suite/name
func (e Entry) FullName() string {
	if e.Suite == "" {
		return e.Name
	}
	return e.Suite + "/" + e.Name
}

// Info describes the entry without running it
func (e Entry) Info() domain.CaseInfo {
	info := domain.CaseInfo{
		Name:   e.Name,
		Suite:  e.Suite,
		Source: e.Source,
		Err:    e.Err,
	}
	if e.Case != nil {
		info.Arity = e.Case.Func.Arity()
		tuples, err := source.Drain(e.Case.Source)
		if err != nil && info.Err == nil {
			info.Err = err
		}
		info.Tuples = tuples
	}
	return info
}

// Suite is an ordered collection of entries sharing one Env
type Suite struct {
	Name    string
	env     source.Env
	entries []Entry
}

// New creates an empty suite
func New(name string, env source.Env) *Suite {
	return &Suite{Name: name, env: env}
}

// Add builds spec and registers the case. Construction failures are kept on
// the entry so the case is reported without running any tuple.
func (s *Suite) Add(name string, fn engine.TestFunc, spec source.Spec) {
	entry := Entry{Suite: s.Name, Name: name}
	src, err := spec.Build(s.env)
	if err != nil {
		entry.Err = err
		s.entries = append(s.entries, entry)
		return
	}
	entry.Source = src.Describe()
	entry.Case, entry.Err = engine.NewTestCase(name, fn, src)
	s.entries = append(s.entries, entry)
}

// AddError registers a case that failed before its source could be built
func (s *Suite) AddError(name string, err error) {
	s.entries = append(s.entries, Entry{Suite: s.Name, Name: name, Err: err})
}

// Entries returns the entries in registration order
func (s *Suite) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Flatten concatenates the entries of several suites
func Flatten(suites ...*Suite) []Entry {
	var out []Entry
	for _, s := range suites {
		out = append(out, s.entries...)
	}
	return out
}
