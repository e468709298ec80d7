// Package source builds the parameter sources that feed argument tuples to
// test functions. A Spec describes a source; Build turns it into an
// immutable, restartable Source against an Env.
package source

import (
	"fmt"
	"io/fs"
	"iter"
	"slices"

	"paramrun/internal/domain"
)

// Source produces a finite, restartable sequence of tuples
type Source interface {
	// Tuples returns a fresh iterator on every call
	Tuples() iter.Seq[domain.Tuple]
	// Describe returns a short human readable description
	Describe() string
}

// Spec is the declaration of a source
type Spec interface {
	Build(env Env) (Source, error)
}

// Provider is a zero-argument function supplying tuples for a Method source
type Provider func() []domain.Tuple

// Enum is a closed, ordered set of named constants
type Enum struct {
	Name      string
	Constants []string
}

// Values returns every constant of the enumeration as a Value in declaration order
func (e Enum) Values() []domain.Value {
	out := make([]domain.Value, len(e.Constants))
	for i, c := range e.Constants {
		out[i] = domain.Enum(domain.EnumConst{Type: e.Name, Name: c, Ordinal: i})
	}
	return out
}

// Env carries what specs resolve against
type Env struct {
	Resources fs.FS               // root for CSVFile resources
	Providers map[string]Provider // providers for Method sources
	Enums     map[string]Enum     // enumerations for EnumFilter by name
}

// List is a source over a fixed, immutable slice of tuples
type List struct {
	desc   string
	tuples []domain.Tuple
}

// NewList copies tuples into a new List source
func NewList(desc string, tuples []domain.Tuple) *List {
	cp := make([]domain.Tuple, len(tuples))
	for i, t := range tuples {
		cp[i] = slices.Clone(t)
	}
	return &List{desc: desc, tuples: cp}
}

// Tuples yields a copy of each stored tuple so callers cannot mutate the source
func (l *List) Tuples() iter.Seq[domain.Tuple] {
	return func(yield func(domain.Tuple) bool) {
		for _, t := range l.tuples {
			if !yield(slices.Clone(t)) {
				return
			}
		}
	}
}

// Describe returns the description given at construction
func (l *List) Describe() string { return l.desc }

// Len returns the number of tuples
func (l *List) Len() int { return len(l.tuples) }

// Collect drains a source into a slice
func Collect(src Source) []domain.Tuple {
	return slices.Collect(src.Tuples())
}

// Drain collects every tuple of src. A panic raised while iterating, such as
// one from a Method provider, comes back as an ErrIO SourceError.
func Drain(src Source) (tuples []domain.Tuple, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tuples, err = nil, domain.IOError(src.Describe(), fmt.Errorf("panic: %v", rec))
		}
	}()
	return slices.Collect(src.Tuples()), nil
}
