package source

import (
	"fmt"
	"iter"
	"strings"

	"paramrun/internal/domain"
)

// Values is a literal list of scalars; each value becomes a one-element tuple.
// Ints come first, then Strings, Bools and raw Values.
type Values struct {
	Ints    []int64
	Strings []string
	Bools   []bool
	Values  []domain.Value
}

// Build implements Spec
func (v Values) Build(Env) (Source, error) {
	var tuples []domain.Tuple
	for _, n := range v.Ints {
		tuples = append(tuples, domain.NewTuple(domain.Int(n)))
	}
	for _, s := range v.Strings {
		tuples = append(tuples, domain.NewTuple(domain.Text(s)))
	}
	for _, b := range v.Bools {
		tuples = append(tuples, domain.NewTuple(domain.Bool(b)))
	}
	for _, val := range v.Values {
		tuples = append(tuples, domain.NewTuple(val))
	}
	return NewList(fmt.Sprintf("values(%d)", len(tuples)), tuples), nil
}

// Ints is shorthand for Values{Ints: ...}
func Ints(ns ...int64) Values { return Values{Ints: ns} }

// Strings is shorthand for Values{Strings: ...}
func Strings(ss ...string) Values { return Values{Strings: ss} }

// Literal is a fixed list of tuples
type Literal struct {
	Tuples []domain.Tuple
}

// Build implements Spec
func (l Literal) Build(Env) (Source, error) {
	return NewList(fmt.Sprintf("tuples(%d)", len(l.Tuples)), l.Tuples), nil
}

// Null yields a single tuple holding the null marker
type Null struct{}

// Build implements Spec
func (Null) Build(Env) (Source, error) {
	return NewList("null", []domain.Tuple{{domain.Null()}}), nil
}

// Empty yields a single tuple holding empty text
type Empty struct{}

// Build implements Spec
func (Empty) Build(Env) (Source, error) {
	return NewList("empty", []domain.Tuple{{domain.Text("")}}), nil
}

// NullAndEmpty yields the null marker followed by empty text
type NullAndEmpty struct{}

// Build implements Spec
func (NullAndEmpty) Build(Env) (Source, error) {
	return NewList("null_and_empty", []domain.Tuple{{domain.Null()}, {domain.Text("")}}), nil
}

// Concat joins specs in declaration order
type Concat []Spec

// Build implements Spec. The first failing part aborts the whole concatenation.
func (c Concat) Build(env Env) (Source, error) {
	parts := make([]Source, 0, len(c))
	for _, spec := range c {
		src, err := spec.Build(env)
		if err != nil {
			return nil, err
		}
		parts = append(parts, src)
	}
	return &concat{parts: parts}, nil
}

type concat struct {
	parts []Source
}

func (c *concat) Tuples() iter.Seq[domain.Tuple] {
	return func(yield func(domain.Tuple) bool) {
		for _, p := range c.parts {
			for t := range p.Tuples() {
				if !yield(t) {
					return
				}
			}
		}
	}
}

func (c *concat) Describe() string {
	descs := make([]string, len(c.parts))
	for i, p := range c.parts {
		descs[i] = p.Describe()
	}
	return strings.Join(descs, " + ")
}
