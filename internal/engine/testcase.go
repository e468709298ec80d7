package engine

import (
	"paramrun/internal/domain"
	"paramrun/internal/source"
)

// TestCase binds a test function to its parameter source
type TestCase struct {
	Name   string
	Func   TestFunc
	Source source.Source
	size   int
}

// NewTestCase checks that every tuple of src matches the arity of fn and
// that tuple shapes agree position by position. Violations are format
// errors and no tuple of the case will run. A source that panics while
// being counted is an io error.
func NewTestCase(name string, fn TestFunc, src source.Source) (*TestCase, error) {
	if !fn.Valid() {
		return nil, domain.LookupErrorf("test("+name+")", "no test function")
	}
	if src == nil {
		return nil, domain.FormatErrorf("case("+name+")", "no parameter source")
	}

	tuples, err := source.Drain(src)
	if err != nil {
		return nil, err
	}

	desc := src.Describe()
	var shape []domain.Kind
	size := 0
	for _, tuple := range tuples {
		if tuple.Arity() != fn.Arity() {
			return nil, domain.FormatErrorf(desc, "tuple %d %s has %d values, test function takes %d",
				size, tuple, tuple.Arity(), fn.Arity())
		}
		if shape == nil {
			shape = tuple.Shape()
		} else if next := tuple.Shape(); domain.Compatible(shape, next) {
			shape = domain.Merge(shape, next)
		} else {
			return nil, domain.FormatErrorf(desc, "tuple %d %s has types %v, earlier tuples have %v",
				size, tuple, next, shape)
		}
		size++
	}

	return &TestCase{Name: name, Func: fn, Source: src, size: size}, nil
}

// Size returns the number of tuples counted at construction
func (tc *TestCase) Size() int { return tc.size }
