// Package assert turns gomega matchers into explicit failure values that test
// functions return instead of aborting through panics.
package assert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

// Failure is an assertion that did not hold
type Failure struct {
	Description string
	Expected    any
	Actual      any
	Message     string // matcher failure message, shows expected and actual
}

// Error implements the error interface
func (f *Failure) Error() string {
	if f.Description == "" {
		return f.Message
	}
	return f.Description + "\n" + f.Message
}

// AsFailure reports whether err is, or wraps, a Failure
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// That checks actual against matcher. A matcher that cannot evaluate its
// input returns a plain error, which the engine reports as unexpected.
func That(actual any, matcher types.GomegaMatcher, description ...any) error {
	ok, err := matcher.Match(actual)
	if err != nil {
		return fmt.Errorf("matcher error: %w", err)
	}
	if ok {
		return nil
	}
	return &Failure{
		Description: describe(description),
		Actual:      actual,
		Message:     matcher.FailureMessage(actual),
	}
}

// True checks that cond holds
func True(cond bool, description ...any) error {
	return That(cond, gomega.BeTrue(), description...)
}

// False checks that cond does not hold
func False(cond bool, description ...any) error {
	return That(cond, gomega.BeFalse(), description...)
}

// Equal checks that actual equals expected
func Equal(expected, actual any, description ...any) error {
	err := That(actual, gomega.Equal(expected), description...)
	if f, ok := AsFailure(err); ok {
		f.Expected = expected
	}
	return err
}

// Contains checks that element is in the collection
func Contains(collection, element any, description ...any) error {
	return That(collection, gomega.ContainElement(element), description...)
}

// First returns the first non-nil error, so several checks can be chained
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func describe(description []any) string {
	if len(description) == 0 {
		return ""
	}
	if format, ok := description[0].(string); ok && len(description) > 1 {
		return fmt.Sprintf(format, description[1:]...)
	}
	parts := make([]string, len(description))
	for i, d := range description {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, " ")
}
