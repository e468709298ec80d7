package domain

import (
	"errors"
	"fmt"
)

// Source construction errors. They abort a test case before any tuple runs.
var (
	// ErrFormat is a malformed row, field-count mismatch, bad pattern or inconsistent tuple shape
	ErrFormat = errors.New("format error")
	// ErrIO is a missing or unreadable external resource
	ErrIO = errors.New("io error")
	// ErrLookup is a named provider, enum, constant or test function that does not exist
	ErrLookup = errors.New("lookup error")
)

// SourceError carries one of ErrFormat, ErrIO or ErrLookup together with
// the source that failed and an optional cause
type SourceError struct {
	Kind   error
	Source string
	Msg    string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Source)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the kind sentinel
func (e *SourceError) Is(target error) bool { return target == e.Kind }

// Unwrap returns the cause, if any
func (e *SourceError) Unwrap() error { return e.Err }

// FormatErrorf builds an ErrFormat SourceError
func FormatErrorf(source, format string, args ...any) *SourceError {
	return &SourceError{Kind: ErrFormat, Source: source, Msg: fmt.Sprintf(format, args...)}
}

// LookupErrorf builds an ErrLookup SourceError
func LookupErrorf(source, format string, args ...any) *SourceError {
	return &SourceError{Kind: ErrLookup, Source: source, Msg: fmt.Sprintf(format, args...)}
}

// IOError builds an ErrIO SourceError wrapping cause
func IOError(source string, cause error) *SourceError {
	return &SourceError{Kind: ErrIO, Source: source, Err: cause}
}
