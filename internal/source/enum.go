package source

import (
	"fmt"
	"regexp"
	"strings"

	"paramrun/internal/domain"
)

// Mode selects how EnumFilter names are applied
type Mode string

const (
	// Include keeps the named constants; no names keeps all
	Include Mode = "INCLUDE"
	// Exclude drops the named constants
	Exclude Mode = "EXCLUDE"
	// MatchAny keeps constants whose name fully matches at least one pattern
	MatchAny Mode = "MATCH_ANY"
	// MatchAll keeps constants whose name fully matches every pattern
	MatchAll Mode = "MATCH_ALL"
)

// ParseMode accepts a mode name in any case
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case Include, Exclude, MatchAny, MatchAll:
		return m, nil
	case "":
		return Include, nil
	default:
		return "", fmt.Errorf("unknown enum mode %q", s)
	}
}

// EnumFilter enumerates every constant of an enumeration and keeps those
// accepted by Mode. Declaration order is preserved.
type EnumFilter struct {
	Type  string // looked up in Env.Enums when Enum is empty
	Enum  *Enum
	Names []string // constant names or patterns, depending on Mode
	Mode  Mode     // defaults to Include
}

// Build implements Spec
func (f EnumFilter) Build(env Env) (Source, error) {
	enum, err := f.resolve(env)
	if err != nil {
		return nil, err
	}
	desc := f.describe(enum.Name)

	mode := f.Mode
	if mode == "" {
		mode = Include
	}

	keep, err := f.predicate(enum, mode, desc)
	if err != nil {
		return nil, err
	}

	var tuples []domain.Tuple
	for _, v := range enum.Values() {
		c, _ := domain.As[domain.EnumConst](v)
		if keep(c.Name) {
			tuples = append(tuples, domain.NewTuple(v))
		}
	}
	return NewList(desc, tuples), nil
}

func (f EnumFilter) resolve(env Env) (Enum, error) {
	if f.Enum != nil {
		return *f.Enum, nil
	}
	enum, ok := env.Enums[f.Type]
	if !ok {
		return Enum{}, domain.LookupErrorf(f.describe(f.Type), "enum %q is not registered", f.Type)
	}
	return enum, nil
}

func (f EnumFilter) describe(name string) string {
	mode := f.Mode
	if mode == "" {
		mode = Include
	}
	if len(f.Names) == 0 {
		return fmt.Sprintf("enum(%s)", name)
	}
	return fmt.Sprintf("enum(%s %s %s)", name, mode, strings.Join(f.Names, ","))
}

func (f EnumFilter) predicate(enum Enum, mode Mode, desc string) (func(string) bool, error) {
	switch mode {
	case Include, Exclude:
		known := make(map[string]bool, len(enum.Constants))
		for _, c := range enum.Constants {
			known[c] = true
		}
		named := make(map[string]bool, len(f.Names))
		var unknown []string
		for _, n := range f.Names {
			if !known[n] {
				unknown = append(unknown, n)
			}
			named[n] = true
		}
		if len(unknown) > 0 {
			return nil, domain.LookupErrorf(desc, "invalid enum constant name(s): %s", strings.Join(unknown, ", "))
		}
		if mode == Include {
			if len(f.Names) == 0 {
				return func(string) bool { return true }, nil
			}
			return func(name string) bool { return named[name] }, nil
		}
		return func(name string) bool { return !named[name] }, nil

	case MatchAny, MatchAll:
		if len(f.Names) == 0 {
			return nil, domain.FormatErrorf(desc, "mode %s requires at least one pattern", mode)
		}
		patterns := make([]*regexp.Regexp, len(f.Names))
		for i, p := range f.Names {
			re, err := regexp.Compile(`^(?:` + p + `)$`)
			if err != nil {
				return nil, &domain.SourceError{Kind: domain.ErrFormat, Source: desc, Msg: "invalid pattern", Err: err}
			}
			patterns[i] = re
		}
		if mode == MatchAny {
			return func(name string) bool {
				for _, re := range patterns {
					if re.MatchString(name) {
						return true
					}
				}
				return false
			}, nil
		}
		return func(name string) bool {
			for _, re := range patterns {
				if !re.MatchString(name) {
					return false
				}
			}
			return true
		}, nil

	default:
		return nil, domain.FormatErrorf(desc, "unknown mode %q", mode)
	}
}
