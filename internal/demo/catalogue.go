// Package demo is the built-in catalogue: small predicates and the
// parameterized cases that exercise every kind of parameter source.
package demo

import (
	"embed"
	"io/fs"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"paramrun/internal/assert"
	"paramrun/internal/domain"
	"paramrun/internal/engine"
	"paramrun/internal/source"
	"paramrun/internal/suite"
)

// SuiteName is the name of the built-in suite
const SuiteName = "demo"

// ProviderStringsForIsBlank is the registry name of the blank-string provider
const ProviderStringsForIsBlank = "provideStringsForIsBlank"

//go:embed testdata/testinput.csv
var embedded embed.FS

// Resources returns the resource root of the built-in suite
func Resources() fs.FS {
	sub, err := fs.Sub(embedded, "testdata")
	if err != nil {
		panic(err)
	}
	return sub
}

// Registered test function names, usable from suite files
const (
	TestIsOdd            = "is_odd"
	TestIsBlank          = "is_blank"
	TestIsBlankEquals    = "is_blank_equals"
	TestMonthInRange     = "month_value_in_range"
	TestMonthHas31Days   = "month_has_31_days"
	TestMonthEndsWithBer = "month_ends_with_ber"
	TestToUpperCase      = "to_upper_case"
	TestToLowerCase      = "to_lower_case"
)

// Register adds the demo test functions, providers and enumerations
func Register(reg *suite.Registry) {
	reg.RegisterEnum(Month)
	reg.RegisterProvider(ProviderStringsForIsBlank, provideStringsForIsBlank)

	reg.RegisterTest(TestIsOdd, engine.Unary(func(n int) error {
		return assert.True(IsOdd(n), "IsOdd(%d)", n)
	}))
	reg.RegisterTest(TestIsBlank, engine.Unary(func(s *string) error {
		return assert.True(IsBlank(s), "IsBlank")
	}))
	reg.RegisterTest(TestIsBlankEquals, engine.Binary(func(s *string, expected bool) error {
		return assert.Equal(expected, IsBlank(s), "IsBlank")
	}))
	reg.RegisterTest(TestMonthInRange, engine.Unary(func(m domain.EnumConst) error {
		v := MonthValue(m)
		return assert.True(v >= 1 && v <= 12, "value of %s", m.Name)
	}))
	reg.RegisterTest(TestMonthHas31Days, engine.Unary(func(m domain.EnumConst) error {
		const isALeapYear = false
		return assert.Equal(31, MonthLength(m, isALeapYear), "length of %s", m.Name)
	}))
	reg.RegisterTest(TestMonthEndsWithBer, engine.Unary(func(m domain.EnumConst) error {
		months := []string{"SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER"}
		return assert.Contains(months, m.Name)
	}))
	reg.RegisterTest(TestToUpperCase, engine.Binary(func(input, expected string) error {
		// Casers are stateful; one per call
		return assert.Equal(expected, cases.Upper(language.Und).String(input))
	}))
	reg.RegisterTest(TestToLowerCase, engine.Binary(func(input, expected string) error {
		return assert.Equal(expected, cases.Lower(language.Und).String(input))
	}))
}

func provideStringsForIsBlank() []domain.Tuple {
	return []domain.Tuple{
		{domain.Null(), domain.Bool(true)},
		{domain.Text(""), domain.Bool(true)},
		{domain.Text("  "), domain.Bool(true)},
		{domain.Text("not blank"), domain.Bool(false)},
	}
}

// NewRegistry returns a registry holding the demo catalogue
func NewRegistry() *suite.Registry {
	reg := suite.NewRegistry()
	Register(reg)
	return reg
}

// Suite builds the built-in suite against reg, which must hold the demo
// catalogue. Resources come from the embedded testdata.
func Suite(reg *suite.Registry) *suite.Suite {
	s := suite.New(SuiteName, reg.Env(Resources()))
	add := func(name, test string, spec source.Spec) {
		fn, err := reg.Test(test)
		if err != nil {
			s.AddError(name, err)
			return
		}
		s.Add(name, fn, spec)
	}

	add("is_odd_should_return_true_for_odd_numbers", TestIsOdd,
		source.Ints(1, 3, 5, -3, 15, math.MaxInt32))
	add("is_blank_should_return_true_for_empty_or_blank_strings", TestIsBlank,
		source.Strings("", "  "))
	add("is_blank_should_return_true_for_null_strings", TestIsBlank,
		source.Null{})
	add("is_blank_should_return_true_for_all_types_of_blank_strings", TestIsBlank,
		source.Concat{source.NullAndEmpty{}, source.Strings("  ", "\t", "\n")})

	add("month_value_is_always_between_one_and_twelve", TestMonthInRange,
		source.EnumFilter{Type: Month.Name})
	add("except_four_months_others_are_31_days_long", TestMonthHas31Days,
		source.EnumFilter{
			Type:  Month.Name,
			Names: []string{"APRIL", "JUNE", "SEPTEMBER", "NOVEMBER", "FEBRUARY"},
			Mode:  source.Exclude,
		})
	add("four_months_are_ending_with_ber", TestMonthEndsWithBer,
		source.EnumFilter{Type: Month.Name, Names: []string{".+BER"}, Mode: source.MatchAny})

	add("to_upper_case_should_generate_the_expected_uppercase_value", TestToUpperCase,
		source.CSV{Rows: []string{"test,TEST", "tEst,TEST", "Java,JAVA"}})
	add("to_lower_case_should_generate_the_expected_lowercase_value", TestToLowerCase,
		source.CSV{Rows: []string{"test:test", "tEst:test", "Java:java"}, Delimiter: ":"})
	add("to_upper_case_should_generate_the_expected_uppercase_value_csv_file", TestToUpperCase,
		source.CSVFile{Resources: []string{"/testinput.csv"}, NumLinesToSkip: 1})

	add("is_blank_should_return_true_for_null_or_blank_strings", TestIsBlankEquals,
		source.Method{Name: ProviderStringsForIsBlank})
	return s
}
