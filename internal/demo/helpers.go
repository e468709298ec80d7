package demo

import (
	"strings"
	"time"

	"paramrun/internal/domain"
	"paramrun/internal/source"
)

// IsOdd reports whether n is odd
func IsOdd(n int) bool {
	return n%2 != 0
}

// IsBlank reports whether s is null, empty or whitespace only
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// Month is the calendar month enumeration, JANUARY first
var Month = source.Enum{
	Name: "Month",
	Constants: []string{
		"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
		"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER",
	},
}

// MonthValue returns 1 for JANUARY through 12 for DECEMBER
func MonthValue(m domain.EnumConst) int {
	return m.Ordinal + 1
}

// MonthLength returns the number of days of m
func MonthLength(m domain.EnumConst, leapYear bool) int {
	year := 2023
	if leapYear {
		year = 2024
	}
	// day 0 of the following month is the last day of m
	return time.Date(year, time.Month(MonthValue(m)+1), 0, 0, 0, 0, 0, time.UTC).Day()
}
