package domain

import (
	"fmt"
	"time"
)

// Status is the outcome of one invocation
type Status uint8

const (
	// StatusPass means the function returned without a failure
	StatusPass Status = iota
	// StatusFail means an assertion did not hold
	StatusFail
	// StatusError means any other error or a panic
	StatusError
)

// String returns pass, fail or error
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a status name
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pass":
		*s = StatusPass
	case "fail":
		*s = StatusFail
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown status %q", b)
	}
	return nil
}

// TestResult is the outcome of invoking a test function with one tuple
type TestResult struct {
	Index    int           // position of the tuple in its source
	Tuple    Tuple         // arguments that were passed
	Status   Status        // pass, fail or error
	Message  string        // failure or error message, empty on pass
	Duration time.Duration // time spent in the function
}

// Summary aggregates the results of one test case
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Errored  int
	Failures []TestResult // failed and errored results in source order
}

// HasFailures reports whether any tuple failed or errored
func (s Summary) HasFailures() bool {
	return s.Failed > 0 || s.Errored > 0
}

// CaseResult is everything recorded for one registered test case
type CaseResult struct {
	Name     string
	Source   string // source description
	Results  []TestResult
	Summary  Summary
	Err      error // construction error; no tuple ran when set
	Skipped  bool  // not started because of fail-fast
	Duration time.Duration
}

// Failed reports whether the case as a whole failed
func (c CaseResult) Failed() bool {
	return c.Err != nil || c.Summary.HasFailures()
}

// RunMeta contains metadata about a run
type RunMeta struct {
	RunID           string  `json:"run_id"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	SkippedCases    int     `json:"skipped_cases"`
	Invocations     int     `json:"invocations"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	Errored         int     `json:"errored"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the persisted document of a run
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}

// FailedCaseNames returns the distinct case names listed in Details, in order
func (o *RunOutput) FailedCaseNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range o.Details {
		if seen[d.CaseName] {
			continue
		}
		seen[d.CaseName] = true
		names = append(names, d.CaseName)
	}
	return names
}
