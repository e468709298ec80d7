// Package report aggregates per-tuple outcomes into case and run summaries
package report

import (
	"time"

	"github.com/google/uuid"

	"paramrun/internal/domain"
)

// Summarize counts outcomes and collects failed and errored tuples in order
func Summarize(results []domain.TestResult) domain.Summary {
	s := domain.Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case domain.StatusPass:
			s.Passed++
		case domain.StatusFail:
			s.Failed++
			s.Failures = append(s.Failures, r)
		default:
			s.Errored++
			s.Failures = append(s.Failures, r)
		}
	}
	return s
}

// Failures flattens the failing tuples of every case, plus one entry for
// every case that could not be built
func Failures(cases []domain.CaseResult) []domain.TestFailure {
	var out []domain.TestFailure
	for _, c := range cases {
		if c.Err != nil {
			out = append(out, domain.TestFailure{
				CaseName: c.Name,
				Source:   c.Source,
				Index:    -1,
				Status:   domain.StatusError,
				Message:  c.Err.Error(),
			})
			continue
		}
		for _, f := range c.Summary.Failures {
			out = append(out, domain.TestFailure{
				CaseName: c.Name,
				Source:   c.Source,
				Index:    f.Index,
				Input:    f.Tuple.String(),
				Status:   f.Status,
				Message:  f.Message,
			})
		}
	}
	return out
}

// BuildOutput assembles the persisted document of a run
func BuildOutput(cases []domain.CaseResult, duration time.Duration, workers int) *domain.RunOutput {
	meta := domain.RunMeta{
		RunID:           uuid.NewString(),
		TotalCases:      len(cases),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, c := range cases {
		switch {
		case c.Skipped:
			meta.SkippedCases++
		case c.Failed():
			meta.FailedCases++
		default:
			meta.PassedCases++
		}
		meta.Invocations += c.Summary.Total
		meta.Passed += c.Summary.Passed
		meta.Failed += c.Summary.Failed
		meta.Errored += c.Summary.Errored
	}

	details := Failures(cases)
	if details == nil {
		details = []domain.TestFailure{}
	}
	return &domain.RunOutput{Meta: meta, Details: details}
}

// AnyFailed reports whether any case failed
func AnyFailed(cases []domain.CaseResult) bool {
	for _, c := range cases {
		if c.Failed() {
			return true
		}
	}
	return false
}
