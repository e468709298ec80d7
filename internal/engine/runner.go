package engine

import (
	"time"

	"github.com/pkg/errors"

	"paramrun/internal/assert"
	"paramrun/internal/domain"
	"paramrun/internal/logger"
)

// Runner executes the tuples of a test case one after another
type Runner struct {
	log *logger.Logger
}

// NewRunner creates a new Runner
func NewRunner(log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{log: log}
}

// Run invokes the test function once per tuple in source order. A failing
// or erroring tuple never stops the remaining ones. If the source itself
// panics, iteration stops and one error result is appended for it.
func (r *Runner) Run(tc *TestCase) (results []domain.TestResult) {
	results = make([]domain.TestResult, 0, tc.Size())
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.Errorf("parameter source %s panicked: %v", tc.Source.Describe(), rec)
			r.log.Warn().Stack().Err(err).Str("case", tc.Name).Msg("source iteration aborted")
			results = append(results, domain.TestResult{
				Index:   len(results),
				Status:  domain.StatusError,
				Message: err.Error(),
			})
		}
	}()

	index := 0
	for tuple := range tc.Source.Tuples() {
		start := time.Now()
		status, message := r.invoke(tc.Func, tuple)
		result := domain.TestResult{
			Index:    index,
			Tuple:    tuple,
			Status:   status,
			Message:  message,
			Duration: time.Since(start),
		}
		results = append(results, result)

		r.log.Debug().
			Str("case", tc.Name).
			Int("index", index).
			Str("tuple", tuple.String()).
			Stringer("status", status).
			Dur("took", result.Duration).
			Msg("invocation finished")
		index++
	}
	return results
}

// invoke classifies the outcome of one call
func (r *Runner) invoke(fn TestFunc, tuple domain.Tuple) (status domain.Status, message string) {
	defer func() {
		if rec := recover(); rec != nil {
			err := errors.Errorf("panic: %v", rec)
			r.log.Warn().Stack().Err(err).Str("tuple", tuple.String()).Msg("test function panicked")
			status, message = domain.StatusError, err.Error()
		}
	}()

	err := fn.invoke(tuple)
	if err == nil {
		return domain.StatusPass, ""
	}
	if f, ok := assert.AsFailure(err); ok {
		return domain.StatusFail, f.Error()
	}
	return domain.StatusError, err.Error()
}
