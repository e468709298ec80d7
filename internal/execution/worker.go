package execution

import (
	"context"
	"sync"
	"time"

	"paramrun/internal/config"
	"paramrun/internal/domain"
	"paramrun/internal/engine"
	"paramrun/internal/logger"
	"paramrun/internal/report"
	"paramrun/internal/suite"
)

var _ Executor = (*WorkerPool)(nil)

// WorkerPool runs independent cases in parallel. The tuples of a single
// case always run serially on one worker.
type WorkerPool struct {
	config    *config.Config
	runner    *engine.Runner
	scheduler Scheduler
	progress  Progress
	log       *logger.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *engine.Runner, scheduler Scheduler, log *logger.Logger) *WorkerPool {
	if log == nil {
		log = logger.Nop()
	}
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		log:       log,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs every case (no fail-fast)
func (wp *WorkerPool) Execute(ctx context.Context, entries []suite.Entry) ([]domain.CaseResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, entries, false)
}

// ExecuteWithOptions runs the cases; with failFast no new case starts after
// the first failed one and unstarted cases are reported as skipped.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, entries []suite.Entry, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(entries) == 0 {
		return nil, 0, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]domain.CaseResult, len(entries))
	for i, e := range entries {
		results[i] = domain.CaseResult{Name: e.FullName(), Source: e.Source, Skipped: true}
	}

	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	plan := wp.scheduler.Schedule(len(entries), workerCount)

	var mu sync.Mutex
	var passedCases, failedCases int
	startTime := time.Now()

	var wg sync.WaitGroup
	for w, indices := range plan {
		wg.Add(1)
		go func(workerID int, indices []int) {
			defer wg.Done()
			for _, i := range indices {
				if runCtx.Err() != nil {
					return
				}
				result := wp.runCase(entries[i])
				results[i] = result

				wp.log.Debug().
					Int("worker", workerID).
					Str("case", result.Name).
					Int("tuples", result.Summary.Total).
					Bool("failed", result.Failed()).
					Msg("case finished")

				mu.Lock()
				if result.Failed() {
					failedCases++
					if failFast {
						cancel()
					}
				} else {
					passedCases++
				}
				if wp.progress != nil {
					wp.progress.Update(passedCases, failedCases)
				}
				mu.Unlock()
			}
		}(w+1, indices)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return results, time.Since(startTime), ctx.Err()
}

// runCase runs one entry; an entry that failed construction runs nothing
func (wp *WorkerPool) runCase(entry suite.Entry) domain.CaseResult {
	result := domain.CaseResult{Name: entry.FullName(), Source: entry.Source}
	if entry.Err != nil {
		result.Err = entry.Err
		wp.log.Warn().Err(entry.Err).Str("case", result.Name).Msg("case not runnable")
		return result
	}

	start := time.Now()
	result.Results = wp.runner.Run(entry.Case)
	result.Summary = report.Summarize(result.Results)
	result.Duration = time.Since(start)
	return result
}
