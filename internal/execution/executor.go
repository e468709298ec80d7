package execution

import (
	"context"
	"time"

	"paramrun/internal/domain"
	"paramrun/internal/suite"
)

// Executor executes registered cases and returns their results in
// registration order
type Executor interface {
	Execute(ctx context.Context, entries []suite.Entry) ([]domain.CaseResult, time.Duration, error)
}

// Progress receives case-level progress updates
type Progress interface {
	Update(passed, failed int)
	Finish()
}
