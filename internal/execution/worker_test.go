package execution

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramrun/internal/config"
	"paramrun/internal/domain"
	"paramrun/internal/engine"
	"paramrun/internal/source"
	"paramrun/internal/suite"
)

type fakeProgress struct {
	mu       sync.Mutex
	updates  int
	passed   int
	failed   int
	finished bool
}

func (p *fakeProgress) Update(passed, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
	p.passed, p.failed = passed, failed
}

func (p *fakeProgress) Finish() { p.finished = true }

func positive(n int64) error {
	if n <= 0 {
		return errors.New("not positive")
	}
	return nil
}

func buildEntries(t *testing.T) []suite.Entry {
	t.Helper()
	s := suite.New("pool", source.Env{})
	s.Add("all_pass", engine.Unary(positive), source.Ints(1, 2, 3))
	s.Add("one_fails", engine.Unary(positive), source.Ints(1, -1, 2))
	s.Add("bad_enum", engine.Unary(positive), source.EnumFilter{Type: "Missing"})
	s.Add("also_pass", engine.Unary(positive), source.Ints(7))
	return s.Entries()
}

func newPool(workers int) *WorkerPool {
	cfg := config.New()
	cfg.Workers = workers
	return NewWorkerPool(cfg, engine.NewRunner(nil), NewRoundRobinScheduler(), nil)
}

func TestWorkerPool_Execute(t *testing.T) {
	entries := buildEntries(t)
	pool := newPool(3)
	progress := &fakeProgress{}
	pool.SetProgress(progress)

	results, _, err := pool.Execute(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// results keep registration order regardless of worker assignment
	assert.Equal(t, "pool/all_pass", results[0].Name)
	assert.Equal(t, "pool/also_pass", results[3].Name)

	assert.False(t, results[0].Failed())
	assert.Equal(t, 3, results[0].Summary.Total)

	assert.True(t, results[1].Failed())
	assert.Equal(t, 1, results[1].Summary.Failed)
	assert.Equal(t, 3, results[1].Summary.Total)

	assert.True(t, results[2].Failed())
	assert.ErrorIs(t, results[2].Err, domain.ErrLookup)
	assert.Empty(t, results[2].Results)

	for _, r := range results {
		assert.False(t, r.Skipped, r.Name)
	}

	assert.Equal(t, 4, progress.updates)
	assert.Equal(t, 2, progress.passed)
	assert.Equal(t, 2, progress.failed)
	assert.True(t, progress.finished)
}

func TestWorkerPool_FailFast(t *testing.T) {
	entries := buildEntries(t)
	pool := newPool(1)

	results, _, err := pool.ExecuteWithOptions(context.Background(), entries, true)
	require.NoError(t, err)

	assert.False(t, results[0].Skipped)
	assert.True(t, results[1].Failed())
	assert.True(t, results[2].Skipped)
	assert.True(t, results[3].Skipped)
	assert.Empty(t, results[3].Results)
}

func TestWorkerPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := newPool(2).Execute(ctx, buildEntries(t))
	assert.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.True(t, r.Skipped, r.Name)
	}
}

func TestWorkerPool_ProviderPanicDoesNotStopOtherCases(t *testing.T) {
	calls := 0
	env := source.Env{Providers: map[string]source.Provider{
		"flaky": func() []domain.Tuple {
			calls++
			if calls > 1 {
				panic("provider blew up")
			}
			return []domain.Tuple{{domain.Int(1)}}
		},
	}}
	s := suite.New("pool", env)
	s.Add("flaky", engine.Unary(positive), source.Method{Name: "flaky"})
	s.Add("steady", engine.Unary(positive), source.Ints(1, 2))

	results, _, err := newPool(2).Execute(context.Background(), s.Entries())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Failed())
	assert.Equal(t, 1, results[0].Summary.Errored)
	assert.Contains(t, results[0].Results[0].Message, "provider blew up")

	assert.False(t, results[1].Failed())
	assert.Equal(t, 2, results[1].Summary.Total)
}

func TestWorkerPool_NoEntries(t *testing.T) {
	results, d, err := newPool(2).Execute(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, d)
}
