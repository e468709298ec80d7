package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramrun/internal/config"
	"paramrun/internal/domain"
	"paramrun/internal/storage"
)

func init() {
	color.NoColor = true
}

func sampleRun() *domain.RunOutput {
	return &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:       "run-1",
			TotalCases:  3,
			PassedCases: 1,
			FailedCases: 2,
			Invocations: 8,
			Passed:      6,
			Failed:      1,
			Errored:     1,
			Workers:     2,
		},
		Details: []domain.TestFailure{
			{CaseName: "demo/is_odd", Source: "values(3)", Index: 1, Input: "(2)", Status: domain.StatusFail, Message: "IsOdd(2)\nExpected\n    <bool>: false\nto be true"},
			{CaseName: "files/upper", Source: "csv_file(x.csv)", Index: -1, Status: domain.StatusError, Message: "io error: csv_file(x.csv)"},
		},
	}
}

func TestFormatter_PrintMetaStats(t *testing.T) {
	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintMetaStats(sampleRun())
	out := buf.String()

	assert.Contains(t, out, "Total Cases")
	assert.Contains(t, out, "6 / 1 / 1")
	assert.Contains(t, out, "✗ 2 case(s) failed with 2 failing invocation(s)")
	assert.Contains(t, out, "├── demo")
	assert.Contains(t, out, "└── is_odd (values(3))")
	assert.Contains(t, out, "[1] (2) fail: IsOdd(2) …")
	assert.Contains(t, out, "└── files")
	assert.Contains(t, out, "[error] io error: csv_file(x.csv)")
}

func TestFormatter_PrintMetaStats_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintMetaStats(&domain.RunOutput{Meta: domain.RunMeta{TotalCases: 4, PassedCases: 4}})
	assert.Contains(t, buf.String(), "✓ All cases passed!")
}

func TestFormatter_PrintCaseList(t *testing.T) {
	infos := []domain.CaseInfo{
		{Suite: "demo", Name: "is_odd", Source: "values(2)", Arity: 1, Tuples: []domain.Tuple{{domain.Int(1)}, {domain.Int(3)}}},
		{Suite: "demo", Name: "broken", Err: errors.New("lookup error: method(x)")},
	}

	var buf bytes.Buffer
	NewFormatterTo(&buf).PrintCaseList(infos, true, map[string]bool{"demo/is_odd": true})
	out := buf.String()

	assert.Contains(t, out, "Found 2 case(s)")
	assert.Contains(t, out, "├── demo/is_odd [F] values(2), 2 tuple(s), arity 1")
	assert.Contains(t, out, "│   ├── (1)")
	assert.Contains(t, out, "│   └── (3)")
	assert.Contains(t, out, "└── demo/broken (not runnable)")
	assert.Contains(t, out, "lookup error: method(x)")

	buf.Reset()
	NewFormatterTo(&buf).PrintCaseList(infos[:1], false, nil)
	assert.NotContains(t, buf.String(), "(1)")
}

func TestListItemText(t *testing.T) {
	f := domain.TestFailure{CaseName: "demo/is_odd", Index: 2}
	assert.Equal(t, "[yellow]1.[white] demo/is_odd [2[]", listItemText(f, 0))

	f.Resolved = true
	assert.True(t, strings.HasPrefix(listItemText(f, 4), "[gray]✓ [yellow]5."))
}

func TestFormatFailureDetails(t *testing.T) {
	details := formatFailureDetails(sampleRun().Details[1])
	assert.Contains(t, details, "could not be built")
	assert.Contains(t, details, "csv_file(x.csv)")

	stats := formatFailureStats(sampleRun().Details[0])
	assert.Contains(t, stats, "demo")
	assert.Contains(t, stats, "is_odd")
	assert.Contains(t, stats, "unresolved")
}

func TestErrorViewer_ToggleResolved(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	st := storage.NewJSONStorage(cfg)
	results := sampleRun()
	require.NoError(t, st.Save(results))

	ev := NewErrorViewer(st, nil)
	require.NoError(t, ev.ToggleResolved(results, 1))
	assert.Equal(t, 1, countUnresolved(results.Details))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Details[1].Resolved)

	require.NoError(t, ev.ToggleResolved(loaded, 1))
	assert.False(t, loaded.Details[1].Resolved)

	assert.Error(t, ev.ToggleResolved(loaded, 5))
}

func TestProgressBar(t *testing.T) {
	p := newProgressBar(3, io.Discard, false)
	p.Update(1, 0)
	p.Update(1, 1)
	p.Update(2, 1)
	p.Finish()
}
