package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"paramrun/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stdout)
}

// NewFormatterTo creates a Formatter writing to out
func NewFormatterTo(out io.Writer) *Formatter {
	return &Formatter{out: out}
}

const rowSep = "├─────────────────────────────────┼─────────────────────────────┤"

// PrintMetaStats displays the statistics of a run followed by the failure tree
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Cases", fmt.Sprint(meta.TotalCases), white},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), green},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), red},
		{"Skipped Cases", fmt.Sprint(meta.SkippedCases), yellow},
		{"Invocations", fmt.Sprint(meta.Invocations), white},
		{"Passed / Failed / Errored", fmt.Sprintf("%d / %d / %d", meta.Passed, meta.Failed, meta.Errored), white},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Run ID", meta.RunID, white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, r := range rows {
		if i > 0 {
			fmt.Fprintln(f.out, rowSep)
		}
		fmt.Fprintf(f.out, "│ %-31s │ ", r.label)
		r.c.Fprintf(f.out, "%-27s", truncate(r.value, 27))
		fmt.Fprintln(f.out, " │")
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 {
		green.Fprintln(f.out, "✓ All cases passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d case(s) failed with %d failing invocation(s)\n", meta.FailedCases, len(output.Details))
	fmt.Fprintln(f.out)
	f.printFailureTree(output.Details)
}

// printFailureTree prints failures grouped by suite, then case
func (f *Formatter) printFailureTree(failures []domain.TestFailure) {
	type group struct {
		name   string
		cases  []string
		byCase map[string][]domain.TestFailure
	}
	var suites []*group
	index := make(map[string]*group)

	for _, failure := range failures {
		suiteName, caseName := splitCaseName(failure.CaseName)
		g, ok := index[suiteName]
		if !ok {
			g = &group{name: suiteName, byCase: make(map[string][]domain.TestFailure)}
			index[suiteName] = g
			suites = append(suites, g)
		}
		if _, seen := g.byCase[caseName]; !seen {
			g.cases = append(g.cases, caseName)
		}
		g.byCase[caseName] = append(g.byCase[caseName], failure)
	}

	for si, g := range suites {
		lastSuite := si == len(suites)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastSuite), g.name)
		indent := stem(lastSuite)

		for ci, c := range g.cases {
			lastCase := ci == len(g.cases)-1
			items := g.byCase[c]
			yellow.Fprintf(f.out, "%s%s%s %s\n", indent, branch(lastCase), c, gray.Sprintf("(%s)", items[0].Source))
			inner := indent + stem(lastCase)

			for ii, item := range items {
				red.Fprintf(f.out, "%s%s%s\n", inner, branch(ii == len(items)-1), failureLine(item))
			}
		}
	}
}

// failureLine summarizes one failing tuple on a single line
func failureLine(failure domain.TestFailure) string {
	msg := firstLine(failure.Message)
	if failure.Index < 0 {
		return fmt.Sprintf("[%s] %s", failure.Status, msg)
	}
	return fmt.Sprintf("[%d] %s %s: %s", failure.Index, failure.Input, failure.Status, msg)
}

// PrintCaseList prints registered cases grouped by suite. Construction
// errors are shown in place of the tuples.
func (f *Formatter) PrintCaseList(infos []domain.CaseInfo, showTuples bool, failed map[string]bool) {
	green.Fprintf(f.out, "Found %d case(s):\n\n", len(infos))

	for i, info := range infos {
		last := i == len(infos)-1
		name := info.Name
		if info.Suite != "" {
			name = info.Suite + "/" + info.Name
		}

		marker := ""
		if failed[name] {
			marker = " " + red.Sprint("[F]")
		}
		if info.Err != nil {
			cyan.Fprintf(f.out, "%s%s%s %s\n", branch(last), name, marker, red.Sprint("(not runnable)"))
			fmt.Fprintf(f.out, "%s└── %s\n", stem(last), red.Sprint(info.Err))
			continue
		}
		cyan.Fprintf(f.out, "%s%s%s %s\n", branch(last), name, marker,
			gray.Sprintf("%s, %d tuple(s), arity %d", info.Source, len(info.Tuples), info.Arity))

		if !showTuples {
			continue
		}
		for j, t := range info.Tuples {
			fmt.Fprintf(f.out, "%s%s%s\n", stem(last), branch(j == len(info.Tuples)-1), yellow.Sprint(t.String()))
		}
	}
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func stem(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func splitCaseName(full string) (string, string) {
	if i := strings.Index(full, "/"); i >= 0 {
		return full[:i], full[i+1:]
	}
	return "", full
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
