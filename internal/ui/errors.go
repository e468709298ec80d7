package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"paramrun/internal/domain"
	"paramrun/internal/logger"
	"paramrun/internal/storage"
)

// ErrorViewer displays failing invocations in an interactive TUI
type ErrorViewer struct {
	storage storage.Storage
	log     *logger.Logger
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(st storage.Storage, log *logger.Logger) *ErrorViewer {
	if log == nil {
		log = logger.Nop()
	}
	return &ErrorViewer{
		storage: st,
		log:     log,
	}
}

// ToggleResolved flips the resolved flag of the failure at index and saves
// the whole output
func (ev *ErrorViewer) ToggleResolved(results *domain.RunOutput, index int) error {
	if index < 0 || index >= len(results.Details) {
		return fmt.Errorf("failure %d out of range", index)
	}
	results.Details[index].Resolved = !results.Details[index].Resolved
	if err := ev.storage.Save(results); err != nil {
		return fmt.Errorf("save resolved status: %w", err)
	}
	return nil
}

// View displays failures in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failures found!")
		return nil
	}

	app := tview.NewApplication()

	// failing invocations (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		list.SetItemText(index, listItemText(results.Details[index], index), "")
	}

	for i, failure := range results.Details {
		list.AddItem(listItemText(failure, i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// list on the left (1/3), details on the right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" Failures (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ",
			len(results.Details), countUnresolved(results.Details)))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]
			statsView.SetText(formatFailureStats(failure))
			detailsView.SetText(formatFailureDetails(failure))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if err := ev.ToggleResolved(results, index); err != nil {
					ev.log.Error().Err(err).Int("index", index).Msg("toggle resolved")
				}
				updateListItem(index)
				updateHeader()
				updateDetails()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func countUnresolved(failures []domain.TestFailure) int {
	count := 0
	for _, f := range failures {
		if !f.Resolved {
			count++
		}
	}
	return count
}

// listItemText renders one list entry using tview color tags
func listItemText(failure domain.TestFailure, index int) string {
	label := failure.CaseName
	if failure.Index >= 0 {
		label = fmt.Sprintf("%s [%d]", failure.CaseName, failure.Index)
	}
	label = tview.Escape(label)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, label)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, label)
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(failure domain.TestFailure) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Case: %s[white]\n\n", tview.Escape(failure.CaseName))
	fmt.Fprintf(w, "[cyan]Source:\t%s[white]\n", tview.Escape(failure.Source))
	if failure.Index >= 0 {
		fmt.Fprintf(w, "[cyan]Invocation:\t%d[white]\n", failure.Index)
		fmt.Fprintf(w, "[cyan]Arguments:\t%s[white]\n", tview.Escape(failure.Input))
	} else {
		fmt.Fprintf(w, "[cyan]Invocation:\tnone, the case could not be built[white]\n")
	}
	fmt.Fprintf(w, "[cyan]Status:\t%s[white]\n\n", failure.Status)

	if failure.Message != "" {
		fmt.Fprintf(w, "[yellow]Message:[white]\n%s\n", tview.Escape(failure.Message))
	}

	w.Flush()
	return builder.String()
}

// formatFailureStats formats the header line above the details
func formatFailureStats(failure domain.TestFailure) string {
	suiteName, caseName := splitCaseName(failure.CaseName)
	if suiteName == "" {
		suiteName = "-"
	}
	state := "[red]unresolved[white]"
	if failure.Resolved {
		state = "[green]resolved[white]"
	}
	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white]  [cyan]case:[white] [yellow]%s[white]  %s\n",
		tview.Escape(suiteName), tview.Escape(caseName), state)
}
