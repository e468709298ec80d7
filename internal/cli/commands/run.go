package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"paramrun/internal/config"
	"paramrun/internal/discovery"
	"paramrun/internal/execution"
	"paramrun/internal/logger"
	"paramrun/internal/report"
	"paramrun/internal/storage"
	"paramrun/internal/ui"
)

// ErrCasesFailed is returned by run when at least one case failed
var ErrCasesFailed = errors.New("one or more cases failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	catalog   *Catalog
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    ui.Viewer
	log       *logger.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	catalog *Catalog,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	log *logger.Logger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		catalog:   catalog,
		filter:    filter,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
		log:       log,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	entries, err := rc.catalog.Entries()
	if err != nil {
		return err
	}

	// Keep only the cases that failed last time
	if rc.config.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return fmt.Errorf("no previous run to take failures from: %w", err)
		}
		entries = rc.filter.FilterByNames(entries, last.FailedCaseNames())
	}

	if len(entries) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}

	progressBar := ui.NewProgressBar(len(entries))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.ExecuteWithOptions(cmd.Context(), entries, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	output := report.BuildOutput(results, duration, rc.config.Workers)
	if err := rc.storage.Save(output); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}
	rc.log.Info().
		Str("run_id", output.Meta.RunID).
		Int("cases", output.Meta.TotalCases).
		Int("failed", output.Meta.FailedCases).
		Dur("took", duration).
		Msg("run saved")

	rc.formatter.PrintMetaStats(output)

	if !report.AnyFailed(results) {
		return nil
	}
	if rc.config.Flags.OpenFailures {
		if err := rc.viewer.View(output); err != nil {
			return err
		}
	}
	return ErrCasesFailed
}
