package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"paramrun/internal/config"
	"paramrun/internal/domain"
	"paramrun/internal/storage"
	"paramrun/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	catalog   *Catalog
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	catalog *Catalog,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		catalog:   catalog,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	entries, err := lc.catalog.Entries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		color.Yellow("No cases found")
		return nil
	}

	infos := make([]domain.CaseInfo, len(entries))
	for i, e := range entries {
		infos[i] = e.Info()
	}

	// Mark cases that failed in the last run, when there is one
	failed := make(map[string]bool)
	if last, err := lc.storage.Load(); err == nil {
		for _, name := range last.FailedCaseNames() {
			failed[name] = true
		}
	}

	lc.formatter.PrintCaseList(infos, lc.config.Flags.ShowTuples, failed)
	return nil
}
