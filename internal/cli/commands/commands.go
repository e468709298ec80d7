package commands

import (
	"github.com/spf13/cobra"

	"paramrun/internal/cli"
	"paramrun/internal/config"
	"paramrun/internal/demo"
	"paramrun/internal/discovery"
	"paramrun/internal/engine"
	"paramrun/internal/execution"
	"paramrun/internal/logger"
	"paramrun/internal/storage"
	"paramrun/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) (*Commands, error) {
	st, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}

	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	catalog := NewCatalog(cfg, scanner, filter, demo.NewRegistry(), logger.Named("catalog"))
	runner := engine.NewRunner(logger.Named("engine"))
	scheduler := execution.NewRoundRobinScheduler()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, logger.Named("pool"))
	formatter := ui.NewFormatter()
	errorViewer := ui.NewErrorViewer(st, logger.Named("viewer"))

	return &Commands{
		Run:      NewRunCommand(cfg, catalog, filter, executor, st, formatter, errorViewer, logger.Named("run")),
		List:     NewListCommand(cfg, catalog, formatter, st),
		Failures: NewFailuresCommand(st, errorViewer),
	}, nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.ApplyFlags(flags.ToConfigFlags())
		return cfg.Validate()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run parameterized test cases",
		Long:    "Build the built-in suite and the suite files, then run every case in parallel workers. Exits non-zero when a case fails.",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", cfg.Workers, "Number of cases to run in parallel")
	runCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Suite file or folder where suite detection should start")
	runCmd.Flags().BoolVar(&flags.NoBuiltin, "no-builtin", false, "Skip the built-in demo suite")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'demo/*' or '*blank*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop starting new cases after the first failed case")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last stored run")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered cases",
		Long:    "Build and list every case with its source description, without running anything",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter cases by name pattern (supports wildcards, e.g., 'demo/*' or '*blank*')")
	listCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Suite file or folder where suite detection should start")
	listCmd.Flags().BoolVar(&flags.NoBuiltin, "no-builtin", false, "Skip the built-in demo suite")
	listCmd.Flags().BoolVarP(&flags.ShowTuples, "tuples", "t", false, "List every argument tuple of each case")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View failures interactively",
		Long:  "Display the failing invocations of the last run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
