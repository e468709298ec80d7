package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"paramrun/internal/cli"
	"paramrun/internal/cli/commands"
	"paramrun/internal/config"
	"paramrun/internal/logger"
)

var version = "dev"

func main() {
	// Load config from defaults, .env and PARAMRUN_* variables
	cfg, err := config.Load(config.DefaultProjectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Create root command
	rootCmd := &cobra.Command{
		Use:           "paramrun",
		Short:         "Parameterized test runner",
		Long:          `Runs test functions once per argument tuple produced by value, enum, CSV and provider sources, and reports pass, fail or error per invocation.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds, err := commands.NewCommands(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Ctrl+C stops workers from starting new cases
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrCasesFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
