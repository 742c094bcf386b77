package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cmseval",
		Short: "cmseval - score and compare CMS platforms",
		Long: `cmseval scores content-management platforms against a capability
ontology and ranks them for your selected use cases.

Rankings come from a static platform table, from LLM assessments, or from
live vendor documentation merged over the table.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newAssessCommand())
	cmd.AddCommand(newFetchCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newProvidersCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	// API keys commonly live in a local .env; absence is not an error.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
