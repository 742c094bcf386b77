package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/dataset"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

func newScoreCommand() *cobra.Command {
	var (
		useCases []string
		csvPath  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank platforms using the built-in capability table",
		Long: `Rank every platform in the built-in table for the selected use cases.

No LLM calls are made; scores come from the static capability data. Use
--use-case to narrow the evaluation (repeatable); the default is every use
case in the ontology.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return scoreCommandE(cmd, useCases, csvPath)
		},
	}

	cmd.Flags().StringArrayVarP(&useCases, "use-case", "u", nil, "Use case key to score against (repeatable)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the ranking as CSV to this path")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, useCases []string, csvPath string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	ont, store, err := loadData()
	if err != nil {
		return err
	}

	selected, err := resolveUseCases(ont, cfg, useCases)
	if err != nil {
		return err
	}

	ranked := scoring.Rank(ont, store.Assessments(), selected, ont.OutcomeWeights())
	printRanking(cmd.OutOrStdout(), ranked, selected)

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", csvPath, err)
		}
		defer f.Close() //nolint:errcheck

		if err := dataset.ExportCSV(f, ranked); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", csvPath)
	}

	return nil
}
