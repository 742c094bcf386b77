package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/report"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

func newReportCommand() *cobra.Command {
	var (
		useCases []string
		format   string
		outPath  string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an evaluation report",
		Long: `Score the built-in platform table for the selected use cases and render
the result as a markdown or HTML report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportCommandE(cmd, useCases, format, outPath, title)
		},
	}

	cmd.Flags().StringArrayVarP(&useCases, "use-case", "u", nil, "Use case key to score against (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "md", "Output format: md or html")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the report to this path instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Report title")

	return cmd
}

func reportCommandE(cmd *cobra.Command, useCases []string, format, outPath, title string) error {
	if format != "md" && format != "html" {
		return fmt.Errorf("unsupported format %q: must be md or html", format)
	}

	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	if title == "" {
		title = cfg.Report.Title
	}

	ont, store, err := loadData()
	if err != nil {
		return err
	}

	selected, err := resolveUseCases(ont, cfg, useCases)
	if err != nil {
		return err
	}

	assessments := store.Assessments()
	ranked := scoring.Rank(ont, assessments, selected, ont.OutcomeWeights())
	recommendations := buildRecommendations(ranked, selected)

	gen := &report.Generator{}
	var content string
	switch format {
	case "md":
		content = gen.Markdown(assessments, recommendations, title)
	case "html":
		content, err = gen.HTML(assessments, recommendations, title)
		if err != nil {
			return err
		}
	}

	if outPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
	return nil
}
