package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/evaluator"
	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

func newAssessCommand() *cobra.Command {
	var (
		providerType string
		model        string
		host         string
		useCases     []string
		brief        string
	)

	cmd := &cobra.Command{
		Use:   "assess [platform ...]",
		Short: "Assess platforms with an LLM and rank the results",
		Long: `Ask an LLM to score each platform against the capability ontology, then
rank the assessments for the selected use cases.

With no arguments, every platform in the built-in table is assessed. A
platform that fails to assess is skipped with a warning; the run continues
with the rest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return assessCommandE(cmd, args, providerType, model, host, useCases, brief)
		},
	}

	cmd.Flags().StringVarP(&providerType, "provider", "p", "", "LLM provider: ollama, openai, or anthropic")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model override")
	cmd.Flags().StringVar(&host, "host", "", "Ollama host override")
	cmd.Flags().StringArrayVarP(&useCases, "use-case", "u", nil, "Use case key to score against (repeatable)")
	cmd.Flags().StringVar(&brief, "brief", "", "Requirements brief override passed to the model")

	return cmd
}

func assessCommandE(cmd *cobra.Command, args []string, providerType, model, host string, useCases []string, brief string) error {
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

	provider, err := buildProvider(cfg, providerType, model, host)
	if err != nil {
		return err
	}
	if !provider.IsAvailable(cmd.Context()) {
		return fmt.Errorf("provider %s is not available; check keys and connectivity", provider.Name())
	}

	platforms := args
	if len(platforms) == 0 {
		platforms = store.Names()
	}

	eval := evaluator.New(provider)
	if brief == "" {
		brief = cfg.Evaluation.RequirementsBrief
	}
	if brief != "" {
		eval.RequirementsBrief = brief
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Assessing %d platform(s) with %s\n\n", len(platforms), provider.Name())

	var assessments []models.PlatformAssessment
	for _, name := range platforms {
		assessment, err := eval.Evaluate(cmd.Context(), name, ont, "")
		if err != nil {
			slog.Warn("assessment failed, skipping platform", "platform", name, "error", err)
			continue
		}
		assessments = append(assessments, *assessment)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: overall fit %.2f\n", assessment.Platform, assessment.OverallFitScore)
	}
	if len(assessments) == 0 {
		return fmt.Errorf("no platform could be assessed")
	}

	fmt.Fprintln(cmd.OutOrStdout())
	ranked := scoring.Rank(ont, assessments, selected, ont.OutcomeWeights())
	printRanking(cmd.OutOrStdout(), ranked, selected)
	return nil
}
