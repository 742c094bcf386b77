package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/agent"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

func newFetchCommand() *cobra.Command {
	var (
		providerType string
		model        string
		host         string
		useCases     []string
		merge        bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [vendor ...]",
		Short: "Pull live vendor data and extract capability scores",
		Long: `Scrape each vendor's public documentation pages, have an LLM score the
text against the capability rubric, and print the extracted data.

With no arguments, every vendor with known documentation URLs is fetched.
With --merge, the extracted capabilities replace the static table entries
for matching platforms and the merged table is re-ranked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchCommandE(cmd, args, providerType, model, host, useCases, merge)
		},
	}

	cmd.Flags().StringVarP(&providerType, "provider", "p", "", "LLM provider: ollama, openai, or anthropic")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model override")
	cmd.Flags().StringVar(&host, "host", "", "Ollama host override")
	cmd.Flags().StringArrayVarP(&useCases, "use-case", "u", nil, "Use case key to score against (repeatable)")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge fetched capabilities over the static table and re-rank")

	return cmd
}

func fetchCommandE(cmd *cobra.Command, args []string, providerType, model, host string, useCases []string, merge bool) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	ont, store, err := loadData()
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

	vendors := args
	if len(vendors) == 0 {
		vendors = sortedKeys(agent.DefaultVendorDocs)
	}

	a := agent.New(provider, agent.NewHTTPFetcher(), nil)

	fmt.Fprintf(cmd.OutOrStdout(), "Fetching %d vendor(s) with %s\n\n", len(vendors), provider.Name())
	vendorData := a.FetchAllPlatforms(cmd.Context(), vendors)
	if len(vendorData) == 0 {
		return fmt.Errorf("no vendor data could be fetched")
	}

	for _, vendor := range sortedKeys(vendorData) {
		data := vendorData[vendor]
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", vendor)
		fmt.Fprintf(cmd.OutOrStdout(), "  pricing: %s\n", data.PricingInfo)
		for _, key := range ont.CapabilityKeys() {
			if score, ok := data.Capabilities[key]; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-28s %d\n", key, score)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if !merge {
		return nil
	}

	selected, err := resolveUseCases(ont, cfg, useCases)
	if err != nil {
		return err
	}

	merged := store.Overlay(vendorData)
	ranked := scoring.Rank(ont, merged.Assessments(), selected, ont.OutcomeWeights())
	fmt.Fprintln(cmd.OutOrStdout(), "Ranking with live data merged over the static table:")
	fmt.Fprintln(cmd.OutOrStdout())
	printRanking(cmd.OutOrStdout(), ranked, selected)
	return nil
}
