package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinchlabs/cmseval/internal/llm"
)

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "Show which LLM providers are available",
		Long: `Check each supported provider under its default configuration and report
whether it is reachable. Cloud providers are available when their API key is
set; ollama is probed over HTTP.`,
		Args: cobra.NoArgs,
		RunE: providersCommandE,
	}
}

func providersCommandE(cmd *cobra.Command, args []string) error {
	availability := llm.Available(cmd.Context())

	fmt.Fprintf(cmd.OutOrStdout(), "  %-12s  %s\n", "Provider", "Available")
	for _, tag := range []string{"ollama", "openai", "anthropic"} {
		status := "no"
		if availability[tag] {
			status = "yes"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s  %s\n", tag, status)
	}
	return nil
}
