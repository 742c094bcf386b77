package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cinchlabs/cmseval/internal/dataset"
	"github.com/cinchlabs/cmseval/internal/llm"
	"github.com/cinchlabs/cmseval/internal/ontology"
	"github.com/cinchlabs/cmseval/internal/projectconfig"
	"github.com/cinchlabs/cmseval/internal/scoring"
)

// loadData returns the built-in ontology and platform table.
func loadData() (*ontology.Ontology, *dataset.Store, error) {
	ont, err := dataset.LoadOntology()
	if err != nil {
		return nil, nil, err
	}
	store, err := dataset.LoadStore()
	if err != nil {
		return nil, nil, err
	}
	return ont, store, nil
}

// resolveUseCases picks the use cases to score against: flag values win,
// then the project config, then every use case the ontology defines.
// Unknown keys are a configuration error.
func resolveUseCases(ont *ontology.Ontology, cfg *projectconfig.ProjectConfig, flagValues []string) ([]string, error) {
	selected := flagValues
	if len(selected) == 0 {
		selected = cfg.Evaluation.UseCases
	}
	if len(selected) == 0 {
		return ont.UseCaseKeys(), nil
	}

	for _, key := range selected {
		if _, ok := ont.GetUseCase(key); !ok {
			return nil, fmt.Errorf("unknown use case %q: known use cases are %s",
				key, strings.Join(ont.UseCaseKeys(), ", "))
		}
	}
	return selected, nil
}

// buildProvider constructs the LLM backend from flags merged over the
// project config.
func buildProvider(cfg *projectconfig.ProjectConfig, providerType, model, host string) (llm.Provider, error) {
	if providerType == "" {
		providerType = cfg.Provider.Type
	}
	if model == "" {
		model = cfg.Provider.Model
	}
	if host == "" {
		host = cfg.Provider.Host
	}
	return llm.New(providerType, llm.Options{Model: model, Host: host})
}

// printRanking writes the ranked platforms as an aligned text table.
func printRanking(w io.Writer, ranked []scoring.RankedPlatform, useCases []string) {
	fmt.Fprintf(w, "Scoring against use cases: %s\n\n", strings.Join(useCases, ", "))

	nameWidth := len("Platform")
	for _, rp := range ranked {
		if len(rp.Assessment.Platform) > nameWidth {
			nameWidth = len(rp.Assessment.Platform)
		}
	}

	fmt.Fprintf(w, "  %-4s  %-*s  %-9s  %-12s  %-12s\n", "Rank", nameWidth, "Platform", "Composite", "Use-Case Fit", "Business Fit")
	for _, rp := range ranked {
		fmt.Fprintf(w, "  %-4d  %-*s  %-9.4f  %-12.4f  %-12.4f\n",
			rp.Rank, nameWidth, rp.Assessment.Platform, rp.Composite, rp.UseCaseFit, rp.BusinessFit)
	}
}

// buildRecommendations turns a ranking into report recommendation lines.
func buildRecommendations(ranked []scoring.RankedPlatform, useCases []string) []string {
	if len(ranked) == 0 {
		return nil
	}

	recs := []string{
		fmt.Sprintf("Top pick: %s (composite %.2f) for %s.",
			ranked[0].Assessment.Platform, ranked[0].Composite, strings.Join(useCases, ", ")),
	}
	if len(ranked) > 1 {
		recs = append(recs, fmt.Sprintf("Runner-up: %s (composite %.2f).",
			ranked[1].Assessment.Platform, ranked[1].Composite))
	}
	if len(ranked) > 2 {
		recs = append(recs, fmt.Sprintf("Also considered: %s.",
			strings.Join(platformNames(ranked[2:]), ", ")))
	}
	return recs
}

func platformNames(ranked []scoring.RankedPlatform) []string {
	names := make([]string, 0, len(ranked))
	for _, rp := range ranked {
		names = append(names, rp.Assessment.Platform)
	}
	return names
}

// sortedKeys returns map keys in sorted order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
