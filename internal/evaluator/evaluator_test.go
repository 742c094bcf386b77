package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/cinchlabs/cmseval/internal/llm"
	"github.com/cinchlabs/cmseval/internal/ontology"
	"github.com/stretchr/testify/require"
)

// fakeProvider records the prompt it received and replays a canned response.
type fakeProvider struct {
	name       string
	content    map[string]any
	err        error
	lastPrompt string
	lastSchema map[string]any
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*llm.Response, error) {
	f.lastPrompt = prompt
	f.lastSchema = schema
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{
		Content:  f.content,
		Model:    "fake-model",
		Provider: f.name,
		RawText:  "{}",
	}, nil
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func mkOntology(t *testing.T) *ontology.Ontology {
	t.Helper()
	o, err := ontology.Load([]byte(`{
		"capabilities": {
			"content_modeling": {"label": "Content Modeling", "facets": [], "scale": "0-3", "importance": "critical"},
			"delivery": {"label": "Delivery & API", "facets": [], "scale": "0-3", "importance": "critical"}
		}
	}`))
	require.NoError(t, err)
	return o
}

func TestEvaluate_CompleteResponse(t *testing.T) {
	provider := &fakeProvider{
		name: "ollama",
		content: map[string]any{
			"platform":          "Contentful",
			"capability_scores": map[string]any{"content_modeling": 3, "delivery": 2},
			"strengths":         []any{"API-first", "Rich schema", "Modern DX"},
			"weaknesses":        []any{"No native testing", "Needs front end", "Cost"},
			"best_for_use_case": "multi_property",
			"overall_fit_score": 0.82,
		},
	}

	a, err := New(provider).Evaluate(t.Context(), "Contentful", mkOntology(t), "")
	require.NoError(t, err)

	require.Equal(t, "Contentful", a.Platform)
	require.Equal(t, map[string]int{"content_modeling": 3, "delivery": 2}, a.CapabilityScores)
	require.Len(t, a.Strengths, 3)
	require.Equal(t, "multi_property", a.BestForUseCase)
	require.InDelta(t, 0.82, a.OverallFitScore, 1e-9)
	require.True(t, a.AIGenerated)
	require.Equal(t, "Generated via ollama", a.Notes)
}

func TestEvaluate_MissingFieldsDefault(t *testing.T) {
	provider := &fakeProvider{name: "openai", content: map[string]any{}}

	a, err := New(provider).Evaluate(t.Context(), "Sanity", mkOntology(t), "")
	require.NoError(t, err)

	require.Equal(t, "Sanity", a.Platform)
	require.Empty(t, a.CapabilityScores)
	require.Empty(t, a.Strengths)
	require.Empty(t, a.Weaknesses)
	require.Zero(t, a.OverallFitScore)
	require.True(t, a.AIGenerated)
}

func TestEvaluate_WeaklyTypedScores(t *testing.T) {
	// Models sometimes return scores as floats; they still decode as ints.
	provider := &fakeProvider{
		name:    "anthropic",
		content: map[string]any{"capability_scores": map[string]any{"delivery": 2.0}},
	}

	a, err := New(provider).Evaluate(t.Context(), "HubSpot", mkOntology(t), "")
	require.NoError(t, err)
	require.Equal(t, 2, a.CapabilityScores["delivery"])
}

func TestEvaluate_ProviderError(t *testing.T) {
	provider := &fakeProvider{name: "ollama", err: errors.New("connection refused")}

	_, err := New(provider).Evaluate(t.Context(), "Liferay", mkOntology(t), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Liferay")
}

func TestEvaluate_PromptContents(t *testing.T) {
	provider := &fakeProvider{name: "ollama", content: map[string]any{}}
	ev := New(provider)

	_, err := ev.Evaluate(t.Context(), "Sitecore", mkOntology(t), "")
	require.NoError(t, err)
	require.Contains(t, provider.lastPrompt, "Content Modeling (scale 0-3)")
	require.Contains(t, provider.lastPrompt, "Use your knowledge of Sitecore")
	require.Contains(t, provider.lastPrompt, "consolidate")
	require.Contains(t, provider.lastSchema, "required")

	_, err = ev.Evaluate(t.Context(), "Sitecore", mkOntology(t), "vendor docs excerpt")
	require.NoError(t, err)
	require.Contains(t, provider.lastPrompt, "vendor docs excerpt")
	require.NotContains(t, provider.lastPrompt, "Use your knowledge of")
}

func TestEvaluate_CustomBrief(t *testing.T) {
	provider := &fakeProvider{name: "ollama", content: map[string]any{}}
	ev := New(provider)
	ev.RequirementsBrief = "- single brand site, low traffic"

	_, err := ev.Evaluate(t.Context(), "Sanity", mkOntology(t), "")
	require.NoError(t, err)
	require.Contains(t, provider.lastPrompt, "single brand site")
	require.NotContains(t, provider.lastPrompt, "enrollments")
}
