// Package evaluator produces structured platform assessments by prompting an
// LLM provider with a capability rubric.
package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinchlabs/cmseval/internal/llm"
	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/cinchlabs/cmseval/internal/ontology"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultRequirementsBrief describes the evaluating organization's situation
// and goals. It is embedded verbatim into every rubric prompt and can be
// overridden per Evaluator.
const DefaultRequirementsBrief = `- 20K+ paid views/day, 6K-7K unique visitors
- Primary goal: improve conversion rates and drive enrollments
- Currently spread across 5 CMS platforms
- Want to consolidate but accept a 3-platform reality
- Avoid enterprise-monolith scale, avoid lightweight tools
- Interested in headless/composable approach`

// Evaluator turns a platform name plus the ontology into a structured
// assessment via a single provider chat call.
type Evaluator struct {
	provider llm.Provider

	// RequirementsBrief replaces DefaultRequirementsBrief when non-empty.
	RequirementsBrief string
}

// New creates an Evaluator backed by the given provider.
func New(provider llm.Provider) *Evaluator {
	return &Evaluator{provider: provider}
}

// assessmentSchema is the structured-output contract for one assessment.
// Kept flat for compatibility with local-model structured decoding.
var assessmentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"platform":          map[string]any{"type": "string"},
		"capability_scores": map[string]any{"type": "object"},
		"strengths": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"weaknesses": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"best_for_use_case": map[string]any{"type": "string"},
		"overall_fit_score": map[string]any{"type": "number"},
	},
	"required": []any{
		"platform",
		"capability_scores",
		"strengths",
		"weaknesses",
		"best_for_use_case",
		"overall_fit_score",
	},
}

// assessmentContent mirrors the schema for defensive decoding: anything the
// model left out stays at its zero value.
type assessmentContent struct {
	CapabilityScores map[string]int `mapstructure:"capability_scores"`
	Strengths        []string       `mapstructure:"strengths"`
	Weaknesses       []string       `mapstructure:"weaknesses"`
	BestForUseCase   string         `mapstructure:"best_for_use_case"`
	OverallFitScore  float64        `mapstructure:"overall_fit_score"`
}

// Evaluate assesses one platform against the ontology. contextText, when
// non-empty, is included as grounding material (e.g. a vendor docs excerpt);
// otherwise the model is told to use its general knowledge of the platform.
func (e *Evaluator) Evaluate(ctx context.Context, platformName string, ont *ontology.Ontology, contextText string) (*models.PlatformAssessment, error) {
	prompt := e.buildPrompt(platformName, ont, contextText)

	resp, err := e.provider.Chat(ctx, prompt, assessmentSchema)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", platformName, err)
	}

	var content assessmentContent
	// WeaklyTypedInput tolerates models emitting scores as floats or
	// numbers as strings; decode errors degrade to zero values.
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &content,
		WeaklyTypedInput: true,
	})
	if err == nil {
		_ = dec.Decode(resp.Content)
	}

	return &models.PlatformAssessment{
		Platform:         platformName,
		CapabilityScores: content.CapabilityScores,
		Strengths:        content.Strengths,
		Weaknesses:       content.Weaknesses,
		BestForUseCase:   content.BestForUseCase,
		OverallFitScore:  content.OverallFitScore,
		AIGenerated:      true,
		Notes:            fmt.Sprintf("Generated via %s", resp.Provider),
	}, nil
}

func (e *Evaluator) buildPrompt(platformName string, ont *ontology.Ontology, contextText string) string {
	var capabilityNames []string
	for _, key := range ont.CapabilityKeys() {
		c, _ := ont.GetCapability(key)
		capabilityNames = append(capabilityNames, fmt.Sprintf("%s (scale 0-3)", c.Label))
	}

	grounding := contextText
	if grounding == "" {
		grounding = fmt.Sprintf("Use your knowledge of %s from public documentation.", platformName)
	}

	brief := e.RequirementsBrief
	if brief == "" {
		brief = DefaultRequirementsBrief
	}

	return fmt.Sprintf(`You are a CMS evaluation expert. Assess the '%s' CMS platform.

Evaluate across these capabilities (scale 0-3, where 3 is excellent):
%s

CONTEXT:
%s

REQUIREMENTS:
%s

Provide your assessment as JSON with:
1. capability_scores: mapping of capability_key -> score (0-3)
2. strengths: 3 key strengths for these requirements
3. weaknesses: 3 key weaknesses
4. best_for_use_case: which use case this platform fits best
5. overall_fit_score: 0.0-1.0 overall fit score`,
		platformName,
		strings.Join(capabilityNames, ", "),
		grounding,
		brief)
}
