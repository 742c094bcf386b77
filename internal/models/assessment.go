// Package models holds the shared value types passed between the evaluator,
// the scoring engine, and the report generator.
package models

// PlatformAssessment is a platform's capability scores plus qualitative
// findings. It is a value object: built once, never mutated.
type PlatformAssessment struct {
	Platform         string         `json:"platform"`
	CapabilityScores map[string]int `json:"capability_scores"`
	Strengths        []string       `json:"strengths"`
	Weaknesses       []string       `json:"weaknesses"`
	BestForUseCase   string         `json:"best_for_use_case"`
	OverallFitScore  float64        `json:"overall_fit_score"`
	AIGenerated      bool           `json:"ai_generated"`
	Notes            string         `json:"notes,omitempty"`
}

// VendorData is the structured output of the vendor extraction pipeline.
// RawContent keeps a bounded excerpt of the scraped text for diagnostics.
type VendorData struct {
	Platform     string         `json:"platform"`
	Capabilities map[string]int `json:"capabilities"`
	PricingInfo  string         `json:"pricing_info"`
	Features     []string       `json:"features"`
	SourceURLs   []string       `json:"source_urls"`
	RawContent   string         `json:"raw_content"`
}

// MaxRawContent bounds VendorData.RawContent.
const MaxRawContent = 5000

// PlatformProfile is one entry of the static platform table.
type PlatformProfile struct {
	Name         string         `json:"-"`
	Type         string         `json:"type"`
	Category     string         `json:"category"`
	Deployment   string         `json:"deployment"`
	TrafficBand  string         `json:"traffic_band"`
	CostBand     string         `json:"cost_band"`
	Summary      string         `json:"summary"`
	Capabilities map[string]int `json:"capabilities"`
}

// AssessmentFromProfile builds an assessment from pre-populated capability
// data. The overall fit score is the mean capability level normalized to
// [0,1]; there is no LLM involvement on this path.
func AssessmentFromProfile(p PlatformProfile) PlatformAssessment {
	var fit float64
	if len(p.Capabilities) > 0 {
		var sum int
		for _, score := range p.Capabilities {
			sum += score
		}
		fit = float64(sum) / float64(len(p.Capabilities)) / 3.0
		if fit > 1.0 {
			fit = 1.0
		}
	}

	scores := make(map[string]int, len(p.Capabilities))
	for key, score := range p.Capabilities {
		scores[key] = score
	}

	return PlatformAssessment{
		Platform:         p.Name,
		CapabilityScores: scores,
		OverallFitScore:  fit,
		AIGenerated:      false,
		Notes:            "From static platform table",
	}
}

// Truncate caps s at n bytes. Capability content is ASCII-dominated web text,
// so byte truncation is acceptable for prompt and storage budgets.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
