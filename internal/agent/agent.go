// Package agent extracts structured vendor capability data: scrape known
// documentation pages through an injected fetcher, then have an LLM score
// the raw text against the capability rubric.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cinchlabs/cmseval/internal/llm"
	"github.com/cinchlabs/cmseval/internal/models"
	"github.com/go-viper/mapstructure/v2"
)

// Per-source budgets. Pages are capped before concatenation, the combined
// text is capped again before prompting, and only a short excerpt is stored.
const (
	maxPageContent   = 15000
	maxPromptContent = 12000

	pageTimeout = 30 * time.Second
)

// Fetcher retrieves rendered page text. Implementations own the browser or
// HTTP lifecycle; Close must release all resources exactly once.
type Fetcher interface {
	// FetchRenderedText returns the body text of url, stripped of scripts,
	// navigation, and other non-content markup, within the given timeout.
	FetchRenderedText(ctx context.Context, url, selector string, timeout time.Duration) (string, error)

	Close() error
}

// DefaultVendorDocs maps vendor keys to their public documentation URLs.
var DefaultVendorDocs = map[string][]string{
	"contentful": {
		"https://www.contentful.com/features/",
		"https://www.contentful.com/pricing/",
	},
	"sanity": {
		"https://www.sanity.io/features",
		"https://www.sanity.io/pricing",
	},
	"hubspot": {
		"https://www.hubspot.com/products/cms",
		"https://www.hubspot.com/pricing/cms",
	},
	"sitecore": {
		"https://www.sitecore.com/products/content-hub",
	},
	"acquia": {
		"https://www.acquia.com/products/drupal-cloud",
	},
}

// Agent is the vendor-data extraction pipeline. One logical thread of
// control; no concurrent fetches.
type Agent struct {
	llm     llm.Provider
	fetcher Fetcher
	docs    map[string][]string
}

// New creates an Agent. A nil docs map falls back to DefaultVendorDocs.
func New(provider llm.Provider, fetcher Fetcher, docs map[string][]string) *Agent {
	if docs == nil {
		docs = DefaultVendorDocs
	}
	return &Agent{llm: provider, fetcher: fetcher, docs: docs}
}

// ScrapeVendor fetches every known documentation page for a vendor and
// concatenates the results, each block capped at maxPageContent and labeled
// with its source URL. A page fetch failure becomes an inline error string
// rather than aborting the scrape; an unknown vendor yields an explanatory
// placeholder.
func (a *Agent) ScrapeVendor(ctx context.Context, platform string) string {
	urls := a.docs[strings.ToLower(platform)]
	if len(urls) == 0 {
		return fmt.Sprintf("No known documentation URLs for %s", platform)
	}

	blocks := make([]string, 0, len(urls))
	for _, url := range urls {
		content, err := a.fetcher.FetchRenderedText(ctx, url, "body", pageTimeout)
		if err != nil {
			content = fmt.Sprintf("Error scraping %s: %v", url, err)
		}
		content = models.Truncate(content, maxPageContent)
		blocks = append(blocks, fmt.Sprintf("=== Source: %s ===\n%s", url, content))
	}

	return strings.Join(blocks, "\n\n")
}

// extractionSchema is the structured-output contract for capability
// extraction.
var extractionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"capabilities": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"content_modeling": map[string]any{"type": "integer"},
				"delivery":         map[string]any{"type": "integer"},
				"personalization":  map[string]any{"type": "integer"},
				"workflow":         map[string]any{"type": "integer"},
				"integrations":     map[string]any{"type": "integer"},
				"performance":      map[string]any{"type": "integer"},
				"operational":      map[string]any{"type": "integer"},
			},
		},
		"pricing_tier": map[string]any{"type": "string"},
		"key_features": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"strengths": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"weaknesses": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required": []any{"capabilities", "key_features"},
}

// ExtractCapabilities asks the LLM to score rawContent against the 0-3
// capability rubric. The raw text is truncated to the prompt budget.
func (a *Agent) ExtractCapabilities(ctx context.Context, platform, rawContent string) (map[string]any, error) {
	prompt := fmt.Sprintf(`Analyze this CMS vendor documentation for %s.

Score each capability from 0-3:
- 0: Not available
- 1: Basic/limited
- 2: Good, industry standard
- 3: Excellent, best-in-class

Capabilities to score:
- content_modeling: Schema flexibility, relationships, versioning
- delivery: API quality, headless support, CDN, performance
- personalization: A/B testing, segmentation, real-time targeting
- workflow: Approval flows, RBAC, audit logging
- integrations: CRM, analytics, martech ecosystem
- performance: Page speed, caching, optimization
- operational: Vendor stability, docs quality, support

DOCUMENTATION:
%s

Extract structured data as JSON.`, platform, models.Truncate(rawContent, maxPromptContent))

	resp, err := a.llm.Chat(ctx, prompt, extractionSchema)
	if err != nil {
		return nil, fmt.Errorf("extracting capabilities for %s: %w", platform, err)
	}
	return resp.Content, nil
}

// extractedContent is the defensively decoded shape of an extraction result.
type extractedContent struct {
	Capabilities map[string]int `mapstructure:"capabilities"`
	PricingTier  string         `mapstructure:"pricing_tier"`
	KeyFeatures  []string       `mapstructure:"key_features"`
}

// FetchPlatformData runs the full pipeline for one vendor: scrape, extract,
// package.
func (a *Agent) FetchPlatformData(ctx context.Context, platform string) (*models.VendorData, error) {
	rawContent := a.ScrapeVendor(ctx, platform)

	extracted, err := a.ExtractCapabilities(ctx, platform, rawContent)
	if err != nil {
		return nil, err
	}

	var content extractedContent
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &content,
		WeaklyTypedInput: true,
	})
	if err == nil {
		_ = dec.Decode(extracted)
	}

	pricing := content.PricingTier
	if pricing == "" {
		pricing = "Unknown"
	}

	return &models.VendorData{
		Platform:     platform,
		Capabilities: content.Capabilities,
		PricingInfo:  pricing,
		Features:     content.KeyFeatures,
		SourceURLs:   append([]string(nil), a.docs[strings.ToLower(platform)]...),
		RawContent:   models.Truncate(rawContent, models.MaxRawContent),
	}, nil
}

// FetchAllPlatforms fetches each platform sequentially. A single platform's
// failure is logged and excluded from the result; the batch continues. The
// fetcher is released exactly once when the batch ends.
func (a *Agent) FetchAllPlatforms(ctx context.Context, platforms []string) map[string]models.VendorData {
	results := make(map[string]models.VendorData, len(platforms))
	for _, platform := range platforms {
		data, err := a.FetchPlatformData(ctx, platform)
		if err != nil {
			slog.WarnContext(ctx, "vendor fetch failed, skipping platform",
				"platform", platform, "error", err)
			continue
		}
		results[platform] = *data
	}

	if err := a.fetcher.Close(); err != nil {
		slog.WarnContext(ctx, "failed to release fetcher", "error", err)
	}
	return results
}
