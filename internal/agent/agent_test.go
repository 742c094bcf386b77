package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cinchlabs/cmseval/internal/llm"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned page text per URL and counts Close calls.
type fakeFetcher struct {
	pages      map[string]string
	errs       map[string]error
	closeCount int
}

func (f *fakeFetcher) FetchRenderedText(ctx context.Context, url, selector string, timeout time.Duration) (string, error) {
	if err, ok := f.errs[url]; ok {
		return "", err
	}
	return f.pages[url], nil
}

func (f *fakeFetcher) Close() error {
	f.closeCount++
	return nil
}

type fakeProvider struct {
	content    map[string]any
	err        error
	lastPrompt string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*llm.Response, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content, Model: "m", Provider: "fake", RawText: "{}"}, nil
}

func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func testDocs() map[string][]string {
	return map[string][]string{
		"contentful": {"https://example.test/features", "https://example.test/pricing"},
	}
}

func TestScrapeVendor_ConcatenatesLabeledBlocks(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.test/features": "feature text",
		"https://example.test/pricing":  "pricing text",
	}}
	a := New(&fakeProvider{}, fetcher, testDocs())

	out := a.ScrapeVendor(t.Context(), "Contentful")
	require.Contains(t, out, "=== Source: https://example.test/features ===\nfeature text")
	require.Contains(t, out, "=== Source: https://example.test/pricing ===\npricing text")
}

func TestScrapeVendor_UnknownVendorPlaceholder(t *testing.T) {
	a := New(&fakeProvider{}, &fakeFetcher{}, testDocs())
	out := a.ScrapeVendor(t.Context(), "wordpress")
	require.Equal(t, "No known documentation URLs for wordpress", out)
}

func TestScrapeVendor_PageErrorInline(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string]string{"https://example.test/pricing": "pricing"},
		errs:  map[string]error{"https://example.test/features": errors.New("timeout")},
	}
	a := New(&fakeProvider{}, fetcher, testDocs())

	out := a.ScrapeVendor(t.Context(), "contentful")
	require.Contains(t, out, "Error scraping https://example.test/features: timeout")
	require.Contains(t, out, "pricing")
}

func TestScrapeVendor_PageContentCapped(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.test/features": strings.Repeat("x", maxPageContent+500),
		"https://example.test/pricing":  "short",
	}}
	a := New(&fakeProvider{}, fetcher, testDocs())

	out := a.ScrapeVendor(t.Context(), "contentful")
	require.Less(t, len(out), 2*maxPageContent)
}

func TestExtractCapabilities_TruncatesPrompt(t *testing.T) {
	provider := &fakeProvider{content: map[string]any{"capabilities": map[string]any{}}}
	a := New(provider, &fakeFetcher{}, testDocs())

	_, err := a.ExtractCapabilities(t.Context(), "contentful", strings.Repeat("y", maxPromptContent+4000))
	require.NoError(t, err)
	require.Less(t, len(provider.lastPrompt), maxPromptContent+2000)
	require.Contains(t, provider.lastPrompt, "Score each capability from 0-3")
}

func TestFetchPlatformData(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.test/features": "big feature list",
		"https://example.test/pricing":  "from $300/mo",
	}}
	provider := &fakeProvider{content: map[string]any{
		"capabilities": map[string]any{"delivery": 3, "workflow": 2},
		"pricing_tier": "mid-market",
		"key_features": []any{"GraphQL API", "CDN"},
	}}
	a := New(provider, fetcher, testDocs())

	data, err := a.FetchPlatformData(t.Context(), "contentful")
	require.NoError(t, err)
	require.Equal(t, "contentful", data.Platform)
	require.Equal(t, map[string]int{"delivery": 3, "workflow": 2}, data.Capabilities)
	require.Equal(t, "mid-market", data.PricingInfo)
	require.Equal(t, []string{"GraphQL API", "CDN"}, data.Features)
	require.Equal(t, testDocs()["contentful"], data.SourceURLs)
	require.Contains(t, data.RawContent, "big feature list")
}

func TestFetchPlatformData_Defaults(t *testing.T) {
	provider := &fakeProvider{content: map[string]any{}}
	a := New(provider, &fakeFetcher{}, testDocs())

	data, err := a.FetchPlatformData(t.Context(), "contentful")
	require.NoError(t, err)
	require.Equal(t, "Unknown", data.PricingInfo)
	require.Empty(t, data.Capabilities)
}

func TestFetchPlatformData_RawContentBounded(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://example.test/features": strings.Repeat("z", 14000),
		"https://example.test/pricing":  strings.Repeat("z", 14000),
	}}
	provider := &fakeProvider{content: map[string]any{}}
	a := New(provider, fetcher, testDocs())

	data, err := a.FetchPlatformData(t.Context(), "contentful")
	require.NoError(t, err)
	require.LessOrEqual(t, len(data.RawContent), 5000)
}

func TestFetchAllPlatforms_IsolatesFailures(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	provider := &fakeProvider{content: map[string]any{}}
	docs := map[string][]string{
		"good":  {"https://example.test/good"},
		"bad":   {"https://example.test/bad"},
		"other": {"https://example.test/other"},
	}
	a := New(&flakyProvider{inner: provider, failFor: "bad"}, fetcher, docs)

	results := a.FetchAllPlatforms(t.Context(), []string{"good", "bad", "other"})
	require.Len(t, results, 2)
	require.Contains(t, results, "good")
	require.NotContains(t, results, "bad")
	require.Equal(t, 1, fetcher.closeCount, "fetcher must be released exactly once")
}

// flakyProvider fails extraction only for prompts mentioning failFor.
type flakyProvider struct {
	inner   *fakeProvider
	failFor string
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*llm.Response, error) {
	if strings.Contains(prompt, f.failFor) {
		return nil, errors.New("backend unreachable")
	}
	return f.inner.Chat(ctx, prompt, schema)
}

func (f *flakyProvider) IsAvailable(ctx context.Context) bool { return true }
