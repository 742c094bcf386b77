package agent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxResponseBytes bounds how much of a page body is read before parsing.
const maxResponseBytes = 2 << 20 // 2 MiB

// skipElements are containers whose text is never page content.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
}

// HTTPFetcher is a plain HTTP Fetcher. It does not execute JavaScript, so
// pages that render content client-side come back sparse; the extraction
// prompt tolerates that by scoring only what the text supports.
type HTTPFetcher struct {
	client *http.Client

	// UserAgent is sent with every request.
	UserAgent string
}

// NewHTTPFetcher creates an HTTPFetcher with its own client.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{},
		UserAgent: "cmseval/1.0 (+https://github.com/cinchlabs/cmseval)",
	}
}

// FetchRenderedText GETs the page and returns its visible text. The selector
// is ignored; plain HTTP has no rendered DOM to query.
func (f *HTTPFetcher) FetchRenderedText(ctx context.Context, url, selector string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	return extractText(body), nil
}

// Close releases the fetcher's idle connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// extractText walks the HTML token stream and collects visible text,
// skipping non-content containers.
func extractText(body []byte) string {
	tokenizer := html.NewTokenizer(strings.NewReader(string(body)))

	var b strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skipElements[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}
