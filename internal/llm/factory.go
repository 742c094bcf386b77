package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Hardcoded fallbacks, the lowest rung of the explicit > env > default
// precedence ladder.
const (
	DefaultOllamaModel    = "llama3.1"
	DefaultOllamaHost     = "http://localhost:11444"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"
)

// Options carries free-form provider configuration. Zero-valued fields fall
// back to environment variables, then to hardcoded defaults.
type Options struct {
	Model  string
	Host   string
	APIKey string
}

// New returns the provider for the given type tag: "ollama", "openai", or
// "anthropic" (alias "claude"). An unknown tag is a configuration error,
// never a silent default.
func New(providerType string, opts Options) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(providerType)) {
	case "ollama":
		model := firstOf(opts.Model, os.Getenv("OLLAMA_MODEL"), DefaultOllamaModel)
		host := firstOf(opts.Host, os.Getenv("OLLAMA_HOST"), DefaultOllamaHost)
		return NewOllamaProvider(model, host)
	case "openai":
		apiKey := firstOf(opts.APIKey, os.Getenv("OPENAI_API_KEY"))
		model := firstOf(opts.Model, os.Getenv("OPENAI_MODEL"), DefaultOpenAIModel)
		return NewOpenAIProvider(apiKey, model), nil
	case "anthropic", "claude":
		apiKey := firstOf(opts.APIKey, os.Getenv("ANTHROPIC_API_KEY"))
		model := firstOf(opts.Model, DefaultAnthropicModel)
		return NewAnthropicProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q: must be ollama, openai, or anthropic", providerType)
	}
}

// Available reports best-effort availability for every provider type under
// default configuration.
func Available(ctx context.Context) map[string]bool {
	result := make(map[string]bool, 3)
	for _, tag := range []string{"ollama", "openai", "anthropic"} {
		p, err := New(tag, Options{})
		if err != nil {
			result[tag] = false
			continue
		}
		result[tag] = p.IsAvailable(ctx)
	}
	return result
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
