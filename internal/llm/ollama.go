package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaProvider talks to a local Ollama server. It is the only variant with
// native structured output: the caller schema is passed as the chat format
// constraint.
type OllamaProvider struct {
	client *api.Client
	model  string
	host   string
}

// NewOllamaProvider builds a provider for the given model and server host.
func NewOllamaProvider(model, host string) (*OllamaProvider, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid host %q: %w", host, err)
	}

	return &OllamaProvider{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
		host:   host,
	}, nil
}

// Name implements [Provider].
func (p *OllamaProvider) Name() string {
	return fmt.Sprintf("Ollama (%s)", p.model)
}

// IsAvailable checks live connectivity with a model-listing round trip. The
// model itself may still need to be pulled; any reachable server with at
// least one model counts as available.
func (p *OllamaProvider) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	list, err := p.client.List(ctx)
	if err != nil {
		return false
	}

	want := baseModelName(p.model)
	for _, m := range list.Models {
		if baseModelName(m.Name) == want {
			return true
		}
	}
	return len(list.Models) > 0
}

// Chat implements [Provider].
func (p *OllamaProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*Response, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("ollama: serializing schema: %w", err)
	}

	stream := false
	req := &api.ChatRequest{
		Model: p.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Format: json.RawMessage(schemaJSON),
		Stream: &stream,
		Options: map[string]any{
			"temperature": chatTemperature,
			"num_predict": chatMaxTokens,
		},
	}

	var raw string
	err = p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		raw = resp.Message.Content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: chat failed: %w", err)
	}

	content, err := parseContent(ctx, "ollama", raw, schema)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:  content,
		Model:    p.model,
		Provider: "ollama",
		RawText:  raw,
	}, nil
}

// baseModelName drops a ":tag" suffix, so "llama3.1:8b" matches "llama3.1".
func baseModelName(name string) string {
	base, _, _ := strings.Cut(name, ":")
	return base
}
