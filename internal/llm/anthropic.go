package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider calls the Anthropic messages API. Like the OpenAI
// variant, structured output is prompt-embedded.
type AnthropicProvider struct {
	client anthropic.Client
	apiKey string
	model  string
}

// NewAnthropicProvider builds a provider with the given credential and model.
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		apiKey: apiKey,
		model:  model,
	}
}

// Name implements [Provider]. The display name abbreviates the model id to
// its third dash-separated segment when the id is long enough.
func (p *AnthropicProvider) Name() string {
	return fmt.Sprintf("Claude (%s)", shortModelName(p.model))
}

// IsAvailable reports whether a credential is configured. No round trip.
func (p *AnthropicProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}

// Chat implements [Provider].
func (p *AnthropicProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*Response, error) {
	jsonPrompt, err := jsonInstruction(prompt, schema)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: chatMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(jsonPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: message failed: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("anthropic: response has no content blocks")
	}
	block := message.Content[0]
	if block.Type != "text" {
		return nil, fmt.Errorf("anthropic: unexpected content block type %q", block.Type)
	}

	raw := block.Text
	content, err := parseContent(ctx, "anthropic", raw, schema)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:  content,
		Model:    p.model,
		Provider: "anthropic",
		RawText:  raw,
	}, nil
}

func shortModelName(model string) string {
	parts := strings.Split(model, "-")
	if len(parts) > 2 {
		return parts[2]
	}
	return model
}
