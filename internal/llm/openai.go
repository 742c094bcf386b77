package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider calls the OpenAI chat-completions API. Structured output is
// prompt-embedded: the schema goes into the prompt text and the response is
// parsed back as JSON.
type OpenAIProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIProvider builds a provider with the given credential and model.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultOpenAIBaseURL,
		httpClient: http.DefaultClient,
	}
}

// Name implements [Provider].
func (p *OpenAIProvider) Name() string {
	return fmt.Sprintf("OpenAI (%s)", p.model)
}

// IsAvailable reports whether a credential is configured. No round trip.
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}

type openAIChatRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	ResponseFormat map[string]any  `json:"response_format"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Chat implements [Provider].
func (p *OpenAIProvider) Chat(ctx context.Context, prompt string, schema map[string]any) (*Response, error) {
	jsonPrompt, err := jsonInstruction(prompt, schema)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	body, err := json.Marshal(openAIChatRequest{
		Model:          p.model,
		Messages:       []openAIMessage{{Role: "user", Content: jsonPrompt}},
		ResponseFormat: map[string]any{"type": "json_object"},
		MaxTokens:      chatMaxTokens,
		Temperature:    chatTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: serializing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: reading response: %w", err)
	}

	var parsed openAIChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("openai: unexpected response (HTTP %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: API error (HTTP %d): %s", resp.StatusCode, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: unexpected HTTP status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai: response has no choices")
	}

	raw := parsed.Choices[0].Message.Content
	content, err := parseContent(ctx, "openai", raw, schema)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:  content,
		Model:    p.model,
		Provider: "openai",
		RawText:  raw,
	}, nil
}
