// Package llm normalizes three chat backends (Ollama, OpenAI, Anthropic)
// into one structured-JSON contract: a prompt plus a JSON-schema-shaped
// description of the desired result, answered with parsed structured data.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Response is the unified result of a single Chat call.
type Response struct {
	// Content is the parsed structured payload, shaped by the caller schema.
	Content map[string]any
	// Model is the backend model identifier.
	Model string
	// Provider is one of "ollama", "openai", "anthropic".
	Provider string
	// RawText is the unparsed backend output, kept for diagnostics.
	RawText string
}

// Provider is the uniform capability set over the chat backends.
//
// Chat returns a value intended to conform to the supplied schema. The local
// variant passes the schema natively as a decoding constraint; the cloud
// variants embed it in the prompt, so conformance there is a convention, not
// a guarantee — callers should treat every Content field as optional.
type Provider interface {
	// Name returns a display name including the model.
	Name() string

	// Chat sends a prompt and returns structured data matching schema.
	Chat(ctx context.Context, prompt string, schema map[string]any) (*Response, error)

	// IsAvailable reports whether the backend is usable. Best effort: it
	// never returns an error, internal failures degrade to false.
	IsAvailable(ctx context.Context) bool
}

// Generation settings shared by all variants.
const (
	chatTemperature = 0.7
	chatMaxTokens   = 2000
)

// jsonInstruction wraps a prompt with the schema and a JSON-only directive
// for backends without native structured output.
func jsonInstruction(prompt string, schema map[string]any) (string, error) {
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing schema: %w", err)
	}

	return fmt.Sprintf(`%s

Return your response as valid JSON matching this schema:
%s

Respond ONLY with valid JSON, no other text.`, prompt, schemaJSON), nil
}

// parseContent strips markdown fences, parses the text as a JSON object, and
// checks it against the caller schema. A parse failure is an error; a schema
// mismatch is only logged, since cloud-path conformance is a prompt
// convention and callers decode defensively anyway.
func parseContent(ctx context.Context, provider, raw string, schema map[string]any) (map[string]any, error) {
	cleaned := stripFences(raw)

	var content map[string]any
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("%s: response is not valid JSON: %w", provider, err)
	}

	if failure := checkSchema(content, schema); failure != "" {
		slog.WarnContext(ctx, "llm response does not match requested schema",
			"provider", provider, "failure", failure)
	}
	return content, nil
}

// checkSchema validates value against a JSON-schema map and returns a
// description of the first failure, or "" when the value conforms or the
// schema itself cannot be compiled.
func checkSchema(value any, schema map[string]any) string {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	schemaValue, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return ""
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return ""
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return ""
	}

	if err := compiled.Validate(value); err != nil {
		return err.Error()
	}
	return ""
}

// stripFences removes a wrapping markdown code fence, which some models emit
// even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
