package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the core abstraction for LLM interaction. The tutor and the
// LLM-backed knowledge base both talk to a Provider.
type Provider interface {
	// Generate sends a prompt to the LLM. When req.Schema is set the
	// response Content is JSON validated against it; otherwise Content is
	// the reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history, oldest first. The tutor sends
	// its whole transcript; single-shot lookups send one user message.
	Messages []Message

	// Schema, when set, asks the provider for structured output.
	Schema *Schema

	// MaxTokens caps the response length. Zero means DefaultMaxTokens.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0.
	Temperature float64
}

// DefaultMaxTokens is used when a Request leaves MaxTokens at zero.
const DefaultMaxTokens = 1024

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, e.g. "kb-answer". It doubles as the
	// cache key for compiled validators, so it must be unique per shape.
	Name string

	// Description is sent to the LLM alongside the schema.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is validated JSON for schema requests, or a JSON string
	// holding the reply text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Decode unmarshals Content into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// Text returns the reply text of a plain (schema-less) response. Content
// that is not a JSON string is returned verbatim.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finishContent turns raw model output into Response content: schema
// requests are validated, plain text is wrapped as a JSON string.
func finishContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	content := json.RawMessage(text)
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
