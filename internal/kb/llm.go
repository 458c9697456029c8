package kb

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/sonoprep/internal/llm"
)

// AnswerSchema is the structured reply to a Query.
var AnswerSchema = &llm.Schema{
	Name:        "kb-answer",
	Description: "An answer to an ultrasound physics question with its sources",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "Direct answer in 2-6 sentences, with formulas in plain text",
			},
			"sources": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "0-3 textbook chapters or concepts the answer draws on",
			},
		},
		"required":             []any{"answer", "sources"},
		"additionalProperties": false,
	},
}

// SnippetsSchema is the structured reply to RelatedContent and Search.
var SnippetsSchema = &llm.Schema{
	Name:        "kb-snippets",
	Description: "Short study snippets related to a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":   map[string]any{"type": "string", "description": "Concept name (2-6 words)"},
						"snippet": map[string]any{"type": "string", "description": "One or two sentence summary"},
					},
					"required":             []any{"title", "snippet"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"results"},
		"additionalProperties": false,
	},
}

const kbSystemPrompt = `You are a study assistant for the Sonography Principles and Instrumentation (SPI) exam. Answer accurately and concisely. Use plain ASCII for formulas (e.g. "wavelength = c / f"). If a question is outside ultrasound physics, say so briefly.`

// LLMClient answers knowledge-base operations with an LLM.
type LLMClient struct {
	provider llm.Provider
}

// NewLLMClient wraps provider.
func NewLLMClient(provider llm.Provider) *LLMClient {
	return &LLMClient{provider: provider}
}

// Query answers question.
func (c *LLMClient) Query(ctx context.Context, question string) (*Answer, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeKBQuery)
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      kbSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: question}},
		Schema:      AnswerSchema,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, remoteErr(actionQuery, err)
	}

	var ans Answer
	if err := resp.Decode(&ans); err != nil {
		return nil, remoteErr(actionQuery, err)
	}
	ans.Text = strings.TrimSpace(ans.Text)
	return &ans, nil
}

// RelatedContent lists study snippets related to topic.
func (c *LLMClient) RelatedContent(ctx context.Context, topic string) ([]Snippet, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeKBRelated)
	prompt := fmt.Sprintf("List 3-5 SPI exam concepts closely related to %q. For each, give a title and a one or two sentence snippet.", topic)
	return c.snippets(ctx, actionRelated, prompt)
}

// Search finds concepts that mention term.
func (c *LLMClient) Search(ctx context.Context, term string) ([]Snippet, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeKBSearch)
	prompt := fmt.Sprintf("Find up to 5 SPI exam concepts where %q plays a role. For each, give a title and a one or two sentence snippet showing how it is used.", term)
	return c.snippets(ctx, actionSearch, prompt)
}

func (c *LLMClient) snippets(ctx context.Context, op, prompt string) ([]Snippet, error) {
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      kbSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      SnippetsSchema,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, remoteErr(op, err)
	}

	var out struct {
		Results []Snippet `json:"results"`
	}
	if err := resp.Decode(&out); err != nil {
		return nil, remoteErr(op, err)
	}
	if out.Results == nil {
		out.Results = []Snippet{}
	}
	return out.Results, nil
}
