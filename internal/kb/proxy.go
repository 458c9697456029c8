package kb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// Proxy actions sent in the request body.
const (
	actionQuery   = "query"
	actionRelated = "related"
	actionSearch  = "search"
)

// ProxyClient talks to the notebook proxy. Every operation is a POST of
// {notebookId, action, text} to the same endpoint; replies are treated
// as opaque and unversioned.
type ProxyClient struct {
	client   *resty.Client
	endpoint string
	notebook string
}

// NewProxyClient creates a client for cfg.Endpoint.
func NewProxyClient(cfg Config) *ProxyClient {
	c := resty.New().
		SetHeader("Accept", "application/json, text/plain").
		SetHeader("User-Agent", "sonoprep")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	notebook := cfg.Notebook
	if notebook == "" {
		notebook = DefaultNotebook
	}
	return &ProxyClient{client: c, endpoint: cfg.Endpoint, notebook: notebook}
}

type proxyRequest struct {
	NotebookID string `json:"notebookId"`
	Action     string `json:"action"`
	Text       string `json:"text"`
}

func (p *ProxyClient) post(ctx context.Context, action, text string) ([]byte, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(proxyRequest{NotebookID: p.notebook, Action: action, Text: text}).
		Post(p.endpoint)
	if err != nil {
		return nil, remoteErr(action, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%s: %w", action, &RemoteError{
			Status: resp.StatusCode(),
			Body:   truncate(strings.TrimSpace(resp.String()), 200),
		})
	}
	return bytes.TrimSpace(resp.Body()), nil
}

// Query asks the notebook a question.
func (p *ProxyClient) Query(ctx context.Context, question string) (*Answer, error) {
	body, err := p.post(ctx, actionQuery, question)
	if err != nil {
		return nil, err
	}
	ans, err := parseAnswer(body)
	if err != nil {
		return nil, remoteErr(actionQuery, err)
	}
	return ans, nil
}

// RelatedContent lists notebook material related to topic.
func (p *ProxyClient) RelatedContent(ctx context.Context, topic string) ([]Snippet, error) {
	body, err := p.post(ctx, actionRelated, topic)
	if err != nil {
		return nil, err
	}
	snippets, err := parseSnippets(body)
	if err != nil {
		return nil, remoteErr(actionRelated, err)
	}
	return snippets, nil
}

// Search finds notebook material mentioning term.
func (p *ProxyClient) Search(ctx context.Context, term string) ([]Snippet, error) {
	body, err := p.post(ctx, actionSearch, term)
	if err != nil {
		return nil, err
	}
	snippets, err := parseSnippets(body)
	if err != nil {
		return nil, remoteErr(actionSearch, err)
	}
	return snippets, nil
}

var errEmptyReply = errors.New("empty reply")

// parseAnswer accepts {"answer": ..., "sources": [...]}, a bare JSON
// string, or plain text.
func parseAnswer(body []byte) (*Answer, error) {
	if len(body) == 0 {
		return nil, errEmptyReply
	}

	switch body[0] {
	case '{':
		var obj struct {
			Answer   string `json:"answer"`
			Response string `json:"response"`
			Text     string `json:"text"`
			Error    string `json:"error"`
			Sources  []any  `json:"sources"`
		}
		if err := json.Unmarshal(body, &obj); err != nil {
			break
		}
		text := firstNonEmpty(obj.Answer, obj.Response, obj.Text)
		if text == "" {
			if obj.Error != "" {
				return nil, errors.New(obj.Error)
			}
			return nil, errEmptyReply
		}
		return &Answer{Text: text, Sources: sourceNames(obj.Sources)}, nil
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			if strings.TrimSpace(s) == "" {
				return nil, errEmptyReply
			}
			return &Answer{Text: s}, nil
		}
	}
	return &Answer{Text: string(body)}, nil
}

// parseSnippets accepts a bare array or {"results": [...]}.
func parseSnippets(body []byte) ([]Snippet, error) {
	if len(body) == 0 {
		return nil, errEmptyReply
	}

	var out []Snippet
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	case '{':
		var wrapped struct {
			Results []Snippet `json:"results"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		out = wrapped.Results
	default:
		return nil, fmt.Errorf("unexpected reply: %s", truncate(string(body), 80))
	}
	if out == nil {
		out = []Snippet{}
	}
	return out, nil
}

// sourceNames keeps string sources as-is and uses the title of object
// sources.
func sourceNames(raw []any) []string {
	var out []string
	for _, s := range raw {
		switch v := s.(type) {
		case string:
			out = append(out, v)
		case map[string]any:
			if t, ok := v["title"].(string); ok && t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
