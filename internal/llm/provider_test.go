package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("second"),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "second" {
		t.Fatalf("expected text 'second', got %q", resp2.Text())
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"name": "only"}))
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockText("ok"))

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{`"plain reply"`, "plain reply"},
		{`{"answer":"x"}`, `{"answer":"x"}`},
		{`not json at all`, "not json at all"},
	}
	for _, tt := range tests {
		r := &Response{Content: json.RawMessage(tt.content)}
		if got := r.Text(); got != tt.want {
			t.Errorf("Text(%s) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnspecified {
		t.Fatalf("expected %q, got %q", PurposeUnspecified, p)
	}

	ctx = WithPurpose(ctx, PurposeTutor)
	if p := PurposeFrom(ctx); p != "tutor" {
		t.Fatalf("expected 'tutor', got %q", p)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped deadline", &ErrProviderUnavailable{Err: context.DeadlineExceeded}, false},
		{"max tokens", &ErrMaxTokensExceeded{}, false},
		{"not configured", ErrNotConfigured, false},
		{"rate limit", &ErrRateLimit{}, true},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("502")}, true},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Fatalf("IsTransient = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SONOPREP_LLM_PROVIDER", "SONOPREP_ANTHROPIC_API_KEY", "SONOPREP_OPENAI_API_KEY",
		"SONOPREP_GEMINI_API_KEY", "SONOPREP_OPENROUTER_API_KEY", "SONOPREP_LLM_TIMEOUT",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("SONOPREP_LLM_PROVIDER", "openai")
	t.Setenv("SONOPREP_OPENAI_API_KEY", "sk-env")
	t.Setenv("SONOPREP_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("SONOPREP_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Timeout.Seconds() != 45 {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("falls back to discovery", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, err := ResolveConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		_, err := ResolveConfig()
		if !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("explicit provider without key is an error", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("SONOPREP_LLM_PROVIDER", "anthropic")
		t.Setenv("GEMINI_API_KEY", "g-key")
		_, err := ResolveConfig()
		if err == nil || errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestNewProvider_Mock(t *testing.T) {
	repo := &fakeEventRepo{}
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Retry: RetryConfig{MaxAttempts: 1}}, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}
	// The factory's mock has an empty queue, so the call fails and is logged.
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error from empty mock")
	}
	if len(repo.events) != 1 || repo.events[0].Provider != "mock" {
		t.Fatalf("events = %+v", repo.events)
	}
}
