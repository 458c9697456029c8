package kb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sonoprep/internal/llm"
)

func newProxy(t *testing.T, handler http.HandlerFunc) *ProxyClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProxyClient(Config{Endpoint: srv.URL, Notebook: "nb-1", Timeout: 5 * time.Second})
}

func reply(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

func TestProxyClient_QuerySendsNotebookAndAction(t *testing.T) {
	var got proxyRequest
	var method string
	p := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(200, "application/json", `{"answer":"c = f x wavelength","sources":["Ch. 2",{"title":"Waves"}]}`)(w, r)
	})

	ans, err := p.Query(context.Background(), "What is the wave equation?")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, proxyRequest{NotebookID: "nb-1", Action: "query", Text: "What is the wave equation?"}, got)
	assert.Equal(t, "c = f x wavelength", ans.Text)
	assert.Equal(t, []string{"Ch. 2", "Waves"}, ans.Sources)
}

func TestProxyClient_QueryReplyShapes(t *testing.T) {
	tests := []struct {
		name string
		ct   string
		body string
		want string
	}{
		{"plain text", "text/plain", "Higher frequency, shorter wavelength.", "Higher frequency, shorter wavelength."},
		{"json string", "application/json", `"Impedance = density x speed"`, "Impedance = density x speed"},
		{"response field", "application/json", `{"response":"1540 m/s"}`, "1540 m/s"},
		{"broken json is text", "application/json", `{oops`, `{oops`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProxy(t, reply(200, tt.ct, tt.body))
			ans, err := p.Query(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ans.Text)
		})
	}
}

func TestProxyClient_QueryEmptyIsRemoteFailure(t *testing.T) {
	p := newProxy(t, reply(200, "application/json", `{"error":"notebook offline"}`))
	_, err := p.Query(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteService)
	assert.Contains(t, err.Error(), "notebook offline")
}

func TestProxyClient_Non2xx(t *testing.T) {
	p := newProxy(t, reply(http.StatusBadGateway, "text/plain", "upstream down"))

	_, err := p.Query(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteService)

	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusBadGateway, re.Status)
	assert.Equal(t, "upstream down", re.Body)
}

func TestProxyClient_Non2xxMultibyteBody(t *testing.T) {
	// Byte 200 falls inside a "µ".
	body := strings.Repeat("aµ", 100)
	p := newProxy(t, reply(http.StatusBadGateway, "text/plain", body))

	_, err := p.Query(context.Background(), "q")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.True(t, utf8.ValidString(re.Body))
	assert.True(t, strings.HasSuffix(re.Body, "..."))
	assert.LessOrEqual(t, len(re.Body), 203)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	// "µ" is two bytes; a cut inside it backs off to the rune start.
	assert.Equal(t, "a...", truncate("aµb", 2))
	assert.Equal(t, "aµ...", truncate("aµb", 3))
}

func TestProxyClient_Snippets(t *testing.T) {
	var actions []string
	p := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		var req proxyRequest
		json.NewDecoder(r.Body).Decode(&req)
		actions = append(actions, req.Action)
		if req.Action == "related" {
			reply(200, "application/json", `[{"title":"Snell's law","snippet":"Refraction at oblique incidence."}]`)(w, r)
			return
		}
		reply(200, "application/json", `{"results":[{"title":"Mirror image","snippet":"Strong specular reflector."},{"title":"Ring down","snippet":"Gas bubbles."}]}`)(w, r)
	})

	related, err := p.RelatedContent(context.Background(), "refraction")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "Snell's law", related[0].Title)

	hits, err := p.Search(context.Background(), "artifact")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	assert.Equal(t, []string{"related", "search"}, actions)
}

func TestProxyClient_SnippetsRejectText(t *testing.T) {
	p := newProxy(t, reply(200, "text/plain", "no results"))
	_, err := p.Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrRemoteService)
}

func TestProxyClient_Cancelled(t *testing.T) {
	p := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Query(ctx, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteService)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLLMClient(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockJSON(map[string]any{"answer": " The pulse repeats every PRP. ", "sources": []string{"Pulsed ultrasound"}}),
		llm.MockJSON(map[string]any{"results": []map[string]string{{"title": "Duty factor", "snippet": "Fraction of time transmitting."}}}),
		llm.MockJSON(map[string]any{"results": []map[string]string{}}),
	)
	c := NewLLMClient(mock)

	ans, err := c.Query(context.Background(), "What is PRP?")
	require.NoError(t, err)
	assert.Equal(t, "The pulse repeats every PRP.", ans.Text)
	assert.Equal(t, []string{"Pulsed ultrasound"}, ans.Sources)
	assert.Equal(t, AnswerSchema, mock.Calls[0].Schema)

	related, err := c.RelatedContent(context.Background(), "PRF")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "Duty factor", related[0].Title)

	hits, err := c.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestLLMClient_ProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := NewLLMClient(mock).Query(context.Background(), "q")
	assert.ErrorIs(t, err, ErrRemoteService)

	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestNew(t *testing.T) {
	mock := llm.NewMockProvider()

	svc, err := New(Config{Backend: "auto", Endpoint: "http://kb.local"}, mock)
	require.NoError(t, err)
	assert.IsType(t, &ProxyClient{}, svc)

	svc, err = New(Config{Backend: "auto"}, mock)
	require.NoError(t, err)
	assert.IsType(t, &LLMClient{}, svc)

	_, err = New(Config{Backend: "auto"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(Config{Backend: "proxy"}, mock)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(Config{Backend: "carrier-pigeon"}, mock)
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SONOPREP_KB_BACKEND", "proxy")
	t.Setenv("SONOPREP_KB_ENDPOINT", "http://kb.local/api")
	t.Setenv("SONOPREP_KB_NOTEBOOK", "")
	t.Setenv("SONOPREP_KB_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, "proxy", cfg.Backend)
	assert.Equal(t, "http://kb.local/api", cfg.Endpoint)
	assert.Equal(t, DefaultNotebook, cfg.Notebook)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}
