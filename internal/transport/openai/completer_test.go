package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/explorer/internal/domain"
	"github.com/kailas-cloud/explorer/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterProviderMetrics()
	os.Exit(m.Run())
}

// chatRequest mirrors the fields of the OpenAI-compatible chat completion request we assert on.
type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatResponse(content string) string {
	resp := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "llama-3.1-8b-instant",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 12, "total_tokens": 42},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestCompleter(url string) *Completer {
	return NewCompleter(&Config{
		APIKey:   "  gsk-test\n",
		BaseURL:  url,
		Model:    "llama-3.1-8b-instant",
		Provider: "test",
		Logger:   zap.NewNop(),
	})
}

func TestCompleter_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer gsk-test" {
			t.Errorf("unexpected auth header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("## Mars\n\n- red planet")))
	}))
	defer server.Close()

	result, err := newTestCompleter(server.URL).Complete(context.Background(), "be terse", "Topic: Mars")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result.Text != "## Mars\n\n- red planet" {
		t.Errorf("text = %q, expected verbatim markdown", result.Text)
	}
	if result.TotalTokens != 42 || result.PromptTokens != 30 || result.CompletionTokens != 12 {
		t.Errorf("unexpected usage: %+v", result)
	}

	if got.Model != "llama-3.1-8b-instant" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content != "be terse" {
		t.Errorf("unexpected system message: %+v", got.Messages[0])
	}
	if got.Messages[1].Role != "user" || got.Messages[1].Content != "Topic: Mars" {
		t.Errorf("unexpected user message: %+v", got.Messages[1])
	}
}

func TestCompleter_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid API Key", "type": "invalid_request_error", "code": "invalid_api_key"}}`))
	}))
	defer server.Close()

	_, err := newTestCompleter(server.URL).Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionFailed) {
		t.Fatalf("expected ErrCompletionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "Invalid API Key") {
		t.Errorf("error should carry status and provider message: %v", err)
	}
}

func TestCompleter_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	_, err := newTestCompleter(server.URL).Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionFailed) {
		t.Fatalf("expected ErrCompletionFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestCompleter_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": [], "usage": {}}`))
	}))
	defer server.Close()

	_, err := newTestCompleter(server.URL).Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionFailed) {
		t.Fatalf("expected ErrCompletionFailed, got %v", err)
	}
}

func TestCompleter_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := newTestCompleter(url).Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionFailed) {
		t.Fatalf("expected ErrCompletionFailed, got %v", err)
	}
}

func TestCompleter_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c := NewCompleter(&Config{APIKey: "k", BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionFailed) {
		t.Fatalf("expected ErrCompletionFailed, got %v", err)
	}
}

func TestCompleter_EmptyInput(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := newTestCompleter(server.URL)
	for _, tc := range [][2]string{{"", "u"}, {"s", ""}, {" ", "\n"}} {
		if _, err := c.Complete(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrCompletionFailed) {
			t.Errorf("Complete(%q, %q): expected ErrCompletionFailed, got %v", tc[0], tc[1], err)
		}
	}
	if called {
		t.Error("provider must not be called with empty content")
	}
}

func TestCompleter_Configured(t *testing.T) {
	if !NewCompleter(&Config{APIKey: "k"}).Configured() {
		t.Error("expected configured with key")
	}
	if NewCompleter(&Config{APIKey: "  \n"}).Configured() {
		t.Error("whitespace-only key must count as missing")
	}
}

func TestCompleter_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": [{"id": "llama-3.1-8b-instant", "object": "model"}]}`))
	}))
	defer server.Close()

	if err := newTestCompleter(server.URL).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	unconfigured := NewCompleter(&Config{BaseURL: server.URL})
	if err := unconfigured.HealthCheck(context.Background()); !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"detail": "quota"}`, "quota"},
		{`{"error": {"message": "bad key"}}`, "bad key"},
		{`not json`, ""},
	}
	for _, tc := range tests {
		if got := extractDetail([]byte(tc.body)); got != tc.want {
			t.Errorf("extractDetail(%s) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
