package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"amdchat/pkg/config"
)

func TestOpenRouterProvider_CreateChatCompletion(t *testing.T) {
	var gotPath string
	var gotMethod string
	var gotAuth string
	var gotContentType string
	var gotReferer string
	var gotTitle string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")

		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "gen-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []any{
				map[string]any{
					"index": 0,
					"message": map[string]any{
						"role":      "assistant",
						"content":   "ok",
						"reasoning": "thinking",
					},
					"finish_reason": "stop",
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	cfg := testOpenRouterConfig(server.URL)
	cfg.HTTPReferer = "https://example.com"

	provider, err := NewOpenRouterProvider(cfg)
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error: %v", err)
	}

	resp, err := provider.CreateChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "persona"},
			{Role: "user", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}

	if resp.Content != "ok" {
		t.Fatalf("Expected response content 'ok', got %q", resp.Content)
	}
	if resp.Reasoning != "thinking" {
		t.Fatalf("Expected reasoning 'thinking', got %q", resp.Reasoning)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("Expected POST, got %q", gotMethod)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("Expected path '/chat/completions', got %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("Expected Authorization header, got %q", gotAuth)
	}
	if !strings.HasPrefix(gotContentType, "application/json") {
		t.Fatalf("Expected JSON content type, got %q", gotContentType)
	}
	if gotReferer != "https://example.com" {
		t.Fatalf("Expected HTTP-Referer header, got %q", gotReferer)
	}
	if gotTitle != "AMD ChatBot Support" {
		t.Fatalf("Expected X-Title header, got %q", gotTitle)
	}

	model, _ := gotPayload["model"].(string)
	if model != "test-model" {
		t.Fatalf("Expected model 'test-model', got %q", model)
	}

	messages, ok := gotPayload["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %v", gotPayload["messages"])
	}
	first, ok := messages[0].(map[string]any)
	if !ok {
		t.Fatalf("Expected message object, got %T", messages[0])
	}
	if first["role"] != "system" || first["content"] != "persona" {
		t.Fatalf("Unexpected first message: %v", first)
	}
	second, _ := messages[1].(map[string]any)
	if second["role"] != "user" || second["content"] != "hello" {
		t.Fatalf("Unexpected second message: %v", second)
	}
}

func TestOpenRouterProvider_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream down","code":500}}`))
	}))
	defer server.Close()

	provider, err := NewOpenRouterProvider(testOpenRouterConfig(server.URL))
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error: %v", err)
	}

	_, err = provider.CreateChatCompletion(context.Background(), ChatRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("Expected error for HTTP 500")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("Expected exactly one request, got %d", got)
	}
}

func TestOpenRouterProvider_EmptyChoices(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "empty choices", body: `{"id":"x","choices":[]}`, wantMsg: "response contains no choices"},
		{name: "error body", body: `{"error":{"message":"Rate limit exceeded","code":429}}`, wantMsg: "Rate limit exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newRoundTripProvider(t, func(req *http.Request) (*http.Response, error) {
				return newJSONBodyResponse(req, http.StatusOK, tt.body), nil
			})

			_, err := provider.CreateChatCompletion(context.Background(), ChatRequest{
				Messages: []Message{{Role: "user", Content: "hi"}},
			})
			if !errors.Is(err, ErrNoChoices) {
				t.Fatalf("Expected ErrNoChoices, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error to contain %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestNewOpenRouterProvider_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.OpenRouterConfig)
	}{
		{name: "missing key", mutate: func(c *config.OpenRouterConfig) { c.APIKey = "" }},
		{name: "missing url", mutate: func(c *config.OpenRouterConfig) { c.APIURL = " " }},
		{name: "missing model", mutate: func(c *config.OpenRouterConfig) { c.Model = "" }},
		{name: "bad timeout", mutate: func(c *config.OpenRouterConfig) { c.APITimeoutSeconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testOpenRouterConfig("https://openrouter.test/api/v1")
			tt.mutate(&cfg)
			if _, err := NewOpenRouterProvider(cfg); err == nil {
				t.Fatal("Expected validation error")
			}
		})
	}
}

func TestBuildChatParams(t *testing.T) {
	provider := newRoundTripProvider(t, func(req *http.Request) (*http.Response, error) {
		return nil, nil
	})

	if _, err := provider.buildChatParams(ChatRequest{}); err == nil {
		t.Error("Expected error for empty messages")
	}

	_, err := provider.buildChatParams(ChatRequest{
		Messages: []Message{{Role: "tool", Content: "x"}},
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported role") {
		t.Errorf("Expected unsupported role error, got %v", err)
	}

	params, err := provider.buildChatParams(ChatRequest{
		Model:    "override",
		Messages: []Message{{Role: "USER", Content: "x"}},
	})
	if err != nil {
		t.Fatalf("buildChatParams() error: %v", err)
	}
	if string(params.Model) != "override" {
		t.Errorf("Expected model override, got %q", params.Model)
	}
}
