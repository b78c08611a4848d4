package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"finish_reason": "stop",
				"message":       map[string]any{"content": content},
			},
		},
	}
}

func TestClientCompleteSendsSamplingSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["max_tokens"] != float64(300) || req["temperature"] != 0.8 {
			t.Errorf("unexpected sampling settings %v", req)
		}
		if _, ok := req["response_format"]; ok {
			t.Errorf("free-text completion must not request json mode: %v", req)
		}
		messages, _ := req["messages"].([]any)
		if len(messages) != 2 {
			t.Errorf("expected system+user messages, got %v", messages)
		}
		_ = json.NewEncoder(w).Encode(chatResponse("  gm fam, wild week  "))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo", MaxTokens: 300, Temperature: 0.8})
	got, err := client.Complete(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "gm fam, wild week" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestClientCompleteRequiresKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Complete(context.Background(), "s", "u"); err == nil || !strings.Contains(err.Error(), "api key") {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestClientHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if _, ok := req["response_format"]; !ok {
			t.Errorf("health check should request json mode")
		}
		_ = json.NewEncoder(w).Encode(chatResponse("```json\n{\"ok\":true}\n```"))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL, Model: "demo"})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestClientHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: server.URL, Model: "demo"})
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check to fail")
	}
}

func TestClientDeltaAndLegacyTextFallbacks(t *testing.T) {
	responses := []map[string]any{
		{"choices": []any{map[string]any{"delta": map[string]any{"content": "from delta"}}}},
		{"choices": []any{map[string]any{"text": "from text"}}},
	}
	for _, payload := range responses {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(payload)
		}))
		client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
		got, err := client.Complete(context.Background(), "s", "u")
		server.Close()
		if err != nil {
			t.Fatalf("Complete returned error: %v", err)
		}
		if !strings.HasPrefix(got, "from ") {
			t.Fatalf("unexpected content %q", got)
		}
	}
}

func TestClientSendsSingleRequestOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "http 503") {
		t.Fatalf("expected http 503 error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
}

func TestClientEmptyContentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse(""))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "s", "u")
	if !IsEmptyContent(err) {
		t.Fatalf("expected empty content error, got %v", err)
	}
	if !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected snippet in %v", err)
	}
}

func TestDecodeLLMJSONExtractsObject(t *testing.T) {
	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := DecodeLLMJSON(`Sure! {"ok": true} hope that helps`, &parsed); err != nil {
		t.Fatalf("DecodeLLMJSON: %v", err)
	}
	if !parsed.OK {
		t.Fatal("expected ok=true")
	}
	if err := DecodeLLMJSON("", &parsed); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
