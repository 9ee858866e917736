package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

var conversationWithHistory = []Message{
	{Role: RoleSystem, Content: "persona"},
	{Role: RoleUser, Content: "first question"},
	{Role: RoleAssistant, Content: "first answer"},
	{Role: RoleSystem, Content: "ignored second system"},
	{Role: RoleUser, Content: "second question"},
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decoding body %s: %v", data, err)
	}
	return m
}

// ============================================================================
// OpenAI
// ============================================================================

func TestOpenAIProvider_Call_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			http.Error(w, "bad auth", http.StatusUnauthorized)
			return
		}
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","model":"gpt-4o-2024","choices":[{"index":0,"message":{"role":"assistant","content":"salut"},"finish_reason":"stop"}],"usage":{"prompt_tokens":7,"completion_tokens":5,"total_tokens":12}}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o", srv.URL, srv.Client())
	res, err := p.Call(context.Background(), conversationWithHistory, CallConfig{Temperature: Temp(0.3), MaxTokens: 256})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res.Content != "salut" || res.Provider != ProviderOpenAI || res.Model != "gpt-4o-2024" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.TokensUsed == nil || *res.TokensUsed != 12 {
		t.Errorf("tokens = %v, want 12", res.TokensUsed)
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != len(conversationWithHistory) {
		t.Fatalf("expected all %d messages passed through, got %d", len(conversationWithHistory), len(msgs))
	}
	if role := msgs[0].(map[string]any)["role"]; role != "system" {
		t.Errorf("first role = %v, want system", role)
	}
	if got["max_tokens"] != float64(256) {
		t.Errorf("max_tokens = %v, want 256", got["max_tokens"])
	}
	if temp, _ := got["temperature"].(float64); temp < 0.29 || temp > 0.31 {
		t.Errorf("temperature = %v, want 0.3", got["temperature"])
	}
}

func TestOpenAIProvider_Call_ZeroTemperatureIsSent(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o", srv.URL, srv.Client())
	if _, err := p.Call(context.Background(), conversationWithHistory, CallConfig{Temperature: Temp(0)}); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	temp, ok := got["temperature"].(float64)
	if !ok {
		t.Fatalf("temperature missing from request: %v", got)
	}
	if temp > 1e-6 {
		t.Errorf("temperature = %v, want ~0", temp)
	}
}

func TestOpenAIProvider_Call_HTTPErrorKeepsBody(t *testing.T) {
	body := `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-bad", "gpt-4o", srv.URL, srv.Client())
	_, err := p.Call(context.Background(), conversationWithHistory, CallConfig{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", httpErr.StatusCode)
	}
	if httpErr.Body != body {
		t.Errorf("body not verbatim: %q", httpErr.Body)
	}
}

func TestOpenAIProvider_Call_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o", url, nil)
	_, err := p.Call(context.Background(), conversationWithHistory, CallConfig{})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

// ============================================================================
// Gemini
// ============================================================================

func TestGeminiProvider_Call_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" || r.Method != http.MethodPost {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		if r.Header.Get("x-goog-api-key") != "gm-key" {
			http.Error(w, "bad key", http.StatusForbidden)
			return
		}
		got = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"bună "},{"text":"ziua"}]},"finishReason":"STOP"}],"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":4,"totalTokenCount":14}}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("gm-key", "gemini-test", srv.URL, srv.Client())
	res, err := p.Call(context.Background(), conversationWithHistory, CallConfig{Temperature: Temp(0.5), MaxTokens: 300})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res.Content != "bună ziua" {
		t.Errorf("content = %q", res.Content)
	}
	if res.Provider != ProviderGemini || res.Model != "gemini-test" {
		t.Errorf("unexpected identity %q/%q", res.Provider, res.Model)
	}
	if res.TokensUsed == nil || *res.TokensUsed != 14 {
		t.Errorf("tokens = %v, want 14", res.TokensUsed)
	}

	sys := got["systemInstruction"].(map[string]any)["parts"].([]any)
	if len(sys) != 1 || sys[0].(map[string]any)["text"] != "persona" {
		t.Errorf("system instruction = %v, want only the first system message", sys)
	}

	contents := got["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("expected 3 conversation entries, got %d", len(contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, c := range contents {
		if role := c.(map[string]any)["role"]; role != wantRoles[i] {
			t.Errorf("contents[%d].role = %v, want %s", i, role, wantRoles[i])
		}
	}

	gen := got["generationConfig"].(map[string]any)
	if gen["maxOutputTokens"] != float64(300) || gen["temperature"] != 0.5 {
		t.Errorf("generationConfig = %v", gen)
	}
}

func TestGeminiProvider_Call_NoUsageMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider("gm-key", "gemini-test", srv.URL, srv.Client())
	res, err := p.Call(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, CallConfig{})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res.TokensUsed != nil {
		t.Errorf("expected no token count, got %d", *res.TokensUsed)
	}
}

func TestGeminiProvider_Call_HTTPErrorKeepsBody(t *testing.T) {
	body := `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	p := NewGeminiProvider("bad", "gemini-test", srv.URL, srv.Client())
	_, err := p.Call(context.Background(), conversationWithHistory, CallConfig{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.Body != body || httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("unexpected error %+v", httpErr)
	}
}

// ============================================================================
// Claude
// ============================================================================

func TestClaudeProvider_Call_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusNotFound)
			return
		}
		if r.Header.Get("x-api-key") != "sk-ant" || r.Header.Get("anthropic-version") != claudeAPIVersion {
			http.Error(w, "bad headers", http.StatusUnauthorized)
			return
		}
		got = decodeBody(t, r)
		io.WriteString(w, `{"model":"claude-test-1","content":[{"type":"text","text":"Salut"},{"type":"text","text":"!"}],"stop_reason":"end_turn","usage":{"input_tokens":30,"output_tokens":12}}`)
	}))
	defer srv.Close()

	p := NewClaudeProvider("sk-ant", "claude-test", srv.URL, srv.Client())
	res, err := p.Call(context.Background(), conversationWithHistory, CallConfig{})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if res.Content != "Salut!" || res.Model != "claude-test-1" || res.Provider != ProviderClaude {
		t.Errorf("unexpected result %+v", res)
	}
	if res.TokensUsed == nil || *res.TokensUsed != 42 {
		t.Errorf("tokens = %v, want input+output = 42", res.TokensUsed)
	}

	if got["system"] != "persona" {
		t.Errorf("system = %v, want persona", got["system"])
	}
	msgs := got["messages"].([]any)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 conversation messages, got %d", len(msgs))
	}
	if role := msgs[1].(map[string]any)["role"]; role != "assistant" {
		t.Errorf("messages[1].role = %v, want assistant", role)
	}
	if got["max_tokens"] != float64(DefaultMaxTokens) || got["temperature"] != DefaultTemperature {
		t.Errorf("defaults not applied: max_tokens=%v temperature=%v", got["max_tokens"], got["temperature"])
	}
}

func TestClaudeProvider_Call_HTTPErrorKeepsBody(t *testing.T) {
	body := `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
		io.WriteString(w, body)
	}))
	defer srv.Close()

	p := NewClaudeProvider("sk-ant", "claude-test", srv.URL, srv.Client())
	_, err := p.Call(context.Background(), conversationWithHistory, CallConfig{})

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != 529 || httpErr.Body != body {
		t.Errorf("unexpected error %+v", httpErr)
	}
}

func TestClaudeProvider_Call_ContextDeadlineIsTransportError(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewClaudeProvider("sk-ant", "claude-test", srv.URL, srv.Client())
	_, err := p.Call(ctx, conversationWithHistory, CallConfig{})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestSplitSystemKeepsFirstOnly(t *testing.T) {
	system, rest := splitSystem(conversationWithHistory)
	if system != "persona" {
		t.Errorf("system = %q", system)
	}
	if len(rest) != 3 {
		t.Errorf("rest has %d messages, want 3", len(rest))
	}
	for _, m := range rest {
		if m.Role == RoleSystem {
			t.Error("system message leaked into conversation")
		}
	}
}
