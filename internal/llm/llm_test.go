package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MockProvider is a test provider that records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CompletionRequest
	Response *CompletionResponse
	Err      error
	ProvName string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		ProvName: name,
		Response: &CompletionResponse{
			Content:      "mock response",
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// --- Helpers ---

func userRequest(content string) CompletionRequest {
	return CompletionRequest{Messages: []Message{{Role: RoleUser, Content: content}}}
}

// jsonServer responds to every request with the given status and body.
func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// closedServerURL returns the URL of a server that is no longer listening.
func closedServerURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

// --- Tests ---

func TestMockProviderRecordsCalls(t *testing.T) {
	mock := NewMockProvider("test")

	req := userRequest("hello")
	req.Model = "test-model"

	resp, err := mock.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "mock response" {
		t.Errorf("expected 'mock response', got %q", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].Model != "test-model" {
		t.Errorf("expected model 'test-model', got %q", mock.Calls[0].Model)
	}
}

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	for _, p := range []string{"openai", "openrouter", "anthropic"} {
		_, err := NewProvider(ProviderConfig{Type: p, Model: "some-model"})
		if err == nil {
			t.Errorf("expected error for provider %q with missing API key", p)
		}
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Type: "unknown", Model: "some-model", APIKey: "k"})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryCreatesProviders(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"openai", "openai"},
		{"openrouter", "openrouter"},
		{"anthropic", "anthropic"},
		{"ollama", "ollama"},
	}
	for _, tt := range tests {
		provider, err := NewProvider(ProviderConfig{Type: tt.typ, Model: "m", APIKey: "test-key"})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.typ, err)
		}
		if provider.Name() != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, provider.Name())
		}
	}
}

func TestFactoryCreatesOllamaWithDefaultHost(t *testing.T) {
	provider, err := NewProvider(ProviderConfig{Type: "ollama", Model: "llama3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ollamaP, ok := provider.(*OllamaProvider)
	if !ok {
		t.Fatal("expected *OllamaProvider")
	}
	if ollamaP.baseURL != defaultOllamaHost {
		t.Errorf("expected default host, got %q", ollamaP.baseURL)
	}
}

func TestOpenAIProviderSendsSingleUserTurn(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var path, auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"model":"gpt-3.5-turbo","choices":[{"index":0,"message":{"role":"assistant","content":"4"},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":1}}`)
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-3.5-turbo", srv.URL+"/v1")
	resp, err := p.Complete(context.Background(), userRequest("What is 2+2?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/v1/chat/completions" {
		t.Errorf("unexpected path %q", path)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("unexpected Authorization header %q", auth)
	}
	if got.Model != "gpt-3.5-turbo" {
		t.Errorf("expected default model, got %q", got.Model)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "What is 2+2?" {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
	if resp.Content != "4" {
		t.Errorf("expected content %q, got %q", "4", resp.Content)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 1 {
		t.Errorf("unexpected usage: in=%d out=%d", resp.InputTokens, resp.OutputTokens)
	}
}

func TestOpenAIProviderClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"auth", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`, ErrAuthentication},
		{"rate limit", http.StatusTooManyRequests, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`, ErrRateLimit},
		{"server", http.StatusInternalServerError, `{"error":{"message":"The server had an error","type":"server_error"}}`, ErrServer},
		{"non-json error body", http.StatusBadGateway, `<html>bad gateway</html>`, ErrServer},
		{"empty choices", http.StatusOK, `{"model":"gpt-3.5-turbo","choices":[]}`, ErrMalformedResponse},
		{"empty content", http.StatusOK, `{"model":"gpt-3.5-turbo","choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`, ErrMalformedResponse},
		{"null content", http.StatusOK, `{"model":"gpt-3.5-turbo","choices":[{"index":0,"message":{"role":"assistant","content":null}}]}`, ErrMalformedResponse},
		{"garbage body", http.StatusOK, `not json`, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, tt.body)
			p := NewOpenAIProvider("sk-test", "gpt-3.5-turbo", srv.URL+"/v1")

			_, err := p.Complete(context.Background(), userRequest("Hello"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if Classify(err) != tt.want {
				t.Errorf("Classify = %v, want %v", Classify(err), tt.want)
			}
		})
	}
}

func TestOpenAIProviderNetworkFailure(t *testing.T) {
	p := NewOpenAIProvider("sk-test", "gpt-3.5-turbo", closedServerURL()+"/v1")

	_, err := p.Complete(context.Background(), userRequest("Hello"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestOpenRouterUsesOpenAIWireFormat(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`)
	p := NewOpenRouterProvider("or-key", "openai/gpt-3.5-turbo", srv.URL)

	resp, err := p.Complete(context.Background(), userRequest("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "hi" {
		t.Errorf("expected %q, got %q", "hi", resp.Content)
	}
	if p.Name() != "openrouter" {
		t.Errorf("expected name openrouter, got %q", p.Name())
	}
}

func TestAnthropicProviderSuccess(t *testing.T) {
	var apiKey, version string
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		apiKey = r.Header.Get("x-api-key")
		version = r.Header.Get("anthropic-version")
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hello "},{"type":"text","text":"there"}],"model":"claude","stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`)
	}))
	defer srv.Close()

	p := NewAnthropicProvider("ak", "claude", srv.URL)
	resp, err := p.Complete(context.Background(), userRequest("Hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "Hello there" {
		t.Errorf("unexpected content %q", resp.Content)
	}
	if apiKey != "ak" || version == "" {
		t.Errorf("missing auth headers: key=%q version=%q", apiKey, version)
	}
	if got.MaxTokens != 4096 {
		t.Errorf("expected default max_tokens 4096, got %d", got.MaxTokens)
	}
}

func TestAnthropicProviderClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"auth", http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, ErrAuthentication},
		{"rate limit", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, ErrRateLimit},
		{"overloaded", 529, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, ErrServer},
		{"no text", http.StatusOK, `{"content":[],"model":"claude"}`, ErrMalformedResponse},
		{"empty text block", http.StatusOK, `{"content":[{"type":"text","text":""}],"model":"claude"}`, ErrMalformedResponse},
		{"tool use only", http.StatusOK, `{"content":[{"type":"tool_use","id":"t1","name":"x","input":{}}],"model":"claude"}`, ErrMalformedResponse},
		{"garbage", http.StatusOK, `{{{`, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, tt.body)
			p := NewAnthropicProvider("ak", "claude", srv.URL)

			_, err := p.Complete(context.Background(), userRequest("Hello"))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOllamaProvider(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"model":"llama3","message":{"role":"assistant","content":"pong"},"done":true,"done_reason":"stop","prompt_eval_count":4,"eval_count":1}`)
	p := NewOllamaProvider(srv.URL, "llama3")

	resp, err := p.Complete(context.Background(), userRequest("ping"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "pong" {
		t.Errorf("expected %q, got %q", "pong", resp.Content)
	}

	_, err = NewOllamaProvider(closedServerURL(), "llama3").Complete(context.Background(), userRequest("ping"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("expected network error, got %v", err)
	}

	for name, body := range map[string]string{
		"missing message": `{"model":"llama3","done":true}`,
		"empty content":   `{"model":"llama3","message":{"role":"assistant","content":""},"done":true}`,
	} {
		srv := jsonServer(t, http.StatusOK, body)
		_, err = NewOllamaProvider(srv.URL, "llama3").Complete(context.Background(), userRequest("ping"))
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%s: expected malformed response, got %v", name, err)
		}
	}
}

func TestClassify(t *testing.T) {
	var syntaxErr *json.SyntaxError
	jsonErr := json.Unmarshal([]byte("{"), &struct{}{})
	if !errors.As(jsonErr, &syntaxErr) {
		t.Skip("json error shape changed")
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"sentinel", ErrRateLimit, ErrRateLimit},
		{"wrapped", fmt.Errorf("calling: %w", ErrAuthentication), ErrAuthentication},
		{"provider error", newError("x", ErrMalformedResponse, 200, errors.New("bad")), ErrMalformedResponse},
		{"deadline", context.DeadlineExceeded, ErrNetwork},
		{"json", jsonErr, ErrMalformedResponse},
		{"other", errors.New("boom"), ErrServer},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("%s: Classify = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := newError("openai", ErrAuthentication, 401, errors.New("invalid key"))
	msg := err.Error()
	for _, want := range []string{"openai", "authentication failed", "401", "invalid key"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	if got := EstimateCost("unknown-model", 1000, 1000); got != 0 {
		t.Errorf("expected 0 for unknown model, got %f", got)
	}
	got := EstimateCost("gpt-3.5-turbo", 1_000_000, 1_000_000)
	if got != 2.0 {
		t.Errorf("expected 2.0, got %f", got)
	}
}
