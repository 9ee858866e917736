package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// MockProvider is a test provider that records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []CallConfig
	Messages [][]Message
	Content  string
	Err      error
	ProvName ProviderName
}

func NewMockProvider(name ProviderName) *MockProvider {
	return &MockProvider{
		ProvName: name,
		Content:  "mock response",
	}
}

func (m *MockProvider) Name() ProviderName {
	return m.ProvName
}

func (m *MockProvider) Call(ctx context.Context, messages []Message, cfg CallConfig) (*CallResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, cfg)
	m.Messages = append(m.Messages, messages)
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Provider: m.ProvName, Err: err}
	}
	n := 42
	return &CallResult{
		Content:    m.Content,
		Provider:   m.ProvName,
		Model:      string(m.ProvName) + "-model",
		TokensUsed: &n,
	}, nil
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// --- Tests ---

func TestRoles(t *testing.T) {
	if RoleSystem != "system" {
		t.Errorf("RoleSystem = %q, want 'system'", RoleSystem)
	}
	if RoleUser != "user" {
		t.Errorf("RoleUser = %q, want 'user'", RoleUser)
	}
	if RoleAssistant != "assistant" {
		t.Errorf("RoleAssistant = %q, want 'assistant'", RoleAssistant)
	}
}

func TestParseProviderName(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderName
		wantErr bool
	}{
		{"openai", ProviderOpenAI, false},
		{"OpenAI", ProviderOpenAI, false},
		{"gemini", ProviderGemini, false},
		{"google", ProviderGemini, false},
		{"claude", ProviderClaude, false},
		{" anthropic ", ProviderClaude, false},
		{"mistral", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseProviderName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseProviderName(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseProviderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCallConfigDefaults(t *testing.T) {
	var cfg CallConfig
	if cfg.temperature() != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", cfg.temperature(), DefaultTemperature)
	}
	if cfg.maxTokens() != DefaultMaxTokens {
		t.Errorf("maxTokens = %d, want %d", cfg.maxTokens(), DefaultMaxTokens)
	}

	cfg = CallConfig{Temperature: Temp(0), MaxTokens: 100}
	if cfg.temperature() != 0 {
		t.Errorf("explicit zero temperature not honored, got %v", cfg.temperature())
	}
	if cfg.maxTokens() != 100 {
		t.Errorf("maxTokens = %d, want 100", cfg.maxTokens())
	}
}

func TestFactoryReturnsErrorForMissingAPIKey(t *testing.T) {
	var s Settings
	for _, p := range AllProviders {
		_, err := s.NewProvider(p, "")
		if !errors.Is(err, ErrNoProvider) {
			t.Errorf("expected configuration error for provider %q with missing API key, got %v", p, err)
		}
	}
}

func TestFactoryReturnsErrorForUnknownProvider(t *testing.T) {
	var s Settings
	_, err := s.NewProvider("unknown", "key")
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
	if _, err := ParseProviderName("mistral"); !errors.Is(err, ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider from ParseProviderName, got %v", err)
	}
}

func TestFactoryCreatesProviders(t *testing.T) {
	s := Settings{Models: map[ProviderName]string{ProviderGemini: "gemini-custom"}}
	for _, p := range AllProviders {
		provider, err := s.NewProvider(p, "test-key")
		if err != nil {
			t.Fatalf("NewProvider(%q): unexpected error: %v", p, err)
		}
		if provider.Name() != p {
			t.Errorf("expected name %q, got %q", p, provider.Name())
		}
	}

	g, _ := s.NewProvider(ProviderGemini, "k")
	if g.(*GeminiProvider).model != "gemini-custom" {
		t.Errorf("expected model override, got %q", g.(*GeminiProvider).model)
	}
	c, _ := s.NewProvider(ProviderClaude, "k")
	if c.(*ClaudeProvider).model != DefaultClaudeModel {
		t.Errorf("expected default claude model, got %q", c.(*ClaudeProvider).model)
	}
}

func TestEnvCredentialsReadAtCallTime(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	src := EnvCredentials{}
	if got := AvailableProviders(src.Credentials()); len(got) != 0 {
		t.Fatalf("expected no providers, got %v", got)
	}

	t.Setenv("ANTHROPIC_API_KEY", "rotated")
	creds := src.Credentials()
	if creds.Claude != "rotated" {
		t.Errorf("expected rotated key to be visible, got %q", creds.Claude)
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Provider: ProviderGemini}
	if !errors.Is(err, ErrNoProvider) {
		t.Error("ConfigurationError should match ErrNoProvider")
	}
	if got := err.Error(); got != "no AI provider configured: gemini is not configured (set GEMINI_API_KEY)" {
		t.Errorf("unexpected message %q", got)
	}
}
