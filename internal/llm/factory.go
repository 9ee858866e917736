package llm

import (
	"fmt"
	"net/http"
)

// Default models used when neither the call nor the settings name one.
const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultClaudeModel = "claude-sonnet-4-5-20250929"
)

// Settings carries the non-secret provider configuration: default models and
// base URL overrides. Empty entries select the vendor defaults.
type Settings struct {
	Models     map[ProviderName]string
	Endpoints  map[ProviderName]string
	HTTPClient *http.Client
}

// ProviderFactory builds a fresh adapter for one call.
type ProviderFactory func(name ProviderName, apiKey string) (Provider, error)

func (s Settings) model(p ProviderName) string {
	if m := s.Models[p]; m != "" {
		return m
	}
	switch p {
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderGemini:
		return DefaultGeminiModel
	case ProviderClaude:
		return DefaultClaudeModel
	default:
		return ""
	}
}

func (s Settings) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{}
}

// NewProvider creates the adapter for the given provider.
func (s Settings) NewProvider(name ProviderName, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Provider: name}
	}
	switch name {
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, s.model(name), s.Endpoints[name], s.httpClient()), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey, s.model(name), s.Endpoints[name], s.httpClient()), nil
	case ProviderClaude:
		return NewClaudeProvider(apiKey, s.model(name), s.Endpoints[name], s.httpClient()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
	}
}
