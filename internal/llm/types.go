package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation. A conversation is an
// ordered slice of messages, earliest first.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ProviderName identifies one of the supported LLM back-ends.
type ProviderName string

const (
	ProviderOpenAI ProviderName = "openai"
	ProviderGemini ProviderName = "gemini"
	ProviderClaude ProviderName = "claude"
)

// AllProviders is the fixed enumeration order. It is the order used for the
// fallback tail, not the preference order (see BestProvider).
var AllProviders = []ProviderName{ProviderOpenAI, ProviderGemini, ProviderClaude}

// ErrUnsupportedProvider is returned for provider names outside the fixed set.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// ParseProviderName maps a user supplied name to a ProviderName. The vendor
// names "anthropic" and "google" are accepted as aliases.
func ParseProviderName(s string) (ProviderName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "openai":
		return ProviderOpenAI, nil
	case "gemini", "google":
		return ProviderGemini, nil
	case "claude", "anthropic":
		return ProviderClaude, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of openai, gemini, claude", ErrUnsupportedProvider, s)
	}
}

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// CallConfig holds per-call settings. Zero values select the defaults.
type CallConfig struct {
	// Provider requests a specific back-end. Empty means "decide for me".
	Provider ProviderName
	// Model overrides the configured model of the resolved provider.
	Model string
	// Temperature defaults to DefaultTemperature when nil.
	Temperature *float64
	// MaxTokens defaults to DefaultMaxTokens when zero.
	MaxTokens int
}

// Temp returns a pointer to t, for use in CallConfig literals.
func Temp(t float64) *float64 { return &t }

func (c CallConfig) temperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

func (c CallConfig) maxTokens() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// CallResult is the normalized reply of a provider. Provider and Model always
// name the adapter that actually produced Content.
type CallResult struct {
	Content    string       `json:"content"`
	Provider   ProviderName `json:"provider"`
	Model      string       `json:"model"`
	TokensUsed *int         `json:"tokens_used,omitempty"`
}
