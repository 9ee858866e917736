package config

import "github.com/ngofund/ngoai/internal/llm"

// qualityPresets maps each provider+quality combination to its model.
var qualityPresets = map[llm.ProviderName]map[QualityTier]string{
	llm.ProviderClaude: {
		QualityLite:   "claude-haiku-4-5-20251001",
		QualityNormal: "claude-sonnet-4-5-20250929",
		QualityMax:    "claude-opus-4-6",
	},
	llm.ProviderOpenAI: {
		QualityLite:   "gpt-4o-mini",
		QualityNormal: "gpt-4o",
		QualityMax:    "gpt-4.1",
	},
	llm.ProviderGemini: {
		QualityLite:   "gemini-2.0-flash-lite",
		QualityNormal: "gemini-2.0-flash",
		QualityMax:    "gemini-2.5-pro",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Quality:         QualityNormal,
		AttemptTimeout:  llm.DefaultAttemptTimeout,
		MaxTokens:       llm.DefaultMaxTokens,
		DefaultLanguage: "ro",
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// PresetModel returns the model for the given provider and tier. Unknown
// tiers fall back to the normal tier.
func PresetModel(provider llm.ProviderName, tier QualityTier) string {
	tiers, ok := qualityPresets[provider]
	if !ok {
		return ""
	}
	if m, ok := tiers[tier]; ok {
		return m
	}
	return tiers[QualityNormal]
}
