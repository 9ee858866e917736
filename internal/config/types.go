package config

import (
	"time"

	"github.com/ngofund/ngoai/internal/llm"
)

// QualityTier controls the default model of each provider, trading speed
// and cost against quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// Config is the top-level ngoai configuration, corresponding to .ngoai.yml.
// API keys are never stored here; they are read from the environment.
type Config struct {
	Quality         QualityTier   `yaml:"quality" koanf:"quality"`
	Models          ProviderMap   `yaml:"models" koanf:"models"`
	Endpoints       ProviderMap   `yaml:"endpoints" koanf:"endpoints"`
	AttemptTimeout  time.Duration `yaml:"attempt_timeout" koanf:"attempt_timeout"`
	MaxTokens       int           `yaml:"max_tokens" koanf:"max_tokens"`
	DefaultLanguage string        `yaml:"default_language" koanf:"default_language"`
	Server          ServerConfig  `yaml:"server" koanf:"server"`
}

// ProviderMap holds one string per provider, such as a model name or a
// base URL. Empty entries mean "use the default".
type ProviderMap struct {
	OpenAI string `yaml:"openai,omitempty" koanf:"openai"`
	Gemini string `yaml:"gemini,omitempty" koanf:"gemini"`
	Claude string `yaml:"claude,omitempty" koanf:"claude"`
}

// Get returns the entry for p.
func (m ProviderMap) Get(p llm.ProviderName) string {
	switch p {
	case llm.ProviderOpenAI:
		return m.OpenAI
	case llm.ProviderGemini:
		return m.Gemini
	case llm.ProviderClaude:
		return m.Claude
	default:
		return ""
	}
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
