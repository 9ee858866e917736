package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ngofund/ngoai/internal/llm"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".ngoai.yml"

// envPrefix marks environment overrides, e.g. NGOAI_QUALITY=max.
const envPrefix = "NGOAI_"

// sections are the nested config keys; NGOAI_SERVER_PORT maps to server.port.
var sections = []string{"models", "endpoints", "server"}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (NGOAI_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey turns NGOAI_MODELS_CLAUDE into models.claude and
// NGOAI_ATTEMPT_TIMEOUT into attempt_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validQualityTiers is the set of recognized quality tier values.
var validQualityTiers = map[QualityTier]bool{
	QualityLite:   true,
	QualityNormal: true,
	QualityMax:    true,
}

var validLanguages = map[string]bool{
	"ro": true,
	"en": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Quality != "" && !validQualityTiers[c.Quality] {
		return fmt.Errorf("invalid quality %q: must be one of lite, normal, max", c.Quality)
	}

	if c.DefaultLanguage != "" && !validLanguages[c.DefaultLanguage] {
		return fmt.Errorf("invalid default_language %q: must be one of ro, en", c.DefaultLanguage)
	}

	if c.AttemptTimeout < 0 {
		return fmt.Errorf("attempt_timeout must be non-negative")
	}

	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}

	return nil
}

// Model returns the model used for p: the explicit override, else the
// preset of the configured quality tier.
func (c *Config) Model(p llm.ProviderName) string {
	if m := c.Models.Get(p); m != "" {
		return m
	}
	return PresetModel(p, c.Quality)
}

// Timeout returns the per-attempt deadline.
func (c *Config) Timeout() time.Duration {
	if c.AttemptTimeout == 0 {
		return llm.DefaultAttemptTimeout
	}
	return c.AttemptTimeout
}

// ProviderSettings converts the configuration into adapter settings.
func (c *Config) ProviderSettings() llm.Settings {
	s := llm.Settings{
		Models:    make(map[llm.ProviderName]string),
		Endpoints: make(map[llm.ProviderName]string),
	}
	for _, p := range llm.AllProviders {
		s.Models[p] = c.Model(p)
		if ep := c.Endpoints.Get(p); ep != "" {
			s.Endpoints[p] = ep
		}
	}
	return s
}

// APIKeyEnvVar returns the environment variable holding the API key of the
// given provider.
func APIKeyEnvVar(provider llm.ProviderName) string {
	return llm.CredentialEnvVar(provider)
}

// MissingCredentials lists the API key variables not set in the environment.
func MissingCredentials(getenv func(string) string) []string {
	var missing []string
	for _, p := range llm.AllProviders {
		if v := APIKeyEnvVar(p); getenv(v) == "" {
			missing = append(missing, v)
		}
	}
	return missing
}
