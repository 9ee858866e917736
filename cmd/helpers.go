package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ngofund/ngoai/internal/agent"
	"github.com/ngofund/ngoai/internal/config"
	"github.com/ngofund/ngoai/internal/llm"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ngoai init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newDispatcher builds a dispatcher reading API keys from the process
// environment on every call.
func newDispatcher(cfg *config.Config) *llm.Dispatcher {
	settings := cfg.ProviderSettings()
	return llm.NewDispatcher(
		llm.EnvCredentials{Getenv: os.Getenv},
		settings.NewProvider,
		llm.WithAttemptTimeout(cfg.Timeout()),
		llm.WithLogger(slog.Default()),
	)
}

// newRouter builds the capability router on top of d.
func newRouter(cfg *config.Config, d *llm.Dispatcher) *agent.Router {
	lang, ok := agent.ParseLanguage(cfg.DefaultLanguage)
	if !ok {
		lang = agent.LanguageRomanian
	}
	return agent.NewRouter(d,
		agent.WithDefaultLanguage(lang),
		agent.WithMaxTokens(cfg.MaxTokens),
		agent.WithLogger(slog.Default()),
	)
}
