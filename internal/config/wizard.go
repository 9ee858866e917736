package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to ngoai! Let's configure the AI layer.")
	fmt.Println()

	// 1. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   (haiku / gpt-4o-mini / flash-lite)",
			"normal (sonnet / gpt-4o / flash)",
			"max    (opus / gpt-4.1 / gemini pro)",
		},
		CursorPos: 1,
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}

	// 2. Default answer language.
	languagePrompt := promptui.Select{
		Label: "Default answer language",
		Items: []string{"ro", "en"},
	}
	_, language, err := languagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP server port",
		Default:  "8080",
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	port, _ := strconv.Atoi(strings.TrimSpace(portStr))

	cfg := DefaultConfig()
	cfg.Quality = tiers[qualityIdx]
	cfg.DefaultLanguage = language
	cfg.Server.Port = port

	if missing := MissingCredentials(os.Getenv); len(missing) > 0 {
		fmt.Printf("\nNote: %s not set. Providers without a key are skipped.\n", strings.Join(missing, ", "))
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
