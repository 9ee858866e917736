package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngofund/ngoai/internal/agent"
	"github.com/ngofund/ngoai/internal/config"
	"github.com/ngofund/ngoai/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show which AI providers are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		creds := llm.EnvCredentials{Getenv: os.Getenv}.Credentials()
		for _, p := range llm.AllProviders {
			status := "missing " + config.APIKeyEnvVar(p)
			if creds.Has(p) {
				status = "configured"
			}
			fmt.Printf("%-8s %-30s %s\n", p, cfg.Model(p), status)
		}

		if best, ok := llm.BestProvider(creds); ok {
			fmt.Printf("\nPreferred provider: %s\n", best)
		} else {
			fmt.Println("\nNo provider configured. Set at least one API key.")
		}
		return nil
	},
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List the supported AI capabilities",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range agent.Capabilities() {
			fmt.Println(c)
		}
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(capabilitiesCmd)
}
