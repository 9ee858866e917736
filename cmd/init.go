package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngofund/ngoai/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ngoai configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that picks the quality tier, default language and server port, and writes a .ngoai.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
