package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngofund/ngoai/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ngoai",
	Short: "AI orchestration layer for NGO fundraising",
	Long: `ngoai routes fundraising tasks (campaigns, donor analysis, emails, SMS,
reports, chat) to OpenAI, Gemini or Claude, falling back across providers
when one fails. It runs as a CLI, an HTTP/websocket service or an MCP
server for AI agents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs the default slog handler. Logs go to stderr so that
// stdout stays clean for command output and the MCP protocol.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
