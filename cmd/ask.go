package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngofund/ngoai/internal/agent"
)

var askCmd = &cobra.Command{
	Use:   "ask <capability>",
	Short: "Run one AI capability",
	Long: `Runs a capability such as campaign_generator or email_writer against the
configured providers, falling back across them on failure.

The context is read from a JSON file (--context) and/or key=value pairs
(--set). Values given with --set are parsed as JSON when possible, so
--set goal=5000 is a number and --set name=Ana is a string.`,
	Example: `  ngoai ask email_writer --set donorName=Ana --set purpose="mulțumire"
  ngoai ask donor_analyzer --context donor.json --language en --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("context", "", "JSON file holding the capability context")
	askCmd.Flags().StringArray("set", nil, "context field as key=value (repeatable)")
	askCmd.Flags().String("language", "", "answer language: ro or en")
	askCmd.Flags().String("provider", "", "preferred provider: openai, gemini or claude")
	askCmd.Flags().Bool("json", false, "output the full response as JSON")
	askCmd.Flags().Bool("no-fallback", false, "fail on the first provider error instead of trying the others")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	req, err := askRequest(cmd, args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	router := newRouter(cfg, newDispatcher(cfg))

	resp, err := router.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printResponse(resp)
	return nil
}

// askRequest builds the agent request from the command flags.
func askRequest(cmd *cobra.Command, capability string) (agent.AgentRequest, error) {
	contextFile, _ := cmd.Flags().GetString("context")
	sets, _ := cmd.Flags().GetStringArray("set")
	language, _ := cmd.Flags().GetString("language")
	provider, _ := cmd.Flags().GetString("provider")
	noFallback, _ := cmd.Flags().GetBool("no-fallback")

	raw, err := buildContext(contextFile, sets)
	if err != nil {
		return agent.AgentRequest{}, err
	}
	return agent.AgentRequest{
		Capability: capability,
		Context:    raw,
		Language:   language,
		Provider:   provider,
		Strict:     noFallback,
	}, nil
}

// buildContext merges the context file with --set overrides.
func buildContext(path string, sets []string) (map[string]any, error) {
	raw := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading context file: %w", err)
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("context file %s must hold a JSON object: %w", path, err)
		}
	}

	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", kv)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		raw[key] = v
	}
	return raw, nil
}

func printResponse(resp *agent.AgentResponse) {
	switch resp.Result.Kind {
	case agent.KindStructured:
		data, _ := json.MarshalIndent(resp.Result, "", "  ")
		fmt.Println(string(data))
	default:
		fmt.Println(resp.Result.Text)
	}

	if len(resp.Suggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range resp.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	if resp.Confidence != nil {
		fmt.Printf("\nConfidence: %.0f/100\n", *resp.Confidence)
	}

	fmt.Fprintf(os.Stderr, "\n%s (%s/%s)\n", resp.Explanation, resp.Provider, resp.Model)
}
